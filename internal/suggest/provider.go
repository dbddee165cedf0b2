// Package suggest requests AI-generated writing and SEO suggestions for post
// drafts. Provider adapters normalize external responses into a fixed result
// shape so the workflow core never sees provider-specific data.
package suggest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Field is a post field suggestions can be generated for.
type Field string

const (
	FieldTitle           Field = "title"
	FieldSummary         Field = "summary"
	FieldSEOKeywords     Field = "seo_keywords"
	FieldMetaDescription Field = "meta_description"
)

// ParseField validates a field name received from a caller.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldTitle, FieldSummary, FieldSEOKeywords, FieldMetaDescription:
		return Field(s), true
	}
	return "", false
}

// Snapshot is the post content captured at request time. Suggestions are
// generated against the snapshot; the post itself stays editable meanwhile.
type Snapshot struct {
	PostID  uuid.UUID
	Title   string
	Body    string
	Summary string
}

// Provider generates ordered candidate strings for one field.
type Provider interface {
	Generate(ctx context.Context, field Field, snap Snapshot) ([]string, error)
}

// ErrorKind classifies provider failures. Transient failures are retried
// once; policy rejections are not retried.
type ErrorKind string

const (
	ErrorKindTransient ErrorKind = "transient"
	ErrorKindPolicy    ErrorKind = "policy"
)

type ProviderError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transient wraps err as a retriable provider failure.
func Transient(err error) error {
	return &ProviderError{Kind: ErrorKindTransient, Err: err}
}

// Policy wraps err as a content-policy rejection, which is never retried.
func Policy(err error) error {
	return &ProviderError{Kind: ErrorKindPolicy, Err: err}
}

func IsTransient(err error) bool {
	var perr *ProviderError
	return errors.As(err, &perr) && perr.Kind == ErrorKindTransient
}
