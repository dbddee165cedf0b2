package blogcms

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID       uuid.UUID
	AuthorID uuid.UUID

	Title         string
	Slug          string
	Body          string
	Summary       string
	FeaturedImage string

	State      State
	CategoryID *int
	Category   *Category
	TagIDs     []int
	Tags       []Tag

	MetaTitle       string
	MetaDescription string
	SeoKeywords     string

	Revision   int
	ViewCount  int
	ShareCount int

	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// EverPublished reports whether the post has been published at least once.
// The slug becomes immutable from that point on.
func (p *Post) EverPublished() bool {
	return p.PublishedAt != nil
}

type Revision struct {
	PostID   uuid.UUID
	Number   int
	AuthorID uuid.UUID

	Title           string
	Body            string
	Summary         string
	MetaTitle       string
	MetaDescription string
	SeoKeywords     string
	CategoryID      *int
	TagIDs          []int

	CreatedAt time.Time
}

type Category struct {
	ID              int
	Name            string
	Slug            string
	Description     string
	MetaTitle       string
	MetaDescription string
	OrderNumber     int
}

type Tag struct {
	ID          int
	Name        string
	Slug        string
	Description string
	Color       string
	Featured    bool
}

// Capability names an action an actor is allowed to perform. Validation of
// the actor token itself is delegated to an external authorization service;
// the engine only checks capability presence.
type Capability string

const (
	CapEdit    Capability = "edit"
	CapPublish Capability = "publish"
	CapArchive Capability = "archive"
)

type Actor struct {
	ID           uuid.UUID
	Name         string
	Capabilities []Capability
}

func (a Actor) Can(c Capability) bool {
	for _, have := range a.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// NewDraft carries the fields for creating a post. SEO fields left empty
// default to the title and summary respectively.
type NewDraft struct {
	Title         string
	Body          string
	Summary       string
	FeaturedImage string
	CategoryID    *int
	TagIDs        []int

	MetaTitle       string
	MetaDescription string
	SeoKeywords     string
}

// Patch is a partial edit of a post's content fields. Nil fields are left
// unchanged; TagIDs replaces the whole tag set when non-nil.
type Patch struct {
	Title           *string
	Body            *string
	Summary         *string
	FeaturedImage   *string
	MetaTitle       *string
	MetaDescription *string
	SeoKeywords     *string
	CategoryID      *int
	TagIDs          []int
}

func (p Patch) IsZero() bool {
	return p.Title == nil && p.Body == nil && p.Summary == nil &&
		p.FeaturedImage == nil && p.MetaTitle == nil && p.MetaDescription == nil &&
		p.SeoKeywords == nil && p.CategoryID == nil && p.TagIDs == nil
}
