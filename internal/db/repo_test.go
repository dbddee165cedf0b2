package db

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"NetError", &net.OpError{Op: "read", Err: os.ErrDeadlineExceeded}, true},
		{"EOF", io.EOF, true},
		{"UnexpectedEOF", io.ErrUnexpectedEOF, true},
		{"WrappedEOF", errors.Join(errors.New("read failed"), io.EOF), true},
		{"PlainError", errors.New("syntax error"), false},
		{"RevisionMismatch", ErrRevisionMismatch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestWithRetry_NonRetriableFailsOnce(t *testing.T) {
	r := New(nil)

	calls := 0
	err := r.withRetry(context.Background(), func(context.Context) error {
		calls++
		return errors.New("constraint violation")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_TransientRetriedOnce(t *testing.T) {
	r := New(nil)

	calls := 0
	err := r.withRetry(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return io.EOF
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRevisions_RejectsBadLimit(t *testing.T) {
	r := New(nil)

	_, err := r.Revisions(context.Background(), uuid.Nil, 0, 0)
	assert.Error(t, err)
}
