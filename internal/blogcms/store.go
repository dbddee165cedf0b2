package blogcms

import (
	"context"

	"github.com/google/uuid"

	"github.com/akozlovskiy/blog-cms/internal/db"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

// Store is the content store port, implemented by *db.Repository. Post and
// revision writes share one transaction boundary; referential integrity of
// categories and tags is the store's concern.
type Store interface {
	PostByID(ctx context.Context, id uuid.UUID) (*db.Post, error)
	PostBySlug(ctx context.Context, slug string) (*db.Post, error)
	SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	InsertPostWithRevision(ctx context.Context, post *db.Post, rev *db.Revision) error
	UpdatePostWithRevision(ctx context.Context, post *db.Post, rev *db.Revision, expectedRevision int) error
	Revisions(ctx context.Context, postID uuid.UUID, afterNumber, limit int) ([]db.Revision, error)
	Categories(ctx context.Context) ([]db.Category, error)
	CategoryByID(ctx context.Context, id int) (*db.Category, error)
	Tags(ctx context.Context) ([]db.Tag, error)
	TagsByIDs(ctx context.Context, tagIDs []int) ([]db.Tag, error)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementShareCount(ctx context.Context, id uuid.UUID) error
}

// Suggester is the suggestion orchestrator port.
type Suggester interface {
	Request(ctx context.Context, snap suggest.Snapshot, fields []suggest.Field) (*suggest.Request, error)
}
