package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// ErrRevisionMismatch is returned by optimistic writes when the stored post
// revision no longer matches the revision the caller last observed.
var ErrRevisionMismatch = errors.New("post revision mismatch")

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
	}

	return nil
}

// PostByID returns the post with the given id, or nil if it does not exist.
func (r *Repository) PostByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	post := &Post{}
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, post).
			Relation("Category").
			Where(`"t"."postId" = ?`, id).
			Select()
	})

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// PostBySlug returns the post with the given slug, or nil if it does not exist.
func (r *Repository) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	post := &Post{}
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, post).
			Relation("Category").
			Where(`"t"."slug" = ?`, slug).
			Select()
	})

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return post, nil
}

// SlugTaken reports whether another post already owns the given slug.
func (r *Repository) SlugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int
	err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		count, err = r.db.ModelContext(ctx, (*Post)(nil)).
			Where(`"t"."slug" = ?`, slug).
			Where(`"t"."postId" != ?`, excludeID).
			Count()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return count > 0, nil
}

// InsertPostWithRevision creates a post together with its first revision in a
// single transaction.
func (r *Repository) InsertPostWithRevision(ctx context.Context, post *Post, rev *Revision) error {
	return r.runInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.ModelContext(ctx, post).Insert(); err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		if _, err := tx.ModelContext(ctx, rev).Insert(); err != nil {
			return fmt.Errorf("failed to insert revision: %w", err)
		}

		return nil
	})
}

// UpdatePostWithRevision writes the post and appends its new revision in a
// single transaction. The update only matches when the stored revision still
// equals expectedRevision; otherwise ErrRevisionMismatch is returned and
// nothing is written.
func (r *Repository) UpdatePostWithRevision(ctx context.Context, post *Post, rev *Revision, expectedRevision int) error {
	return r.runInTransaction(ctx, func(tx *pg.Tx) error {
		res, err := tx.ModelContext(ctx, post).
			WherePK().
			Where(`"t"."revision" = ?`, expectedRevision).
			Update()
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if res.RowsAffected() == 0 {
			return ErrRevisionMismatch
		}

		if rev != nil {
			if _, err := tx.ModelContext(ctx, rev).Insert(); err != nil {
				return fmt.Errorf("failed to insert revision: %w", err)
			}
		}

		return nil
	})
}

// Revisions returns up to limit revisions of the post with numbers greater
// than afterNumber, ordered by number ascending.
func (r *Repository) Revisions(ctx context.Context, postID uuid.UUID, afterNumber, limit int) ([]Revision, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be greater than 0: limit=%d", limit)
	}

	var revisions []Revision
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, &revisions).
			Where(`"t"."postId" = ?`, postID).
			Where(`"t"."number" > ?`, afterNumber).
			OrderExpr(`"t"."number" ASC`).
			Limit(limit).
			Select()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}

	return revisions, nil
}

func (r *Repository) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, &categories).
			OrderExpr(`"orderNumber" ASC`).
			Select()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryByID(ctx context.Context, id int) (*Category, error) {
	category := &Category{}
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, category).
			Where(`"categoryId" = ?`, id).
			Select()
	})

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, &tags).
			OrderExpr(`"name" ASC`).
			Select()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

func (r *Repository) TagsByIDs(ctx context.Context, tagIDs []int) ([]Tag, error) {
	if len(tagIDs) == 0 {
		return []Tag{}, nil
	}

	tags := []Tag{}
	err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.db.ModelContext(ctx, &tags).
			Where(`"tagId" IN (?)`, pg.In(tagIDs)).
			OrderExpr(`"name" ASC`).
			Select()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by ids: %w", err)
	}

	return tags, nil
}

// IncrementViewCount bumps the post's view counter without touching the
// revision, so concurrent edits are unaffected.
func (r *Repository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE "posts" SET "viewCount" = "viewCount" + 1 WHERE "postId" = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	return nil
}

func (r *Repository) IncrementShareCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE "posts" SET "shareCount" = "shareCount" + 1 WHERE "postId" = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment share count: %w", err)
	}

	return nil
}

func (r *Repository) runInTransaction(ctx context.Context, fn func(tx *pg.Tx) error) error {
	switch db := r.db.(type) {
	case *pg.DB:
		return db.RunInTransaction(ctx, fn)
	case *pg.Tx:
		// Nested transaction via savepoint, used by tests running inside a tx.
		return db.RunInTransaction(ctx, fn)
	default:
		return fmt.Errorf("transactions are not supported by %T", r.db)
	}
}

// withRetry runs a read operation and retries it once on a transient
// connection failure before surfacing the error.
func (r *Repository) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(1, retry.NewConstant(50*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err != nil && isTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
