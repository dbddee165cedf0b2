package blogcms

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/akozlovskiy/blog-cms/internal/db"
)

const historyPageSize = 100

// RevisionTracker builds immutable revision snapshots and serves revision
// history. Snapshots are persisted by the store inside the same transaction
// as the post write they belong to; revisions are never edited or deleted,
// and archiving a post keeps them.
type RevisionTracker struct {
	store Store
}

func NewRevisionTracker(store Store) *RevisionTracker {
	return &RevisionTracker{store: store}
}

// Snapshot captures the post's content fields as the revision numbered
// post.Revision, authored by the given actor.
func (t *RevisionTracker) Snapshot(post *db.Post, author Actor) *db.Revision {
	return &db.Revision{
		PostID:          post.ID,
		Number:          post.Revision,
		AuthorID:        author.ID,
		Title:           post.Title,
		Body:            post.Body,
		Summary:         post.Summary,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		SeoKeywords:     post.SeoKeywords,
		CategoryID:      post.CategoryID,
		TagIDs:          post.TagIDs,
		CreatedAt:       time.Now(),
	}
}

// History returns the post's revisions ordered by number ascending. The
// sequence is lazy (fetched page by page) and restartable: re-iterating
// yields the same revisions absent new writes.
func (t *RevisionTracker) History(ctx context.Context, postID uuid.UUID) iter.Seq2[Revision, error] {
	return func(yield func(Revision, error) bool) {
		after := 0
		for {
			page, err := t.store.Revisions(ctx, postID, after, historyPageSize)
			if err != nil {
				yield(Revision{}, fmt.Errorf("load revision history: %w", err))
				return
			}

			for i := range page {
				if !yield(NewRevision(&page[i]), nil) {
					return
				}
				after = page[i].Number
			}

			if len(page) < historyPageSize {
				return
			}
		}
	}
}
