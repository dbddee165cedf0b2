// Package blogcms owns the post publishing workflow: the lifecycle state
// machine, concurrency-safe edits and transitions, revision tracking, and
// delegation of AI suggestion requests. Posts are mutated only through the
// Manager, guarded by optimistic revision checks; no lock is held across
// operations and contention is always per post.
package blogcms

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akozlovskiy/blog-cms/internal/db"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

type Manager struct {
	store     Store
	suggester Suggester
	revisions *RevisionTracker
	log       *slog.Logger
}

func NewManager(store Store, suggester Suggester, log *slog.Logger) *Manager {
	return &Manager{
		store:     store,
		suggester: suggester,
		revisions: NewRevisionTracker(store),
		log:       log,
	}
}

// CreateDraft creates a post in the draft state with revision 1. The slug is
// derived from the title; empty SEO fields default to the title and summary.
func (m *Manager) CreateDraft(ctx context.Context, draft NewDraft, author Actor) (*Post, error) {
	if !author.Can(CapEdit) {
		return nil, fmt.Errorf("create draft: %w", ErrPermission)
	}
	if draft.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}

	if err := m.checkReferences(ctx, draft.CategoryID, draft.TagIDs); err != nil {
		return nil, err
	}

	slug, err := m.uniqueSlug(ctx, DeriveSlug(draft.Title), uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &db.Post{
		ID:              uuid.New(),
		AuthorID:        author.ID,
		Title:           draft.Title,
		Slug:            slug,
		Body:            draft.Body,
		Summary:         draft.Summary,
		FeaturedImage:   draft.FeaturedImage,
		State:           db.StateDraft,
		CategoryID:      draft.CategoryID,
		TagIDs:          draft.TagIDs,
		MetaTitle:       draft.MetaTitle,
		MetaDescription: draft.MetaDescription,
		SeoKeywords:     draft.SeoKeywords,
		Revision:        1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
	}
	if post.MetaDescription == "" {
		post.MetaDescription = post.Summary
	}

	rev := m.revisions.Snapshot(post, author)
	if err := m.store.InsertPostWithRevision(ctx, post, rev); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}

	m.log.Info("draft created", "postId", post.ID, "slug", post.Slug, "author", author.ID)

	return m.toPost(ctx, post)
}

// Post returns the post with the given id, or nil if it does not exist.
func (m *Manager) Post(ctx context.Context, id uuid.UUID) (*Post, error) {
	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	} else if dbPost == nil {
		return nil, nil
	}

	return m.toPost(ctx, dbPost)
}

// PostBySlug returns the post with the given slug, or nil if it does not
// exist, and records the view.
func (m *Manager) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	dbPost, err := m.store.PostBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	} else if dbPost == nil {
		return nil, nil
	}

	// Views are analytics, not content: counted outside the revisioned write
	// path, and a failed count never fails the read.
	if err := m.store.IncrementViewCount(ctx, dbPost.ID); err != nil {
		m.log.Warn("failed to increment view count", "postId", dbPost.ID, "error", err)
	}

	return m.toPost(ctx, dbPost)
}

// RecordShare bumps the post's share counter.
func (m *Manager) RecordShare(ctx context.Context, id uuid.UUID) error {
	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return fmt.Errorf("record share: %w", err)
	} else if dbPost == nil {
		return fmt.Errorf("record share: %w", ErrNotFound)
	}

	return m.store.IncrementShareCount(ctx, id)
}

// ApplyEdit applies a partial content edit, producing a new revision. Edits
// are allowed in draft and in_review; editing a published post reverts it to
// in_review so a fresh approval is required. Archived posts cannot be
// edited. expectedRevision is the revision the editor last observed.
func (m *Manager) ApplyEdit(ctx context.Context, id uuid.UUID, patch Patch, editor Actor, expectedRevision int) (*Post, error) {
	if !editor.Can(CapEdit) {
		return nil, fmt.Errorf("apply edit: %w", ErrPermission)
	}
	if patch.IsZero() {
		return nil, fmt.Errorf("%w: empty patch", ErrInvalidArgument)
	}

	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("apply edit: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("apply edit: %w", ErrNotFound)
	}

	if dbPost.State == db.StateArchived {
		return nil, fmt.Errorf("%w: post is archived", ErrInvalidState)
	}
	if dbPost.Revision != expectedRevision {
		return nil, &ConflictError{PostID: id, Expected: expectedRevision}
	}

	if err := m.checkReferences(ctx, patch.CategoryID, patch.TagIDs); err != nil {
		return nil, err
	}

	if err := m.applyPatch(ctx, dbPost, patch); err != nil {
		return nil, err
	}

	// Editing a published post takes it off the air until re-approved.
	if dbPost.State == db.StatePublished {
		dbPost.State = db.StateInReview
	}

	dbPost.Revision = expectedRevision + 1
	dbPost.UpdatedAt = time.Now()

	rev := m.revisions.Snapshot(dbPost, editor)
	if err := m.saveWithRevision(ctx, dbPost, rev, expectedRevision); err != nil {
		return nil, err
	}

	m.log.Info("edit applied", "postId", id, "revision", dbPost.Revision, "editor", editor.ID)

	return m.toPost(ctx, dbPost)
}

// Transition applies a lifecycle event to the post. Guards: submitting for
// review requires a non-empty title and body, approving requires the publish
// capability and a unique slug, archiving requires the archive capability. Every transition advances the revision, so a
// stale expectedRevision fails with a ConflictError.
func (m *Manager) Transition(ctx context.Context, id uuid.UUID, event Event, actor Actor, expectedRevision int) (*Post, error) {
	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transition: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("transition: %w", ErrNotFound)
	}

	// The revision check runs before the edge lookup so a replayed event is
	// reported as a conflict, not as an illegal transition.
	if dbPost.Revision != expectedRevision {
		return nil, &ConflictError{PostID: id, Expected: expectedRevision}
	}

	next, err := Next(State(dbPost.State), event)
	if err != nil {
		return nil, err
	}

	switch event {
	case EventSubmitForReview:
		if dbPost.Title == "" || dbPost.Body == "" {
			return nil, fmt.Errorf("%w: title and body must not be empty", ErrInvalidState)
		}
	case EventArchive:
		if !actor.Can(CapArchive) {
			return nil, fmt.Errorf("archive: %w", ErrPermission)
		}
	case EventApprove:
		if !actor.Can(CapPublish) {
			return nil, fmt.Errorf("approve: %w", ErrPermission)
		}
		taken, err := m.store.SlugTaken(ctx, dbPost.Slug, dbPost.ID)
		if err != nil {
			return nil, fmt.Errorf("transition: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: slug %q already in use", ErrInvalidState, dbPost.Slug)
		}
	}

	now := time.Now()
	dbPost.State = string(next)
	if event == EventApprove {
		dbPost.PublishedAt = &now
	}
	dbPost.Revision = expectedRevision + 1
	dbPost.UpdatedAt = now

	rev := m.revisions.Snapshot(dbPost, actor)
	if err := m.saveWithRevision(ctx, dbPost, rev, expectedRevision); err != nil {
		return nil, err
	}

	m.log.Info("state transition",
		"postId", id, "event", event, "state", dbPost.State, "actor", actor.ID)

	return m.toPost(ctx, dbPost)
}

// RequestSuggestions generates AI suggestions for the given fields against a
// snapshot of the post. The post record is not blocked and not modified;
// suggestions are advisory until merged through ApplyEdit.
func (m *Manager) RequestSuggestions(ctx context.Context, id uuid.UUID, fields []string) (*suggest.Request, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty field list", ErrInvalidArgument)
	}

	parsed := make([]suggest.Field, 0, len(fields))
	for _, name := range fields {
		field, ok := suggest.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown suggestion field %q", ErrInvalidArgument, name)
		}
		parsed = append(parsed, field)
	}

	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("request suggestions: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("request suggestions: %w", ErrNotFound)
	}

	snap := suggest.Snapshot{
		PostID:  dbPost.ID,
		Title:   dbPost.Title,
		Body:    dbPost.Body,
		Summary: dbPost.Summary,
	}

	req, err := m.suggester.Request(ctx, snap, parsed)
	if err != nil {
		return nil, fmt.Errorf("request suggestions: %w", err)
	}

	return req, nil
}

// History returns the post's revisions ordered by revision number ascending.
func (m *Manager) History(ctx context.Context, id uuid.UUID) (iter.Seq2[Revision, error], error) {
	dbPost, err := m.store.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("history: %w", ErrNotFound)
	}

	return m.revisions.History(ctx, id), nil
}

func (m *Manager) Categories(ctx context.Context) ([]Category, error) {
	list, err := m.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) Tags(ctx context.Context) ([]Tag, error) {
	list, err := m.store.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	return NewTags(list), nil
}

// applyPatch copies the patch onto the post. A title change re-derives the
// slug only while the post has never been published; once published, the
// slug is immutable.
func (m *Manager) applyPatch(ctx context.Context, dbPost *db.Post, patch Patch) error {
	if patch.Title != nil && *patch.Title != dbPost.Title {
		if *patch.Title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
		}
		dbPost.Title = *patch.Title

		if dbPost.PublishedAt == nil {
			slug, err := m.uniqueSlug(ctx, DeriveSlug(dbPost.Title), dbPost.ID)
			if err != nil {
				return err
			}
			dbPost.Slug = slug
		}
	}

	if patch.Body != nil {
		dbPost.Body = *patch.Body
	}
	if patch.Summary != nil {
		dbPost.Summary = *patch.Summary
	}
	if patch.FeaturedImage != nil {
		dbPost.FeaturedImage = *patch.FeaturedImage
	}
	if patch.MetaTitle != nil {
		dbPost.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		dbPost.MetaDescription = *patch.MetaDescription
	}
	if patch.SeoKeywords != nil {
		dbPost.SeoKeywords = *patch.SeoKeywords
	}
	if patch.CategoryID != nil {
		dbPost.CategoryID = patch.CategoryID
	}
	if patch.TagIDs != nil {
		dbPost.TagIDs = patch.TagIDs
	}

	return nil
}

// checkReferences verifies that a category and tags referenced by an edit
// exist. Hard referential integrity lives in the store; this check only
// turns dangling references into a NotFound before anything is written.
func (m *Manager) checkReferences(ctx context.Context, categoryID *int, tagIDs []int) error {
	if categoryID != nil {
		category, err := m.store.CategoryByID(ctx, *categoryID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if category == nil {
			return fmt.Errorf("%w: category %d", ErrNotFound, *categoryID)
		}
	}

	if len(tagIDs) > 0 {
		tags, err := m.store.TagsByIDs(ctx, tagIDs)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if len(tags) != len(uniqueInts(tagIDs)) {
			return fmt.Errorf("%w: one or more tags do not exist", ErrNotFound)
		}
	}

	return nil
}

func (m *Manager) saveWithRevision(ctx context.Context, dbPost *db.Post, rev *db.Revision, expectedRevision int) error {
	err := m.store.UpdatePostWithRevision(ctx, dbPost, rev, expectedRevision)
	if err == nil {
		return nil
	}

	// A concurrent writer advanced the revision between our read and write.
	if isRevisionMismatch(err) {
		return &ConflictError{PostID: dbPost.ID, Expected: expectedRevision}
	}

	return fmt.Errorf("save post: %w", err)
}

// toPost converts a db post to the domain model with its tags attached.
func (m *Manager) toPost(ctx context.Context, dbPost *db.Post) (*Post, error) {
	post := NewPost(dbPost)

	if len(dbPost.TagIDs) > 0 {
		tags, err := m.store.TagsByIDs(ctx, dbPost.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to attach tags to post: %w", err)
		}
		post.Tags = NewTags(tags)
	}

	return post, nil
}

func isRevisionMismatch(err error) bool {
	return errors.Is(err, db.ErrRevisionMismatch)
}

func uniqueInts(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	result := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	return result
}
