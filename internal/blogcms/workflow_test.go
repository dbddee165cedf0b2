package blogcms

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozlovskiy/blog-cms/internal/db"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

var (
	testAuthor    = Actor{ID: uuid.New(), Name: "author", Capabilities: []Capability{CapEdit}}
	testPublisher = Actor{ID: uuid.New(), Name: "publisher", Capabilities: []Capability{CapEdit, CapPublish, CapArchive}}
	testReader    = Actor{ID: uuid.New(), Name: "reader"}
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory Store with the same optimistic-revision write
// semantics as the database repository.
type memStore struct {
	mu         sync.Mutex
	posts      map[uuid.UUID]db.Post
	revs       map[uuid.UUID][]db.Revision
	categories map[int]db.Category
	tags       map[int]db.Tag
}

func newMemStore() *memStore {
	return &memStore{
		posts: map[uuid.UUID]db.Post{},
		revs:  map[uuid.UUID][]db.Revision{},
		categories: map[int]db.Category{
			1: {ID: 1, Name: "Tech", Slug: "tech"},
		},
		tags: map[int]db.Tag{
			1: {ID: 1, Name: "go", Slug: "go"},
			2: {ID: 2, Name: "sql", Slug: "sql"},
		},
	}
}

func (s *memStore) PostByID(_ context.Context, id uuid.UUID) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (s *memStore) PostBySlug(_ context.Context, slug string) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post.Slug == slug {
			return &post, nil
		}
	}
	return nil, nil
}

func (s *memStore) SlugTaken(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post.Slug == slug && post.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) InsertPostWithRevision(_ context.Context, post *db.Post, rev *db.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = *post
	s.revs[post.ID] = append(s.revs[post.ID], *rev)
	return nil
}

func (s *memStore) UpdatePostWithRevision(_ context.Context, post *db.Post, rev *db.Revision, expectedRevision int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.posts[post.ID]
	if !ok || stored.Revision != expectedRevision {
		return db.ErrRevisionMismatch
	}

	s.posts[post.ID] = *post
	s.revs[post.ID] = append(s.revs[post.ID], *rev)
	return nil
}

func (s *memStore) Revisions(_ context.Context, postID uuid.UUID, afterNumber, limit int) ([]db.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var page []db.Revision
	for _, rev := range s.revs[postID] {
		if rev.Number > afterNumber {
			page = append(page, rev)
		}
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func (s *memStore) Categories(_ context.Context) ([]db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []db.Category
	for _, category := range s.categories {
		list = append(list, category)
	}
	return list, nil
}

func (s *memStore) CategoryByID(_ context.Context, id int) (*db.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (s *memStore) Tags(_ context.Context) ([]db.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []db.Tag
	for _, tag := range s.tags {
		list = append(list, tag)
	}
	return list, nil
}

func (s *memStore) TagsByIDs(_ context.Context, tagIDs []int) ([]db.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int]bool{}
	var list []db.Tag
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if tag, ok := s.tags[id]; ok {
			list = append(list, tag)
		}
	}
	return list, nil
}

func (s *memStore) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.posts[id]
	post.ViewCount++
	s.posts[id] = post
	return nil
}

func (s *memStore) IncrementShareCount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.posts[id]
	post.ShareCount++
	s.posts[id] = post
	return nil
}

type suggesterStub struct {
	requestFunc func(ctx context.Context, snap suggest.Snapshot, fields []suggest.Field) (*suggest.Request, error)
}

func (s *suggesterStub) Request(ctx context.Context, snap suggest.Snapshot, fields []suggest.Field) (*suggest.Request, error) {
	return s.requestFunc(ctx, snap, fields)
}

func newTestManager(store *memStore, suggester Suggester) *Manager {
	return NewManager(store, suggester, noOpLogger())
}

func ptr[T any](v T) *T { return &v }

func TestManager_CreateDraft(t *testing.T) {
	store := newMemStore()
	manager := newTestManager(store, nil)
	ctx := context.Background()

	categoryID := 1
	post, err := manager.CreateDraft(ctx, NewDraft{
		Title:      "Hello, World!",
		Body:       "first post",
		Summary:    "a short summary",
		CategoryID: &categoryID,
		TagIDs:     []int{1, 2},
	}, testAuthor)
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, StateDraft, post.State)
	assert.Equal(t, 1, post.Revision)
	assert.Equal(t, testAuthor.ID, post.AuthorID)
	assert.Len(t, post.Tags, 2)
	assert.Nil(t, post.PublishedAt)

	// Empty SEO fields default to title and summary.
	assert.Equal(t, "Hello, World!", post.MetaTitle)
	assert.Equal(t, "a short summary", post.MetaDescription)

	// The initial revision snapshot is written with the post.
	require.Len(t, store.revs[post.ID], 1)
	assert.Equal(t, 1, store.revs[post.ID][0].Number)
	assert.Equal(t, "first post", store.revs[post.ID][0].Body)
}

func TestManager_CreateDraft_Errors(t *testing.T) {
	tests := []struct {
		name    string
		draft   NewDraft
		author  Actor
		wantErr error
	}{
		{"NoEditCapability", NewDraft{Title: "x"}, testReader, ErrPermission},
		{"EmptyTitle", NewDraft{}, testAuthor, ErrInvalidArgument},
		{"UnknownCategory", NewDraft{Title: "x", CategoryID: ptr(99)}, testAuthor, ErrNotFound},
		{"UnknownTag", NewDraft{Title: "x", TagIDs: []int{1, 99}}, testAuthor, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager(newMemStore(), nil)
			_, err := manager.CreateDraft(context.Background(), tt.draft, tt.author)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManager_CreateDraft_SlugCollision(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	first, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello World"}, testAuthor)
	require.NoError(t, err)
	second, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello World"}, testAuthor)
	require.NoError(t, err)
	third, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello World"}, testAuthor)
	require.NoError(t, err)

	assert.Equal(t, "hello-world", first.Slug)
	assert.Equal(t, "hello-world-2", second.Slug)
	assert.Equal(t, "hello-world-3", third.Slug)
}

func TestManager_ApplyEdit(t *testing.T) {
	store := newMemStore()
	manager := newTestManager(store, nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "v1"}, testAuthor)
	require.NoError(t, err)

	edited, err := manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("v2")}, testAuthor, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, edited.Revision)
	assert.Equal(t, "v2", edited.Body)
	assert.Equal(t, "Hello", edited.Title)
	assert.Equal(t, StateDraft, edited.State)

	// The edit is reflected in the revision history.
	history, err := manager.History(ctx, post.ID)
	require.NoError(t, err)

	var revisions []Revision
	for rev, err := range history {
		require.NoError(t, err)
		revisions = append(revisions, rev)
	}
	require.Len(t, revisions, 2)
	assert.Equal(t, 1, revisions[0].Number)
	assert.Equal(t, "v1", revisions[0].Body)
	assert.Equal(t, 2, revisions[1].Number)
	assert.Equal(t, "v2", revisions[1].Body)
}

func TestManager_ApplyEdit_SlugFollowsTitleUntilPublished(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Old Title", Body: "b"}, testAuthor)
	require.NoError(t, err)

	edited, err := manager.ApplyEdit(ctx, post.ID, Patch{Title: ptr("New Title")}, testAuthor, 1)
	require.NoError(t, err)
	assert.Equal(t, "new-title", edited.Slug)

	// Publish, then rename again: the slug must stay fixed.
	_, err = manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 2)
	require.NoError(t, err)
	published, err := manager.Transition(ctx, post.ID, EventApprove, testPublisher, 3)
	require.NoError(t, err)

	renamed, err := manager.ApplyEdit(ctx, post.ID, Patch{Title: ptr("Final Title")}, testAuthor, published.Revision)
	require.NoError(t, err)
	assert.Equal(t, "Final Title", renamed.Title)
	assert.Equal(t, "new-title", renamed.Slug)
}

func TestManager_ApplyEdit_Errors(t *testing.T) {
	store := newMemStore()
	manager := newTestManager(store, nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	t.Run("EmptyPatch", func(t *testing.T) {
		_, err := manager.ApplyEdit(ctx, post.ID, Patch{}, testAuthor, 1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("NoEditCapability", func(t *testing.T) {
		_, err := manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("x")}, testReader, 1)
		assert.ErrorIs(t, err, ErrPermission)
	})

	t.Run("UnknownPost", func(t *testing.T) {
		_, err := manager.ApplyEdit(ctx, uuid.New(), Patch{Body: ptr("x")}, testAuthor, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("StaleRevision", func(t *testing.T) {
		var conflict *ConflictError
		_, err := manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("x")}, testAuthor, 7)
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, post.ID, conflict.PostID)
		assert.Equal(t, 7, conflict.Expected)
	})

	t.Run("EmptyTitle", func(t *testing.T) {
		_, err := manager.ApplyEdit(ctx, post.ID, Patch{Title: ptr("")}, testAuthor, 1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Archived", func(t *testing.T) {
		archived, err := manager.CreateDraft(ctx, NewDraft{Title: "Gone", Body: "b"}, testAuthor)
		require.NoError(t, err)
		_, err = manager.Transition(ctx, archived.ID, EventArchive, testPublisher, 1)
		require.NoError(t, err)

		_, err = manager.ApplyEdit(ctx, archived.ID, Patch{Body: ptr("x")}, testAuthor, 2)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestManager_ApplyEdit_ConcurrentWriters(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	// Two editors race with the same observed revision: exactly one edit
	// lands, the other gets a conflict.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		body := ptr(string(rune('a' + i)))
		go func() {
			defer wg.Done()
			_, err := manager.ApplyEdit(ctx, post.ID, Patch{Body: body}, testAuthor, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, conflicted int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		conflicted++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	updated, err := manager.Post(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Revision)
}

func TestManager_ApplyEdit_PublishedRevertsToInReview(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)
	_, err = manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 1)
	require.NoError(t, err)
	published, err := manager.Transition(ctx, post.ID, EventApprove, testPublisher, 2)
	require.NoError(t, err)
	require.Equal(t, StatePublished, published.State)

	edited, err := manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("fix typo")}, testAuthor, published.Revision)
	require.NoError(t, err)

	assert.Equal(t, StateInReview, edited.State)
	assert.NotNil(t, edited.PublishedAt, "first publication timestamp is kept")
}

func TestManager_PublishFlow(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)
	require.Equal(t, 1, post.Revision)

	inReview, err := manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 1)
	require.NoError(t, err)
	assert.Equal(t, StateInReview, inReview.State)
	assert.Equal(t, 2, inReview.Revision)

	before := time.Now()
	published, err := manager.Transition(ctx, post.ID, EventApprove, testPublisher, 2)
	require.NoError(t, err)

	assert.Equal(t, StatePublished, published.State)
	assert.Equal(t, 3, published.Revision, "approval advances the revision by exactly one")
	require.NotNil(t, published.PublishedAt)
	assert.False(t, published.PublishedAt.Before(before))
}

func TestManager_Transition_ReplayedEventConflicts(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	_, err = manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 1)
	require.NoError(t, err)

	// Replaying the same event with the same observed revision is a conflict,
	// not an illegal transition.
	var conflict *ConflictError
	_, err = manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 1)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, post.ID, conflict.PostID)
	assert.Equal(t, 1, conflict.Expected)
}

func TestManager_Transition_Errors(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	t.Run("UnknownPost", func(t *testing.T) {
		_, err := manager.Transition(ctx, uuid.New(), EventArchive, testPublisher, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("IllegalEvent", func(t *testing.T) {
		var invalid *InvalidTransitionError
		_, err := manager.Transition(ctx, post.ID, EventApprove, testPublisher, 1)
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, StateDraft, invalid.From)
		assert.Equal(t, EventApprove, invalid.Event)
	})

	t.Run("ApproveWithoutPublishCapability", func(t *testing.T) {
		_, err := manager.Transition(ctx, post.ID, EventSubmitForReview, testAuthor, 1)
		require.NoError(t, err)

		_, err = manager.Transition(ctx, post.ID, EventApprove, testAuthor, 2)
		assert.ErrorIs(t, err, ErrPermission)
	})

	t.Run("StaleRevision", func(t *testing.T) {
		var conflict *ConflictError
		_, err := manager.Transition(ctx, post.ID, EventReject, testPublisher, 1)
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 1, conflict.Expected)
	})

	t.Run("ArchiveWithoutArchiveCapability", func(t *testing.T) {
		_, err := manager.Transition(ctx, post.ID, EventArchive, testAuthor, 2)
		assert.ErrorIs(t, err, ErrPermission)
	})

	t.Run("SubmitWithEmptyBody", func(t *testing.T) {
		empty, err := manager.CreateDraft(ctx, NewDraft{Title: "No Body"}, testAuthor)
		require.NoError(t, err)

		_, err = manager.Transition(ctx, empty.ID, EventSubmitForReview, testAuthor, 1)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestManager_History_Restartable(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "v1"}, testAuthor)
	require.NoError(t, err)
	_, err = manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("v2")}, testAuthor, 1)
	require.NoError(t, err)
	_, err = manager.ApplyEdit(ctx, post.ID, Patch{Body: ptr("v3")}, testAuthor, 2)
	require.NoError(t, err)

	history, err := manager.History(ctx, post.ID)
	require.NoError(t, err)

	collect := func() []int {
		var numbers []int
		for rev, err := range history {
			require.NoError(t, err)
			numbers = append(numbers, rev.Number)
		}
		return numbers
	}

	first := collect()
	second := collect()
	assert.Equal(t, []int{1, 2, 3}, first)
	assert.Equal(t, first, second, "re-iterating yields the same sequence")
}

func TestManager_History_UnknownPost(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)

	_, err := manager.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_PostBySlug(t *testing.T) {
	store := newMemStore()
	manager := newTestManager(store, nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	found, err := manager.PostBySlug(ctx, "hello")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, 1, store.posts[post.ID].ViewCount)

	missing, err := manager.PostBySlug(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestManager_RecordShare(t *testing.T) {
	store := newMemStore()
	manager := newTestManager(store, nil)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)

	require.NoError(t, manager.RecordShare(ctx, post.ID))
	require.NoError(t, manager.RecordShare(ctx, post.ID))
	assert.Equal(t, 2, store.posts[post.ID].ShareCount)

	err = manager.RecordShare(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_RequestSuggestions(t *testing.T) {
	store := newMemStore()

	var gotSnap suggest.Snapshot
	var gotFields []suggest.Field
	suggester := &suggesterStub{
		requestFunc: func(_ context.Context, snap suggest.Snapshot, fields []suggest.Field) (*suggest.Request, error) {
			gotSnap = snap
			gotFields = fields
			return &suggest.Request{ID: uuid.New(), PostID: snap.PostID, Status: suggest.StatusSucceeded}, nil
		},
	}
	manager := newTestManager(store, suggester)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "body", Summary: "sum"}, testAuthor)
	require.NoError(t, err)

	req, err := manager.RequestSuggestions(ctx, post.ID, []string{"title", "seo_keywords"})
	require.NoError(t, err)

	assert.Equal(t, suggest.StatusSucceeded, req.Status)
	assert.Equal(t, post.ID, gotSnap.PostID)
	assert.Equal(t, "Hello", gotSnap.Title)
	assert.Equal(t, "body", gotSnap.Body)
	assert.Equal(t, []suggest.Field{suggest.FieldTitle, suggest.FieldSEOKeywords}, gotFields)
}

func TestManager_RequestSuggestions_Errors(t *testing.T) {
	manager := newTestManager(newMemStore(), &suggesterStub{})
	ctx := context.Background()

	_, err := manager.RequestSuggestions(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = manager.RequestSuggestions(ctx, uuid.New(), []string{"headline"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = manager.RequestSuggestions(ctx, uuid.New(), []string{"title"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_RequestSuggestions_FailureLeavesPostUnchanged(t *testing.T) {
	store := newMemStore()
	suggester := &suggesterStub{
		requestFunc: func(context.Context, suggest.Snapshot, []suggest.Field) (*suggest.Request, error) {
			return nil, context.DeadlineExceeded
		},
	}
	manager := newTestManager(store, suggester)
	ctx := context.Background()

	post, err := manager.CreateDraft(ctx, NewDraft{Title: "Hello", Body: "b"}, testAuthor)
	require.NoError(t, err)
	before := store.posts[post.ID]

	_, err = manager.RequestSuggestions(ctx, post.ID, []string{"summary"})
	require.Error(t, err)

	assert.Equal(t, before, store.posts[post.ID])
	assert.Len(t, store.revs[post.ID], 1)
}

func TestManager_CategoriesAndTags(t *testing.T) {
	manager := newTestManager(newMemStore(), nil)
	ctx := context.Background()

	categories, err := manager.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	tags, err := manager.Tags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}
