package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/akozlovskiy/blog-cms/internal/blogcms"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

//go:generate zenrpc

// BlogService provides RPC methods for the publishing workflow.
type BlogService struct {
	zenrpc.Service
	manager *blogcms.Manager
}

func NewBlogService(manager *blogcms.Manager) *BlogService {
	return &BlogService{manager: manager}
}

// rpcError maps a workflow error onto a JSON-RPC error code.
func rpcError(err error) *zenrpc.Error {
	var conflict *blogcms.ConflictError
	var invalidTransition *blogcms.InvalidTransitionError

	switch {
	case errors.Is(err, blogcms.ErrNotFound):
		return zenrpc.NewStringError(404, "not found")
	case errors.As(err, &conflict), errors.As(err, &invalidTransition),
		errors.Is(err, blogcms.ErrInvalidState):
		return zenrpc.NewStringError(409, err.Error())
	case errors.Is(err, blogcms.ErrPermission):
		return zenrpc.NewStringError(403, "forbidden")
	case errors.Is(err, blogcms.ErrInvalidArgument):
		return zenrpc.NewStringError(400, err.Error())
	}

	return zenrpc.NewStringError(500, "internal error")
}

// ByID retrieves a single post with its tags.
//
//zenrpc:id post UUID
//zenrpc:return post
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *BlogService) ByID(ctx context.Context, req PostByIDRequest) (*Post, error) {
	post, err := s.manager.Post(ctx, req.ID)
	if err != nil {
		return nil, rpcError(err)
	}
	if post == nil {
		return nil, zenrpc.NewStringError(404, "post not found")
	}

	result := NewPost(post)
	return &result, nil
}

// Edit applies a partial content edit and produces a new revision.
//
//zenrpc:id post UUID
//zenrpc:expectedRevision revision the editor last observed
//zenrpc:return updated post
//zenrpc:409 revision conflict or post archived
//zenrpc:500 internal server error
func (s *BlogService) Edit(ctx context.Context, req EditRequest) (*Post, error) {
	post, err := s.manager.ApplyEdit(ctx, req.ID, blogcms.Patch{
		Title:           req.Title,
		Body:            req.Body,
		Summary:         req.Summary,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SeoKeywords:     req.SeoKeywords,
		CategoryID:      req.CategoryID,
		TagIDs:          req.TagIDs,
	}, req.Actor.domain(), req.ExpectedRevision)
	if err != nil {
		return nil, rpcError(err)
	}

	result := NewPost(post)
	return &result, nil
}

// Transition applies a lifecycle event to the post.
//
//zenrpc:id post UUID
//zenrpc:event one of submit_for_review, approve, reject, unpublish, archive
//zenrpc:expectedRevision revision the actor last observed
//zenrpc:return updated post
//zenrpc:409 illegal transition or revision conflict
//zenrpc:500 internal server error
func (s *BlogService) Transition(ctx context.Context, req TransitionRequest) (*Post, error) {
	event, err := blogcms.ParseEvent(req.Event)
	if err != nil {
		return nil, rpcError(err)
	}

	post, err := s.manager.Transition(ctx, req.ID, event, req.Actor.domain(), req.ExpectedRevision)
	if err != nil {
		return nil, rpcError(err)
	}

	result := NewPost(post)
	return &result, nil
}

// Suggest generates AI suggestions for the requested post fields. The post
// itself is not modified.
//
//zenrpc:id post UUID
//zenrpc:fields fields to generate suggestions for
//zenrpc:return suggestion request in a terminal state
//zenrpc:400 empty or unknown field list
//zenrpc:500 internal server error
func (s *BlogService) Suggest(ctx context.Context, req SuggestRequest) (*suggest.Request, error) {
	result, err := s.manager.RequestSuggestions(ctx, req.ID, req.Fields)
	if err != nil {
		return nil, rpcError(err)
	}

	return result, nil
}

// History returns the post's revisions ordered by number ascending.
//
//zenrpc:id post UUID
//zenrpc:return list of revisions
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *BlogService) History(ctx context.Context, req PostByIDRequest) ([]Revision, error) {
	history, err := s.manager.History(ctx, req.ID)
	if err != nil {
		return nil, rpcError(err)
	}

	revisions := []Revision{}
	for rev, err := range history {
		if err != nil {
			return nil, rpcError(err)
		}
		revisions = append(revisions, NewRevision(rev))
	}

	return revisions, nil
}

// Categories retrieves all categories ordered by orderNumber.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *BlogService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, rpcError(err)
	}

	return NewCategories(categories), nil
}

// Tags retrieves all tags ordered by name.
//
//zenrpc:return list of tags
//zenrpc:500 internal server error
func (s *BlogService) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := s.manager.Tags(ctx)
	if err != nil {
		return nil, rpcError(err)
	}

	return NewTags(tags), nil
}
