package rest

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/akozlovskiy/blog-cms/internal/blogcms"
	"github.com/akozlovskiy/blog-cms/internal/suggest"
)

// Workflow is the workflow engine port consumed by the REST layer,
// implemented by *blogcms.Manager.
type Workflow interface {
	CreateDraft(ctx context.Context, draft blogcms.NewDraft, author blogcms.Actor) (*blogcms.Post, error)
	Post(ctx context.Context, id uuid.UUID) (*blogcms.Post, error)
	PostBySlug(ctx context.Context, slug string) (*blogcms.Post, error)
	ApplyEdit(ctx context.Context, id uuid.UUID, patch blogcms.Patch, editor blogcms.Actor, expectedRevision int) (*blogcms.Post, error)
	Transition(ctx context.Context, id uuid.UUID, event blogcms.Event, actor blogcms.Actor, expectedRevision int) (*blogcms.Post, error)
	RequestSuggestions(ctx context.Context, id uuid.UUID, fields []string) (*suggest.Request, error)
	History(ctx context.Context, id uuid.UUID) (iter.Seq2[blogcms.Revision, error], error)
	Categories(ctx context.Context) ([]blogcms.Category, error)
	Tags(ctx context.Context) ([]blogcms.Tag, error)
	RecordShare(ctx context.Context, id uuid.UUID) error
}

type BlogHandler struct {
	wf  Workflow
	log *slog.Logger
}

func NewBlogHandler(wf Workflow, log *slog.Logger) *BlogHandler {
	return &BlogHandler{
		wf:  wf,
		log: log,
	}
}

// RegisterRoutes registers all routes for the handler.
func (h *BlogHandler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	api.POST("/posts", h.CreatePost)
	api.GET("/posts/:id", h.PostByID)
	api.GET("/posts/slug/:slug", h.PostBySlug)
	api.PATCH("/posts/:id", h.EditPost)
	api.POST("/posts/:id/transition", h.TransitionPost)
	api.POST("/posts/:id/suggestions", h.SuggestPost)
	api.POST("/posts/:id/shares", h.SharePost)
	api.GET("/posts/:id/revisions", h.PostRevisions)
	api.GET("/categories", h.Categories)
	api.GET("/tags", h.Tags)

	return e
}

func (h *BlogHandler) handleError(c echo.Context, err error) error {
	var conflict *blogcms.ConflictError
	var invalidTransition *blogcms.InvalidTransitionError

	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, blogcms.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.As(err, &conflict):
		status, message = http.StatusConflict, err.Error()
	case errors.As(err, &invalidTransition):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, blogcms.ErrInvalidState):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, blogcms.ErrPermission):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, blogcms.ErrInvalidArgument):
		status, message = http.StatusBadRequest, err.Error()
	}

	h.log.Error("request failed",
		"method", c.Request().Method, "path", c.Path(), "status", status, "error", err)

	return c.JSON(status, map[string]string{"error": message})
}

// actorFromRequest builds the acting user from request headers. Token
// validation happens upstream in the authorization layer; by the time a
// request reaches this service the headers are trusted.
func actorFromRequest(c echo.Context) (blogcms.Actor, error) {
	id, err := uuid.Parse(c.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return blogcms.Actor{}, fmt.Errorf("%w: missing or malformed X-Actor-Id", blogcms.ErrInvalidArgument)
	}

	actor := blogcms.Actor{
		ID:   id,
		Name: c.Request().Header.Get("X-Actor-Name"),
	}

	for _, name := range strings.Split(c.Request().Header.Get("X-Actor-Capabilities"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			actor.Capabilities = append(actor.Capabilities, blogcms.Capability(name))
		}
	}

	return actor, nil
}

func postID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid post id", blogcms.ErrInvalidArgument)
	}
	return id, nil
}

// CreatePost handles POST /api/v1/posts
// @Summary Create a draft post
// @Description Creates a post in the draft state with revision 1. Slug is derived from the title.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body rest.CreatePostRequest true "Draft content"
// @Success 201 {object} rest.Post
// @Failure 400,403,404,500 {object} map[string]string
// @Router /api/v1/posts [post]
func (h *BlogHandler) CreatePost(c echo.Context) error {
	actor, err := actorFromRequest(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, fmt.Errorf("%w: invalid request body", blogcms.ErrInvalidArgument))
	}

	post, err := h.wf.CreateDraft(c.Request().Context(), blogcms.NewDraft{
		Title:           req.Title,
		Body:            req.Body,
		Summary:         req.Summary,
		FeaturedImage:   req.FeaturedImage,
		CategoryID:      req.CategoryID,
		TagIDs:          req.TagIDs,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SeoKeywords:     req.SeoKeywords,
	}, actor)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewPost(post))
}

// PostByID handles GET /api/v1/posts/:id
// @Summary Get post by ID
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} rest.Post
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/posts/{id} [get]
func (h *BlogHandler) PostByID(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	post, err := h.wf.Post(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	if post == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.JSON(http.StatusOK, NewPost(post))
}

// PostBySlug handles GET /api/v1/posts/slug/:slug
// @Summary Get post by slug
// @Description Retrieves a post by its slug and records the view.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} rest.Post
// @Failure 404,500 {object} map[string]string
// @Router /api/v1/posts/slug/{slug} [get]
func (h *BlogHandler) PostBySlug(c echo.Context) error {
	post, err := h.wf.PostBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.handleError(c, err)
	}
	if post == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}

	return c.JSON(http.StatusOK, NewPost(post))
}

// EditPost handles PATCH /api/v1/posts/:id
// @Summary Edit post content
// @Description Applies a partial edit and produces a new revision. The caller must supply the revision it last observed; a stale revision is rejected with 409.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body rest.EditPostRequest true "Patch and expected revision"
// @Success 200 {object} rest.Post
// @Failure 400,403,404,409,500 {object} map[string]string
// @Router /api/v1/posts/{id} [patch]
func (h *BlogHandler) EditPost(c echo.Context) error {
	actor, err := actorFromRequest(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req EditPostRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, fmt.Errorf("%w: invalid request body", blogcms.ErrInvalidArgument))
	}

	post, err := h.wf.ApplyEdit(c.Request().Context(), id, blogcms.Patch{
		Title:           req.Title,
		Body:            req.Body,
		Summary:         req.Summary,
		FeaturedImage:   req.FeaturedImage,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		SeoKeywords:     req.SeoKeywords,
		CategoryID:      req.CategoryID,
		TagIDs:          req.TagIDs,
	}, actor, req.ExpectedRevision)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewPost(post))
}

// TransitionPost handles POST /api/v1/posts/:id/transition
// @Summary Apply a lifecycle event
// @Description Applies submit_for_review, approve, reject, unpublish or archive to the post.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body rest.TransitionRequest true "Event and expected revision"
// @Success 200 {object} rest.Post
// @Failure 400,403,404,409,500 {object} map[string]string
// @Router /api/v1/posts/{id}/transition [post]
func (h *BlogHandler) TransitionPost(c echo.Context) error {
	actor, err := actorFromRequest(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, fmt.Errorf("%w: invalid request body", blogcms.ErrInvalidArgument))
	}

	event, err := blogcms.ParseEvent(req.Event)
	if err != nil {
		return h.handleError(c, err)
	}

	post, err := h.wf.Transition(c.Request().Context(), id, event, actor, req.ExpectedRevision)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewPost(post))
}

// SuggestPost handles POST /api/v1/posts/:id/suggestions
// @Summary Request AI suggestions
// @Description Generates suggestions for the requested fields against a snapshot of the post. The post itself is not modified; merge accepted suggestions with PATCH.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body rest.SuggestRequest true "Fields to generate suggestions for"
// @Success 200 {object} suggest.Request
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/posts/{id}/suggestions [post]
func (h *BlogHandler) SuggestPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req SuggestRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, fmt.Errorf("%w: invalid request body", blogcms.ErrInvalidArgument))
	}

	result, err := h.wf.RequestSuggestions(c.Request().Context(), id, req.Fields)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// SharePost handles POST /api/v1/posts/:id/shares
// @Summary Record a share
// @Tags posts
// @Param id path string true "Post ID"
// @Success 204
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/posts/{id}/shares [post]
func (h *BlogHandler) SharePost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.wf.RecordShare(c.Request().Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PostRevisions handles GET /api/v1/posts/:id/revisions
// @Summary Get revision history
// @Description Returns the post's revisions ordered by revision number ascending.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} rest.Revision
// @Failure 400,404,500 {object} map[string]string
// @Router /api/v1/posts/{id}/revisions [get]
func (h *BlogHandler) PostRevisions(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	history, err := h.wf.History(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	revisions := []Revision{}
	for rev, err := range history {
		if err != nil {
			return h.handleError(c, err)
		}
		revisions = append(revisions, NewRevision(rev))
	}

	return c.JSON(http.StatusOK, revisions)
}

// Categories handles GET /api/v1/categories
// @Summary Get all categories
// @Tags categories
// @Produce json
// @Success 200 {array} rest.Category
// @Failure 500 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *BlogHandler) Categories(c echo.Context) error {
	categories, err := h.wf.Categories(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewCategories(categories))
}

// Tags handles GET /api/v1/tags
// @Summary Get all tags
// @Tags tags
// @Produce json
// @Success 200 {array} rest.Tag
// @Failure 500 {object} map[string]string
// @Router /api/v1/tags [get]
func (h *BlogHandler) Tags(c echo.Context) error {
	tags, err := h.wf.Tags(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewTags(tags))
}
