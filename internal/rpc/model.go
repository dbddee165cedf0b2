package rpc

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	PostID          uuid.UUID  `json:"postId"`
	AuthorID        uuid.UUID  `json:"authorId"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Body            string     `json:"body"`
	Summary         string     `json:"summary"`
	State           string     `json:"state"`
	CategoryID      *int       `json:"categoryId,omitempty"`
	Tags            []Tag      `json:"tags"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	SeoKeywords     string     `json:"seoKeywords"`
	Revision        int        `json:"revision"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}

type Revision struct {
	Number    int       `json:"number"`
	AuthorID  uuid.UUID `json:"authorId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	CategoryID int    `json:"categoryId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

type Tag struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

type Actor struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Capabilities []string  `json:"capabilities"`
}

type PostByIDRequest struct {
	ID uuid.UUID `json:"id"`
}

type EditRequest struct {
	ID               uuid.UUID `json:"id"`
	Actor            Actor     `json:"actor"`
	ExpectedRevision int       `json:"expectedRevision"`
	Title            *string   `json:"title"`
	Body             *string   `json:"body"`
	Summary          *string   `json:"summary"`
	MetaTitle        *string   `json:"metaTitle"`
	MetaDescription  *string   `json:"metaDescription"`
	SeoKeywords      *string   `json:"seoKeywords"`
	CategoryID       *int      `json:"categoryId"`
	TagIDs           []int     `json:"tagIds"`
}

type TransitionRequest struct {
	ID               uuid.UUID `json:"id"`
	Actor            Actor     `json:"actor"`
	Event            string    `json:"event"`
	ExpectedRevision int       `json:"expectedRevision"`
}

type SuggestRequest struct {
	ID     uuid.UUID `json:"id"`
	Fields []string  `json:"fields"`
}
