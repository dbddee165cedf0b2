package rest

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
	FeaturedImage   string     `json:"featuredImage,omitempty"`
	State           string     `json:"state"`
	CategoryID      *int       `json:"categoryId,omitempty"`
	Category        *Category  `json:"category,omitempty"`
	Tags            []Tag      `json:"tags"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	SeoKeywords     string     `json:"seoKeywords"`
	Revision        int        `json:"revision"`
	ViewCount       int        `json:"viewCount"`
	ShareCount      int        `json:"shareCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}

type Revision struct {
	Number          int       `json:"number"`
	AuthorID        uuid.UUID `json:"authorId"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Summary         string    `json:"summary"`
	MetaTitle       string    `json:"metaTitle"`
	MetaDescription string    `json:"metaDescription"`
	SeoKeywords     string    `json:"seoKeywords"`
	CategoryID      *int      `json:"categoryId,omitempty"`
	TagIDs          []int     `json:"tagIds"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Category struct {
	CategoryID      int    `json:"categoryId"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description,omitempty"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
}

type Tag struct {
	TagID    int    `json:"tagId"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Color    string `json:"color,omitempty"`
	Featured bool   `json:"featured,omitempty"`
}

type CreatePostRequest struct {
	Title           string `json:"title"`
	Body            string `json:"body"`
	Summary         string `json:"summary"`
	FeaturedImage   string `json:"featuredImage"`
	CategoryID      *int   `json:"categoryId"`
	TagIDs          []int  `json:"tagIds"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	SeoKeywords     string `json:"seoKeywords"`
}

type EditPostRequest struct {
	ExpectedRevision int     `json:"expectedRevision"`
	Title            *string `json:"title"`
	Body             *string `json:"body"`
	Summary          *string `json:"summary"`
	FeaturedImage    *string `json:"featuredImage"`
	MetaTitle        *string `json:"metaTitle"`
	MetaDescription  *string `json:"metaDescription"`
	SeoKeywords      *string `json:"seoKeywords"`
	CategoryID       *int    `json:"categoryId"`
	TagIDs           []int   `json:"tagIds"`
}

type TransitionRequest struct {
	Event            string `json:"event"`
	ExpectedRevision int    `json:"expectedRevision"`
}

type SuggestRequest struct {
	Fields []string `json:"fields"`
}
