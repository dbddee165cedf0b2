package db

import (
	"time"

	"github.com/google/uuid"
)

// Post lifecycle states as stored in the "state" column.
const (
	StateDraft     = "draft"
	StateInReview  = "in_review"
	StatePublished = "published"
	StateArchived  = "archived"
)

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID       uuid.UUID `pg:"postId,pk,type:uuid"`
	AuthorID uuid.UUID `pg:"authorId,type:uuid,use_zero"`

	Title         string `pg:"title,use_zero"`
	Slug          string `pg:"slug,use_zero"`
	Body          string `pg:"body,use_zero"`
	Summary       string `pg:"summary,use_zero"`
	FeaturedImage string `pg:"featuredImage,use_zero"`

	State      string `pg:"state,use_zero"`
	CategoryID *int   `pg:"categoryId"`
	TagIDs     []int  `pg:"tagIds,array,use_zero"`

	MetaTitle       string `pg:"metaTitle,use_zero"`
	MetaDescription string `pg:"metaDescription,use_zero"`
	SeoKeywords     string `pg:"seoKeywords,use_zero"`

	Revision   int `pg:"revision,use_zero"`
	ViewCount  int `pg:"viewCount,use_zero"`
	ShareCount int `pg:"shareCount,use_zero"`

	CreatedAt   time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt   time.Time  `pg:"updatedAt,use_zero"`
	PublishedAt *time.Time `pg:"publishedAt"`

	Category *Category `pg:"fk:categoryId,rel:has-one"`
}

// Revision is an immutable snapshot of a post's content fields. Rows are only
// ever inserted, in the same transaction as the post write they belong to.
type Revision struct {
	tableName struct{} `pg:"revisions,alias:t,discard_unknown_columns"`

	ID       int       `pg:"revisionId,pk"`
	PostID   uuid.UUID `pg:"postId,type:uuid,use_zero"`
	Number   int       `pg:"number,use_zero"`
	AuthorID uuid.UUID `pg:"authorId,type:uuid,use_zero"`

	Title           string `pg:"title,use_zero"`
	Body            string `pg:"body,use_zero"`
	Summary         string `pg:"summary,use_zero"`
	MetaTitle       string `pg:"metaTitle,use_zero"`
	MetaDescription string `pg:"metaDescription,use_zero"`
	SeoKeywords     string `pg:"seoKeywords,use_zero"`
	CategoryID      *int   `pg:"categoryId"`
	TagIDs          []int  `pg:"tagIds,array,use_zero"`

	CreatedAt time.Time `pg:"createdAt,use_zero"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID              int    `pg:"categoryId,pk"`
	Name            string `pg:"name,use_zero"`
	Slug            string `pg:"slug,use_zero"`
	Description     string `pg:"description,use_zero"`
	MetaTitle       string `pg:"metaTitle,use_zero"`
	MetaDescription string `pg:"metaDescription,use_zero"`
	OrderNumber     int    `pg:"orderNumber,use_zero"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	ID          int    `pg:"tagId,pk"`
	Name        string `pg:"name,use_zero"`
	Slug        string `pg:"slug,use_zero"`
	Description string `pg:"description,use_zero"`
	Color       string `pg:"color,use_zero"`
	Featured    bool   `pg:"featured,use_zero"`
}
