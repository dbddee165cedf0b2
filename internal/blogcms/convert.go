package blogcms

import (
	"github.com/akozlovskiy/blog-cms/internal/db"
)

func NewPost(p *db.Post) *Post {
	post := &Post{
		ID:              p.ID,
		AuthorID:        p.AuthorID,
		Title:           p.Title,
		Slug:            p.Slug,
		Body:            p.Body,
		Summary:         p.Summary,
		FeaturedImage:   p.FeaturedImage,
		State:           State(p.State),
		CategoryID:      p.CategoryID,
		TagIDs:          p.TagIDs,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		SeoKeywords:     p.SeoKeywords,
		Revision:        p.Revision,
		ViewCount:       p.ViewCount,
		ShareCount:      p.ShareCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		PublishedAt:     p.PublishedAt,
	}

	if p.Category != nil {
		category := NewCategory(p.Category)
		post.Category = &category
	}

	return post
}

func NewRevision(r *db.Revision) Revision {
	return Revision{
		PostID:          r.PostID,
		Number:          r.Number,
		AuthorID:        r.AuthorID,
		Title:           r.Title,
		Body:            r.Body,
		Summary:         r.Summary,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		SeoKeywords:     r.SeoKeywords,
		CategoryID:      r.CategoryID,
		TagIDs:          r.TagIDs,
		CreatedAt:       r.CreatedAt,
	}
}

func NewCategory(c *db.Category) Category {
	return Category{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		OrderNumber:     c.OrderNumber,
	}
}

func NewTag(t *db.Tag) Tag {
	return Tag{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Color:       t.Color,
		Featured:    t.Featured,
	}
}

func NewCategories(list []db.Category) []Category {
	result := make([]Category, len(list))
	for i := range list {
		result[i] = NewCategory(&list[i])
	}
	return result
}

func NewTags(list []db.Tag) []Tag {
	result := make([]Tag, len(list))
	for i := range list {
		result[i] = NewTag(&list[i])
	}
	return result
}
