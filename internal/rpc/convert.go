package rpc

import "github.com/akozlovskiy/blog-cms/internal/blogcms"

func NewPost(p *blogcms.Post) Post {
	return Post{
		PostID:          p.ID,
		AuthorID:        p.AuthorID,
		Title:           p.Title,
		Slug:            p.Slug,
		Body:            p.Body,
		Summary:         p.Summary,
		State:           string(p.State),
		CategoryID:      p.CategoryID,
		Tags:            NewTags(p.Tags),
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		SeoKeywords:     p.SeoKeywords,
		Revision:        p.Revision,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		PublishedAt:     p.PublishedAt,
	}
}

func NewRevision(r blogcms.Revision) Revision {
	return Revision{
		Number:    r.Number,
		AuthorID:  r.AuthorID,
		Title:     r.Title,
		Body:      r.Body,
		Summary:   r.Summary,
		CreatedAt: r.CreatedAt,
	}
}

func NewCategory(c blogcms.Category) Category {
	return Category{
		CategoryID: c.ID,
		Name:       c.Name,
		Slug:       c.Slug,
	}
}

func NewTag(t blogcms.Tag) Tag {
	return Tag{
		TagID: t.ID,
		Name:  t.Name,
		Slug:  t.Slug,
	}
}

func NewCategories(list []blogcms.Category) []Category {
	result := make([]Category, len(list))
	for i := range list {
		result[i] = NewCategory(list[i])
	}
	return result
}

func NewTags(list []blogcms.Tag) []Tag {
	result := make([]Tag, len(list))
	for i := range list {
		result[i] = NewTag(list[i])
	}
	return result
}

func (a Actor) domain() blogcms.Actor {
	actor := blogcms.Actor{
		ID:   a.ID,
		Name: a.Name,
	}
	for _, name := range a.Capabilities {
		actor.Capabilities = append(actor.Capabilities, blogcms.Capability(name))
	}
	return actor
}
