package rest

import "github.com/akozlovskiy/blog-cms/internal/blogcms"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewPost(p *blogcms.Post) Post {
	post := Post{
		PostID:          p.ID,
		AuthorID:        p.AuthorID,
		Title:           p.Title,
		Slug:            p.Slug,
		Body:            p.Body,
		Summary:         p.Summary,
		FeaturedImage:   p.FeaturedImage,
		State:           string(p.State),
		CategoryID:      p.CategoryID,
		Tags:            NewTags(p.Tags),
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
		category := NewCategory(*p.Category)
		post.Category = &category
	}

	return post
}

func NewRevision(r blogcms.Revision) Revision {
	return Revision{
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

func NewCategory(c blogcms.Category) Category {
	return Category{
		CategoryID:      c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
	}
}

func NewTag(t blogcms.Tag) Tag {
	return Tag{
		TagID:    t.ID,
		Name:     t.Name,
		Slug:     t.Slug,
		Color:    t.Color,
		Featured: t.Featured,
	}
}

func NewCategories(list []blogcms.Category) []Category {
	return Map(list, NewCategory)
}

func NewTags(list []blogcms.Tag) []Tag {
	return Map(list, NewTag)
}
