// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package schema

// BlogArticleTable represents the 'blog.article' table
type BlogArticleTable struct {
	Table        string
	ID           string
	AuthorID     string
	Slug         string
	Title        string
	Entry        string
	PubDate      string
	LikeCount    string
	DislikeCount string
	CreatedAt    string
	UpdatedAt    string
}

// BlogArticle is the schema definition for blog.article
var BlogArticle = BlogArticleTable{
	Table:        "blog.article",
	ID:           "id",
	AuthorID:     "authorid",
	Slug:         "slug",
	Title:        "title",
	Entry:        "entry",
	PubDate:      "pubdate",
	LikeCount:    "likecount",
	DislikeCount: "dislikecount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t BlogArticleTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Slug, t.Title, t.Entry,
		t.PubDate, t.LikeCount, t.DislikeCount, t.CreatedAt, t.UpdatedAt,
	}
}
