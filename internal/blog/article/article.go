// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package article implements the blogging content domain.

It defines the Article entity and the logic for publishing, editing, and
reacting to posts.

# Architecture

  - Entities: Article (post with counters and an SEO slug).
  - Ownership: Mutations require the author identity or an administrator;
    reads are public.
*/
package article

import (
	"context"
	"time"
)

// # Domain Entities

// Article represents a published blog post.
//
// The author reference is nullable: deleting an account keeps its articles
// with a detached author, and only administrators may mutate those.
type Article struct {
	ID           string    `json:"id"`
	AuthorID     *string   `json:"author_id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Entry        string    `json:"entry"`
	PubDate      time.Time `json:"pub_date"`
	LikeCount    int       `json:"like_count"`
	DislikeCount int       `json:"dislike_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Content Constraints

const (
	// MinTitleLength and MaxTitleLength bound the article headline.
	MinTitleLength = 10
	MaxTitleLength = 300

	// MinEntryLength keeps out throwaway posts.
	MinEntryLength = 200
)

// # Field Identifiers

const (
	FieldTitle = "title"
	FieldEntry = "entry"
)

// # Repository Contracts

// ArticleRepository defines the persistence contract for blog posts.
type ArticleRepository interface {

	/*
		List returns a page of articles ordered by publication date,
		newest first, along with the total count.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Article: Slice of hydrated entities
		  - int: Total count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, limit, offset int) ([]*Article, int, error)

	/*
		FindByID returns the article with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Article, error)

	/*
		FindBySlug returns the article with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Article: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindBySlug(context context.Context, slug string) (*Article, error)

	/*
		Create persists a new article.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: CONFLICT on slug collisions, or storage failures
	*/
	Create(context context.Context, article *Article) error

	/*
		Update persists changes to an article's mutable fields.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, article *Article) error

	/*
		Delete removes an article permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementLike bumps the like counter atomically.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	IncrementLike(context context.Context, id string) error

	/*
		IncrementDislike bumps the dislike counter atomically.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	IncrementDislike(context context.Context, id string) error
}

// ProfileCounter is the slice of the profile store this domain needs: the
// published-article counter lives on the author's profile.
type ProfileCounter interface {

	/*
		IncrementArticleCount bumps the author profile's article counter.

		Parameters:
		  - context: context.Context
		  - identityID: string

		Returns:
		  - error: Execution failures
	*/
	IncrementArticleCount(context context.Context, identityID string) error
}
