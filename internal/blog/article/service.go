// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/pkg/slug"
	"github.com/risoko/inkwell/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for blog articles.
type Service struct {
	articleRepository ArticleRepository
	profileCounter    ProfileCounter
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(articleRepo ArticleRepository, profileCounter ProfileCounter, logger *slog.Logger) *Service {
	return &Service{
		articleRepository: articleRepo,
		profileCounter:    profileCounter,
		logger:            logger,
	}
}

// # Discovery

/*
ListArticles retrieves a page of published articles, newest first.

Parameters:
  - context: context.Context
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Article: Slice of matching records
  - int: Total count (for pagination metadata)
  - error: Repository level errors
*/
func (service *Service) ListArticles(context context.Context, limit, offset int) ([]*Article, int, error) {
	return service.articleRepository.List(context, limit, offset)
}

/*
GetArticle fetches a single article by UUID or SEO slug.

Description: If the identifier matches the UUID format a primary key lookup
is performed; otherwise the unique slug resolves it.

Parameters:
  - context: context.Context
  - identifier: string (UUID or slug)

Returns:
  - *Article: The hydrated entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetArticle(context context.Context, identifier string) (*Article, error) {
	if isUUID(identifier) {
		return service.articleRepository.FindByID(context, identifier)
	}
	return service.articleRepository.FindBySlug(context, identifier)
}

// # Publication

// CreateArticleInput holds the data for a new post.
type CreateArticleInput struct {
	Title string
	Entry string
}

/*
CreateArticle publishes a new post authored by the acting identity.

Description: Generates a stable UUIDv7 identity and an SEO slug from the
title, stamps the publication date, and bumps the author profile's article
counter after a successful insert.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (The acting identity)
  - input: CreateArticleInput

Returns:
  - *Article: The persisted entity
  - error: CONFLICT on a slug collision, or storage failures
*/
func (service *Service) CreateArticle(context context.Context, claims *sec.AuthClaims, input CreateArticleInput) (*Article, error) {
	now := time.Now()
	authorID := claims.UserID

	article := &Article{
		ID:        uuid.New(),
		AuthorID:  &authorID,
		Slug:      slug.From(input.Title),
		Title:     input.Title,
		Entry:     input.Entry,
		PubDate:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.articleRepository.Create(context, article); err != nil {
		return nil, err
	}

	// Counter maintenance is best-effort: the post is already live.
	if err := service.profileCounter.IncrementArticleCount(context, authorID); err != nil {
		service.logger.Warn("article_count_increment_failed",
			slog.String("identity_id", authorID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("article_published",
		slog.String("article_id", article.ID),
		slog.String("author_id", authorID),
	)

	return article, nil
}

// UpdateArticleInput holds the mutable subset of an article.
type UpdateArticleInput struct {
	Title *string
	Entry *string
}

/*
UpdateArticle applies a partial edit to an existing post.

Description: Only the author or an administrator may edit. The slug stays
stable across title edits so published links never break.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (The acting identity)
  - id: string
  - input: UpdateArticleInput

Returns:
  - *Article: The updated entity
  - error: apperr.Forbidden for non-owners, apperr.NotFound, or storage failures
*/
func (service *Service) UpdateArticle(context context.Context, claims *sec.AuthClaims, id string, input UpdateArticleInput) (*Article, error) {
	article, err := service.articleRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !canMutate(claims, article) {
		return nil, apperr.Forbidden("You do not have permission to modify this article")
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Entry != nil {
		article.Entry = *input.Entry
	}
	article.UpdatedAt = time.Now()

	if err := service.articleRepository.Update(context, article); err != nil {
		return nil, fmt.Errorf("article_service_update_failed: %w", err)
	}

	return article, nil
}

/*
DeleteArticle removes a post permanently.

Description: Only the author or an administrator may delete.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (The acting identity)
  - id: string

Returns:
  - error: apperr.Forbidden for non-owners, apperr.NotFound, or storage failures
*/
func (service *Service) DeleteArticle(context context.Context, claims *sec.AuthClaims, id string) error {
	article, err := service.articleRepository.FindByID(context, id)
	if err != nil {
		return err
	}

	if !canMutate(claims, article) {
		return apperr.Forbidden("You do not have permission to delete this article")
	}

	if err := service.articleRepository.Delete(context, id); err != nil {
		return fmt.Errorf("article_service_delete_failed: %w", err)
	}

	service.logger.Info("article_deleted",
		slog.String("article_id", id),
		slog.String("actor_id", claims.UserID),
	)

	return nil
}

// # Reactions

/*
LikeArticle bumps the like counter of a post.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The entity with the fresh counter
  - error: apperr.NotFound or execution failures
*/
func (service *Service) LikeArticle(context context.Context, id string) (*Article, error) {
	if err := service.articleRepository.IncrementLike(context, id); err != nil {
		return nil, err
	}
	return service.articleRepository.FindByID(context, id)
}

/*
DislikeArticle bumps the dislike counter of a post.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Article: The entity with the fresh counter
  - error: apperr.NotFound or execution failures
*/
func (service *Service) DislikeArticle(context context.Context, id string) (*Article, error) {
	if err := service.articleRepository.IncrementDislike(context, id); err != nil {
		return nil, err
	}
	return service.articleRepository.FindByID(context, id)
}

// # Helpers

// canMutate implements the ownership predicate: the author identity or an
// administrator. Articles with a detached author are admin-only.
func canMutate(claims *sec.AuthClaims, article *Article) bool {
	if claims.IsAdmin() {
		return true
	}
	return article.AuthorID != nil && *article.AuthorID == claims.UserID
}

// isUUID returns true if the string matches the standard UUID shape.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	return s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-'
}
