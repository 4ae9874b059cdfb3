// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package article (Postgres) implements the storage layer for blog posts.

# Schema Table Mapping
  - blog.article: Post content, reaction counters, and the unique slug.
*/
package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/database/schema"
	"github.com/risoko/inkwell/internal/platform/dberr"
)

// # Repository Implementation

// PostgresArticleRepository implements [ArticleRepository] using pgx.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new Postgres implementation for article storage.
func NewArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

// articleColumns yields the SELECT list in entity scan order.
func articleColumns() string {
	table := schema.BlogArticle
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		table.ID, table.AuthorID, table.Slug, table.Title, table.Entry,
		table.PubDate, table.LikeCount, table.DislikeCount, table.CreatedAt, table.UpdatedAt)
}

// # ArticleRepository Methods

/*
List retrieves a page of articles ordered by publication date, newest first.

Description: The total count is computed in the same statement via a window
function, so pagination metadata never drifts from the page contents.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Article: Page of hydrated entities
  - int: Total article count
  - error: Execution failures
*/
func (repository *PostgresArticleRepository) List(context context.Context, limit, offset int) ([]*Article, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		articleColumns(),
		schema.BlogArticle.Table,
		schema.BlogArticle.PubDate,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_failed: %w", err)
	}
	defer rows.Close()

	total := 0
	articles := []*Article{}
	for rows.Next() {
		article := &Article{}
		err := rows.Scan(
			&article.ID,
			&article.AuthorID,
			&article.Slug,
			&article.Title,
			&article.Entry,
			&article.PubDate,
			&article.LikeCount,
			&article.DislikeCount,
			&article.CreatedAt,
			&article.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_article_repo_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_rows_failed: %w", err)
	}

	return articles, total, nil
}

/*
FindByID retrieves an article by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Article: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresArticleRepository) FindByID(context context.Context, id string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		articleColumns(), schema.BlogArticle.Table, schema.BlogArticle.ID)

	return repository.scanOne(context, query, id)
}

/*
FindBySlug retrieves an article by its unique slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Article: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresArticleRepository) FindBySlug(context context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		articleColumns(), schema.BlogArticle.Table, schema.BlogArticle.Slug)

	return repository.scanOne(context, query, slug)
}

/*
Create persists a new article.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: CONFLICT on slug collisions, or storage failures
*/
func (repository *PostgresArticleRepository) Create(context context.Context, article *Article) error {
	table := schema.BlogArticle
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		table.Table,
		table.ID, table.AuthorID, table.Slug, table.Title, table.Entry,
		table.PubDate, table.LikeCount, table.DislikeCount, table.CreatedAt, table.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		article.ID,
		article.AuthorID,
		article.Slug,
		article.Title,
		article.Entry,
		article.PubDate,
		article.LikeCount,
		article.DislikeCount,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Article")
	}

	return nil
}

/*
Update persists the mutable fields of an existing article.

Description: The slug is intentionally left untouched so published links keep
resolving after edits.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: apperr.NotFound when the row vanished, or execution failures
*/
func (repository *PostgresArticleRepository) Update(context context.Context, article *Article) error {
	table := schema.BlogArticle
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		table.Table,
		table.Title, table.Entry, table.UpdatedAt,
		table.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		article.ID,
		article.Title,
		article.Entry,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}

	return nil
}

/*
Delete removes an article permanently.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresArticleRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.BlogArticle.Table, schema.BlogArticle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}

	return nil
}

/*
IncrementLike bumps the like counter atomically in the database.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresArticleRepository) IncrementLike(context context.Context, id string) error {
	return repository.incrementCounter(context, schema.BlogArticle.LikeCount, id)
}

/*
IncrementDislike bumps the dislike counter atomically in the database.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresArticleRepository) IncrementDislike(context context.Context, id string) error {
	return repository.incrementCounter(context, schema.BlogArticle.DislikeCount, id)
}

// incrementCounter applies a single-column relative UPDATE, which keeps
// concurrent reactions from losing increments to read-modify-write races.
func (repository *PostgresArticleRepository) incrementCounter(context context.Context, column, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.BlogArticle.Table, column, column, schema.BlogArticle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_increment_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Article")
	}

	return nil
}

// scanOne runs a single-row article query and hydrates the entity.
func (repository *PostgresArticleRepository) scanOne(context context.Context, query string, args ...any) (*Article, error) {
	article := &Article{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&article.ID,
		&article.AuthorID,
		&article.Slug,
		&article.Title,
		&article.Entry,
		&article.PubDate,
		&article.LikeCount,
		&article.DislikeCount,
		&article.CreatedAt,
		&article.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Article")
		}
		return nil, fmt.Errorf("postgres_article_repo_find_failed: %w", err)
	}

	return article, nil
}
