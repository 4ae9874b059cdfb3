// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package article_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risoko/inkwell/internal/blog/article"
	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/pkg/pointer"
)

// # Test Fakes

type fakeArticleRepository struct {
	articles map[string]*article.Article
}

func newFakeArticleRepository() *fakeArticleRepository {
	return &fakeArticleRepository{articles: map[string]*article.Article{}}
}

func (f *fakeArticleRepository) List(_ context.Context, limit, offset int) ([]*article.Article, int, error) {
	all := []*article.Article{}
	for _, a := range f.articles {
		all = append(all, a)
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(f.articles), nil
}

func (f *fakeArticleRepository) FindByID(_ context.Context, id string) (*article.Article, error) {
	a, ok := f.articles[id]
	if !ok {
		return nil, apperr.NotFound("Article")
	}
	clone := *a
	return &clone, nil
}

func (f *fakeArticleRepository) FindBySlug(_ context.Context, slug string) (*article.Article, error) {
	for _, a := range f.articles {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Article")
}

func (f *fakeArticleRepository) Create(_ context.Context, a *article.Article) error {
	for _, existing := range f.articles {
		if existing.Slug == a.Slug {
			return apperr.Conflict("Article with this slug already exists")
		}
	}
	clone := *a
	f.articles[a.ID] = &clone
	return nil
}

func (f *fakeArticleRepository) Update(_ context.Context, a *article.Article) error {
	stored, ok := f.articles[a.ID]
	if !ok {
		return apperr.NotFound("Article")
	}
	stored.Title = a.Title
	stored.Entry = a.Entry
	stored.UpdatedAt = a.UpdatedAt
	return nil
}

func (f *fakeArticleRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.articles[id]; !ok {
		return apperr.NotFound("Article")
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeArticleRepository) IncrementLike(_ context.Context, id string) error {
	a, ok := f.articles[id]
	if !ok {
		return apperr.NotFound("Article")
	}
	a.LikeCount++
	return nil
}

func (f *fakeArticleRepository) IncrementDislike(_ context.Context, id string) error {
	a, ok := f.articles[id]
	if !ok {
		return apperr.NotFound("Article")
	}
	a.DislikeCount++
	return nil
}

type fakeProfileCounter struct {
	increments []string
}

func (f *fakeProfileCounter) IncrementArticleCount(_ context.Context, identityID string) error {
	f.increments = append(f.increments, identityID)
	return nil
}

// # Fixtures

const (
	authorIdentityID = "0191a7b0-0000-7000-8000-00000000000a"
	otherIdentityID  = "0191a7b0-0000-7000-8000-00000000000b"
)

func authorClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: authorIdentityID, Username: "kowalski", Role: string(sec.RoleMember)}
}

func adminClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: otherIdentityID, Username: "moderator", Role: string(sec.RoleAdmin)}
}

func strangerClaims() *sec.AuthClaims {
	return &sec.AuthClaims{UserID: otherIdentityID, Username: "nowak", Role: string(sec.RoleMember)}
}

func newTestService() (*article.Service, *fakeArticleRepository, *fakeProfileCounter) {
	repo := newFakeArticleRepository()
	counter := &fakeProfileCounter{}
	return article.NewService(repo, counter, slog.Default()), repo, counter
}

func publish(t *testing.T, service *article.Service, claims *sec.AuthClaims) *article.Article {
	t.Helper()
	published, err := service.CreateArticle(context.Background(), claims, article.CreateArticleInput{
		Title: "A Field Guide to Window Functions",
		Entry: strings.Repeat("Window functions let a query compute aggregates without collapsing rows. ", 4),
	})
	require.NoError(t, err)
	return published
}

// # Publication Tests

func TestService_CreateArticle_GeneratesSlugAndCountsTowardProfile(t *testing.T) {
	service, _, counter := newTestService()

	published := publish(t, service, authorClaims())

	assert.Equal(t, "a-field-guide-to-window-functions", published.Slug)
	assert.NotEmpty(t, published.ID)
	require.NotNil(t, published.AuthorID)
	assert.Equal(t, authorIdentityID, *published.AuthorID)
	assert.False(t, published.PubDate.IsZero())

	require.Len(t, counter.increments, 1)
	assert.Equal(t, authorIdentityID, counter.increments[0])
}

func TestService_CreateArticle_RejectsDuplicateSlug(t *testing.T) {
	service, _, _ := newTestService()

	publish(t, service, authorClaims())

	_, err := service.CreateArticle(context.Background(), strangerClaims(), article.CreateArticleInput{
		Title: "A Field Guide to Window Functions",
		Entry: strings.Repeat("Same headline, different author, same slug. ", 6),
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Lookup Tests

func TestService_GetArticle_ResolvesUUIDAndSlug(t *testing.T) {
	service, _, _ := newTestService()
	published := publish(t, service, authorClaims())

	byID, err := service.GetArticle(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, byID.ID)

	bySlug, err := service.GetArticle(context.Background(), published.Slug)
	require.NoError(t, err)
	assert.Equal(t, published.ID, bySlug.ID)
}

func TestService_GetArticle_MissingIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.GetArticle(context.Background(), "no-such-slug")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Ownership Tests

func TestService_UpdateArticle_AuthorEditsKeepSlugStable(t *testing.T) {
	service, _, _ := newTestService()
	published := publish(t, service, authorClaims())

	updated, err := service.UpdateArticle(context.Background(), authorClaims(), published.ID, article.UpdateArticleInput{
		Title: pointer.To("A Practical Guide to Window Functions"),
	})

	require.NoError(t, err)
	assert.Equal(t, "A Practical Guide to Window Functions", updated.Title)
	assert.Equal(t, published.Slug, updated.Slug)
	assert.Equal(t, published.Entry, updated.Entry)
}

func TestService_UpdateArticle_StrangerIsForbidden(t *testing.T) {
	service, _, _ := newTestService()
	published := publish(t, service, authorClaims())

	_, err := service.UpdateArticle(context.Background(), strangerClaims(), published.ID, article.UpdateArticleInput{
		Title: pointer.To("Hijacked Headline Goes Here"),
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
}

func TestService_UpdateArticle_AdminMayEditAnyPost(t *testing.T) {
	service, _, _ := newTestService()
	published := publish(t, service, authorClaims())

	newEntry := strings.Repeat("Moderated entry content replaces the original paragraph entirely. ", 4)
	updated, err := service.UpdateArticle(context.Background(), adminClaims(), published.ID, article.UpdateArticleInput{
		Entry: pointer.To(newEntry),
	})

	require.NoError(t, err)
	assert.Equal(t, newEntry, updated.Entry)
}

func TestService_DeleteArticle_OwnershipEnforced(t *testing.T) {
	service, repo, _ := newTestService()
	published := publish(t, service, authorClaims())

	err := service.DeleteArticle(context.Background(), strangerClaims(), published.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteArticle(context.Background(), authorClaims(), published.ID))
	assert.Empty(t, repo.articles)
}

func TestService_MutateDetachedAuthorIsAdminOnly(t *testing.T) {
	service, repo, _ := newTestService()
	published := publish(t, service, authorClaims())

	// Simulate account deletion leaving the article behind.
	repo.articles[published.ID].AuthorID = nil

	err := service.DeleteArticle(context.Background(), authorClaims(), published.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	require.NoError(t, service.DeleteArticle(context.Background(), adminClaims(), published.ID))
}

// # Reaction Tests

func TestService_Reactions_CountIndependently(t *testing.T) {
	service, _, _ := newTestService()
	published := publish(t, service, authorClaims())

	liked, err := service.LikeArticle(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)
	assert.Equal(t, 0, liked.DislikeCount)

	disliked, err := service.DislikeArticle(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, disliked.LikeCount)
	assert.Equal(t, 1, disliked.DislikeCount)

	liked, err = service.LikeArticle(context.Background(), published.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.LikeCount)
}

func TestService_Reactions_MissingArticleIsNotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.LikeArticle(context.Background(), "0191a7b0-0000-7000-8000-0000000000ff")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
