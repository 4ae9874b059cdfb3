// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package article provides the HTTP interface for the blogging content domain.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /articles).
  - Restricted (v1): Mutative endpoints requiring an authenticated member;
    edits and deletions are further restricted to the author or an admin
    inside the service layer.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/risoko/inkwell/internal/platform/middleware"
	requestutil "github.com/risoko/inkwell/internal/platform/request"
	"github.com/risoko/inkwell/internal/platform/respond"
	"github.com/risoko/inkwell/internal/platform/validate"
	"github.com/risoko/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for article publishing and discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new article [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the article domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listArticles)
	router.Get("/{identifier}", handler.getArticle)

	// ## Publishing (Member Protected)
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/", handler.createArticle)
		member.Put("/{id}", handler.updateArticle)
		member.Delete("/{id}", handler.deleteArticle)

		// Reactions
		member.Post("/{id}/like", handler.likeArticle)
		member.Post("/{id}/dislike", handler.dislikeArticle)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/articles.

Description: Retrieves a paginated list of articles, newest first.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Article: Paginated list of articles
*/
func (handler *Handler) listArticles(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	articles, total, err := handler.service.ListArticles(request.Context(),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/articles/{identifier}.

Description: Retrieves one article using either its UUID or unique slug.
UUID lookups take precedence.

Request:
  - identifier: string (UUID or slug)

Response:
  - 200: Article: Success
  - 404: NOT_FOUND: Article not found
*/
func (handler *Handler) getArticle(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	article, err := handler.service.GetArticle(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

// # Request Payloads

// createArticleRequest defines the inbound JSON schema for publishing.
type createArticleRequest struct {
	Title string `json:"title"`
	Entry string `json:"entry"`
}

// updateArticleRequest supports partial edits.
type updateArticleRequest struct {
	Title *string `json:"title"`
	Entry *string `json:"entry"`
}

// # Mutation Endpoints

/*
POST /api/v1/articles.

Description: Publishes a new article authored by the caller. The slug is
auto-generated from the title.

Request (Body):
  - createArticleRequest: JSON object

Response:
  - 201: Article: Created article
  - 400: VALIDATION_ERROR: Title or entry out of bounds
  - 401: UNAUTHORIZED: Missing or invalid token
*/
func (handler *Handler) createArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MinLen(FieldTitle, input.Title, MinTitleLength).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldEntry, input.Entry).
		MinLen(FieldEntry, input.Entry, MinEntryLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.CreateArticle(request.Context(), claims, CreateArticleInput{
		Title: input.Title,
		Entry: input.Entry,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, article)
}

/*
PUT /api/v1/articles/{id}.

Description: Applies a partial edit. Only the author or an administrator may
edit; the slug is never regenerated.

Request:
  - id: string (UUID)
  - Body: updateArticleRequest

Response:
  - 200: Article: Updated article
  - 400: VALIDATION_ERROR: Field out of bounds
  - 403: FORBIDDEN: Caller is neither author nor admin
  - 404: NOT_FOUND: Article not found
*/
func (handler *Handler) updateArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.MinLen(FieldTitle, *input.Title, MinTitleLength).
			MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Entry != nil {
		validator.MinLen(FieldEntry, *input.Entry, MinEntryLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.service.UpdateArticle(request.Context(), claims, requestutil.Param(request, "id"), UpdateArticleInput{
		Title: input.Title,
		Entry: input.Entry,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
DELETE /api/v1/articles/{id}.

Description: Permanently removes an article. Only the author or an
administrator may delete.

Response:
  - 204: No Content: Deleted
  - 403: FORBIDDEN: Caller is neither author nor admin
  - 404: NOT_FOUND: Article not found
*/
func (handler *Handler) deleteArticle(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArticle(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Reaction Endpoints

/*
POST /api/v1/articles/{id}/like.

Description: Increments the like counter and returns the fresh entity.

Response:
  - 200: Article: Updated counters
  - 404: NOT_FOUND: Article not found
*/
func (handler *Handler) likeArticle(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.LikeArticle(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
POST /api/v1/articles/{id}/dislike.

Description: Increments the dislike counter and returns the fresh entity.

Response:
  - 200: Article: Updated counters
  - 404: NOT_FOUND: Article not found
*/
func (handler *Handler) dislikeArticle(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.DislikeArticle(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}
