// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package article_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risoko/inkwell/internal/blog/article"
	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/ctxutil"
	"github.com/risoko/inkwell/internal/platform/sec"
)

// postArticle performs POST /articles, optionally authenticated, and returns
// the recorded response.
func postArticle(t *testing.T, handler *article.Handler, claims *sec.AuthClaims, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func validArticlePayload() map[string]any {
	return map[string]any{
		"title": "A Field Guide to Window Functions",
		"entry": strings.Repeat("Window functions let a query compute aggregates without collapsing rows. ", 4),
	}
}

/*
TestHandler_CreateArticle_FieldValidation verifies the title and entry length
bounds at the request layer.
*/
func TestHandler_CreateArticle_FieldValidation(t *testing.T) {
	service, _, _ := newTestService()
	handler := article.NewHandler(service)

	// 1. Title below the minimum length
	payload := validArticlePayload()
	payload["title"] = "Too short"

	recorder := postArticle(t, handler, authorClaims(), payload)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope struct {
		Code    string              `json:"code"`
		Details []apperr.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, article.FieldTitle, envelope.Details[0].Field)

	// 2. Entry below the minimum length
	payload = validArticlePayload()
	payload["entry"] = "Not nearly two hundred characters."

	recorder = postArticle(t, handler, authorClaims(), payload)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Details, 1)
	assert.Equal(t, article.FieldEntry, envelope.Details[0].Field)
}

/*
TestHandler_CreateArticle_RequiresToken verifies that publishing without an
authenticated identity is rejected before any validation runs.
*/
func TestHandler_CreateArticle_RequiresToken(t *testing.T) {
	service, _, _ := newTestService()
	handler := article.NewHandler(service)

	recorder := postArticle(t, handler, nil, validArticlePayload())

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_CreateThenGetBySlug verifies the public read path: an article
published through the handler is retrievable by its generated slug with no
authentication.
*/
func TestHandler_CreateThenGetBySlug(t *testing.T) {
	service, _, _ := newTestService()
	handler := article.NewHandler(service)

	recorder := postArticle(t, handler, authorClaims(), validArticlePayload())
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data article.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	require.Equal(t, "a-field-guide-to-window-functions", created.Data.Slug)

	request := httptest.NewRequest(http.MethodGet, "/"+created.Data.Slug, nil)
	getRecorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(getRecorder, request)

	require.Equal(t, http.StatusOK, getRecorder.Code)

	var fetched struct {
		Data article.Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.ID, fetched.Data.ID)
}

/*
TestHandler_ListArticles_PublicAndPaginated verifies that the listing endpoint
needs no token and carries pagination metadata.
*/
func TestHandler_ListArticles_PublicAndPaginated(t *testing.T) {
	service, _, _ := newTestService()
	handler := article.NewHandler(service)

	recorder := postArticle(t, handler, authorClaims(), validArticlePayload())
	require.Equal(t, http.StatusCreated, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/?page=1&limit=10", nil)
	listRecorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(listRecorder, request)

	require.Equal(t, http.StatusOK, listRecorder.Code)

	var envelope struct {
		Data []article.Article `json:"data"`
		Meta struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(listRecorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, 1, envelope.Meta.Total)
	assert.Equal(t, 10, envelope.Meta.Limit)
}
