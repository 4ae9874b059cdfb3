// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/risoko/inkwell/internal/platform/ctxutil"
	"github.com/risoko/inkwell/internal/platform/sec"
)

/*
TestRequestID verifies storage and retrieval of the correlation ID.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies the logger fallback behavior.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	// Without an attached logger the default must be returned, never nil.
	assert.NotNil(t, ctxutil.GetLogger(ctx))

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestAuthUser verifies claims storage and the anonymous nil fallback.
*/
func TestAuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	claims := &sec.AuthClaims{UserID: "u1", Username: "tester1996", Role: string(sec.RoleMember)}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	got := ctxutil.GetAuthUser(ctx)
	assert.Same(t, claims, got)
	assert.False(t, got.IsAdmin())
}
