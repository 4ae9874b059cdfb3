// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package auth implements the user identity and bearer-token layer.

It defines the core domain entities (Identity, BearerToken, AccountLink) and
the logic for registration, credential verification, and token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/risoko/inkwell/internal/platform/sec"
)

// # Domain Entities

// Identity represents a registered member of the Inkwell platform.
type Identity struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	JoinedAt     time.Time    `json:"joined_at"`
}

// BearerToken represents the single long-lived API token of an identity.
//
// Issuance is idempotent: repeated logins return the same key. The key is
// 40 hex characters and carries no embedded claims; it is resolved against
// storage on every request (with a short Redis cache in front).
type BearerToken struct {
	Key        string    `json:"key"`
	IdentityID string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// AccountLink binds an identity to its (optional) profile.
//
// The link row is created at registration with a null profile; the profile
// side is populated later by the account workflow.
type AccountLink struct {
	ID         string  `json:"id"`
	IdentityID string  `json:"identity_id"`
	ProfileID  *string `json:"profile_id,omitempty"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldUsernameOrEmail = "username_or_email"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPassword1       = "password1"
	FieldPassword2       = "password2"
	FieldToken           = "token"
)
