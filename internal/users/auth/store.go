// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/risoko/inkwell/internal/platform/sec"
)

// # Identity Data Access

// IdentityRepository defines the data access contract for user identities.
type IdentityRepository interface {

	/*
		FindByID returns the identity with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Identity, error)

	/*
		FindByUsername returns the identity with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Identity, error)

	/*
		FindByEmail returns the identity with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Identity, error)

	/*
		FindByCredentials returns the identity matching BOTH the username and
		the email. The password reset flow requires the pair to identify one
		account, never either half alone.

		Parameters:
		  - context: context.Context
		  - username: string
		  - email: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByCredentials(context context.Context, username, email string) (*Identity, error)

	/*
		Create persists a brand-new identity to the storage.

		Parameters:
		  - context: context.Context
		  - identity: *Identity

		Returns:
		  - error: Persistence failures (unique violations included)
	*/
	Create(context context.Context, identity *Identity) error

	/*
		UpdatePassword replaces only the identity's password hash.

		Parameters:
		  - context: context.Context
		  - identityID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, identityID, newHash string) error
}

// # Account Link Data Access

// AccountLinkRepository defines the data access contract for identity-profile links.
type AccountLinkRepository interface {

	/*
		Create persists a link row for a freshly registered identity. The
		profile side starts out null.

		Parameters:
		  - context: context.Context
		  - link: *AccountLink

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, link *AccountLink) error
}

// # Token Data Access

// TokenRepository defines the data access contract for bearer tokens.
type TokenRepository interface {

	/*
		GetOrCreate atomically ensures the identity has exactly one token.

		Description: The candidate key is inserted only if no token exists
		for the identity; in every case the surviving key is returned. Two
		concurrent logins therefore always observe the same key.

		Parameters:
		  - context: context.Context
		  - identityID: string
		  - candidateKey: string

		Returns:
		  - string: The persisted token key (candidate or pre-existing)
		  - error: Persistence failures
	*/
	GetOrCreate(context context.Context, identityID, candidateKey string) (string, error)

	/*
		ResolveClaims resolves a token key into identity claims via a join
		against the identity table. Inactive identities do not resolve.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - *sec.AuthClaims: Resolved identity claims
		  - error: apperr.NotFound for unknown keys, or retrieval failures
	*/
	ResolveClaims(context context.Context, key string) (*sec.AuthClaims, error)
}

// # Volatile Data Access

// TokenCache defines the contract for the short-lived claims cache that sits
// in front of the Postgres token join.
type TokenCache interface {

	/*
		Set stores resolved claims under a token key for a limited duration.

		Parameters:
		  - context: context.Context
		  - key: string
		  - claims: *sec.AuthClaims
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, key string, claims *sec.AuthClaims, ttl time.Duration) error

	/*
		Get retrieves the claims cached under a token key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - *sec.AuthClaims: Cached claims
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	Get(context context.Context, key string) (*sec.AuthClaims, error)

	/*
		Delete evicts the claims cached under a token key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Eviction failures
	*/
	Delete(context context.Context, key string) error
}
