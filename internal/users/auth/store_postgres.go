// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

// Postgres implementations of the auth repositories.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
// Unique violations surface as CONFLICT via [dberr.Wrap] so concurrent
// duplicate registrations fail cleanly.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/dberr"
	"github.com/risoko/inkwell/internal/platform/sec"
)

// # Identity Repository

// PostgresIdentityRepository implements the IdentityRepository interface using pgx.
type PostgresIdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository creates a new PostgreSQL implementation of the IdentityRepository.
func NewIdentityRepository(pool *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{pool: pool}
}

const identityColumns = "id, username, email, passwordhash, role, isactive, joinedat"

/*
Create persists a new identity record into the users.identity table.

Parameters:
  - context: context.Context
  - identity: *Identity (Entity to persist)

Returns:
  - error: CONFLICT on unique violations, or connectivity errors
*/
func (repository *PostgresIdentityRepository) Create(context context.Context, identity *Identity) error {
	const query = `
		INSERT INTO users.identity (
			id, username, email, passwordhash, role, isactive, joinedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if identity.JoinedAt.IsZero() {
		identity.JoinedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		identity.ID,
		identity.Username,
		identity.Email,
		identity.PasswordHash,
		identity.Role,
		identity.IsActive,
		identity.JoinedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindByID retrieves an identity record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Identity: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresIdentityRepository) FindByID(context context.Context, id string) (*Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM users.identity
		WHERE id = $1`

	return repository.scanOne(context, query, id)
}

/*
FindByUsername retrieves an identity record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Identity: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresIdentityRepository) FindByUsername(context context.Context, username string) (*Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM users.identity
		WHERE username = $1`

	return repository.scanOne(context, query, username)
}

/*
FindByEmail retrieves an identity record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Identity: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresIdentityRepository) FindByEmail(context context.Context, email string) (*Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM users.identity
		WHERE email = $1`

	return repository.scanOne(context, query, email)
}

/*
FindByCredentials retrieves the identity matching both username and email.

Parameters:
  - context: context.Context
  - username: string
  - email: string

Returns:
  - *Identity: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresIdentityRepository) FindByCredentials(context context.Context, username, email string) (*Identity, error) {
	const query = `
		SELECT ` + identityColumns + `
		FROM users.identity
		WHERE username = $1 AND email = $2`

	return repository.scanOne(context, query, username, email)
}

/*
UpdatePassword updates only the password hash for a specific identity.

Parameters:
  - context: context.Context
  - identityID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresIdentityRepository) UpdatePassword(context context.Context, identityID, newHash string) error {
	const query = `
		UPDATE users.identity
		SET passwordhash = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, identityID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_identity_repo_update_password_failed: %w", err)
	}

	return nil
}

// scanOne runs a single-row identity query and hydrates the entity.
func (repository *PostgresIdentityRepository) scanOne(context context.Context, query string, args ...any) (*Identity, error) {
	identity := &Identity{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Role,
		&identity.IsActive,
		&identity.JoinedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_identity_repo_find_failed: %w", err)
	}

	return identity, nil
}

// # Account Link Repository

// PostgresAccountLinkRepository implements the AccountLinkRepository interface.
type PostgresAccountLinkRepository struct {
	pool *pgxpool.Pool
}

// NewAccountLinkRepository creates a new PostgreSQL implementation of AccountLinkRepository.
func NewAccountLinkRepository(pool *pgxpool.Pool) *PostgresAccountLinkRepository {
	return &PostgresAccountLinkRepository{pool: pool}
}

/*
Create persists a new link row into the users.accountlink table.

Parameters:
  - context: context.Context
  - link: *AccountLink

Returns:
  - error: Storage failures
*/
func (repository *PostgresAccountLinkRepository) Create(context context.Context, link *AccountLink) error {
	const query = `
		INSERT INTO users.accountlink (id, identityid, profileid)
		VALUES ($1, $2, $3)`

	_, err := repository.pool.Exec(context, query, link.ID, link.IdentityID, link.ProfileID)
	if err != nil {
		return dberr.Wrap(err, "Account link")
	}

	return nil
}

// # Token Repository

// PostgresTokenRepository implements the TokenRepository interface.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL implementation of TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

/*
GetOrCreate atomically ensures the identity has exactly one token and returns it.

Description: The INSERT is a no-op when a token already exists for the
identity (ON CONFLICT DO NOTHING on the identityid unique constraint); the
following SELECT returns whichever key survived. Concurrent logins therefore
converge on one key without an explicit lock.

Parameters:
  - context: context.Context
  - identityID: string
  - candidateKey: string

Returns:
  - string: The persisted token key
  - error: Storage failures
*/
func (repository *PostgresTokenRepository) GetOrCreate(context context.Context, identityID, candidateKey string) (string, error) {
	const insertQuery = `
		INSERT INTO users.token (key, identityid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (identityid) DO NOTHING`

	if _, err := repository.pool.Exec(context, insertQuery, candidateKey, identityID, time.Now()); err != nil {
		return "", fmt.Errorf("postgres_token_repo_insert_failed: %w", err)
	}

	const selectQuery = `
		SELECT key
		FROM users.token
		WHERE identityid = $1`

	var key string
	if err := repository.pool.QueryRow(context, selectQuery, identityID).Scan(&key); err != nil {
		return "", fmt.Errorf("postgres_token_repo_select_failed: %w", err)
	}

	return key, nil
}

/*
ResolveClaims resolves a token key into identity claims.

Description: Joins users.token against users.identity so a single round trip
yields everything the middleware needs. Inactive identities do not resolve.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *sec.AuthClaims: Resolved claims
  - error: apperr.NotFound for unknown keys, or retrieval failures
*/
func (repository *PostgresTokenRepository) ResolveClaims(context context.Context, key string) (*sec.AuthClaims, error) {
	const query = `
		SELECT i.id, i.username, i.role
		FROM users.token t
		JOIN users.identity i ON i.id = t.identityid
		WHERE t.key = $1 AND i.isactive = TRUE`

	claims := &sec.AuthClaims{}
	err := repository.pool.QueryRow(context, query, key).Scan(
		&claims.UserID,
		&claims.Username,
		&claims.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Token")
		}
		return nil, fmt.Errorf("postgres_token_repo_resolve_failed: %w", err)
	}

	return claims, nil
}
