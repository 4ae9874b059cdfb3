// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package account (Postgres) implements the storage layer for member profiles
and credential self-service.

# Schema Table Mapping
  - users.profile: Personal attributes and the article counter.
  - users.accountlink: 1:1 binding between identity and profile.
  - users.identity: Credential fields touched by password/email rotation.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/database/schema"
	"github.com/risoko/inkwell/internal/platform/dberr"
	"github.com/risoko/inkwell/internal/users/auth"
)

// # Repository Implementations

// PostgresProfileRepository implements [ProfileRepository] using pgx.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new Postgres implementation for profile management.
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// PostgresIdentityStore implements [IdentityStore] using pgx.
type PostgresIdentityStore struct {
	pool *pgxpool.Pool
}

// NewIdentityStore creates a new Postgres implementation for credential mutation.
func NewIdentityStore(pool *pgxpool.Pool) *PostgresIdentityStore {
	return &PostgresIdentityStore{pool: pool}
}

// # ProfileRepository Methods

/*
FindByIdentity retrieves the profile linked to an identity.

Description: Resolves the account link first, so an identity without a
profile yields NOT_FOUND rather than an empty row.

Parameters:
  - context: context.Context
  - identityID: string (UUID)

Returns:
  - *Profile: Hydrated profile entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresProfileRepository) FindByIdentity(context context.Context, identityID string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s l ON l.%s = p.%s
		WHERE l.%s = $1`,
		schema.UserProfile.ID, schema.UserProfile.FirstName, schema.UserProfile.LastName,
		schema.UserProfile.Nickname, schema.UserProfile.CountryCode, schema.UserProfile.Sex,
		schema.UserProfile.DateOfBirth, schema.UserProfile.ArticleCount,
		schema.UserProfile.Table,
		schema.UserAccountLink.Table, schema.UserAccountLink.ProfileID, schema.UserProfile.ID,
		schema.UserAccountLink.IdentityID,
	)

	return repository.scanOne(context, query, identityID)
}

/*
FindByNick retrieves a profile by its unique nickname.

Parameters:
  - context: context.Context
  - nick: string

Returns:
  - *Profile: Hydrated profile entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresProfileRepository) FindByNick(context context.Context, nick string) (*Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserProfile.ID, schema.UserProfile.FirstName, schema.UserProfile.LastName,
		schema.UserProfile.Nickname, schema.UserProfile.CountryCode, schema.UserProfile.Sex,
		schema.UserProfile.DateOfBirth, schema.UserProfile.ArticleCount,
		schema.UserProfile.Table,
		schema.UserProfile.Nickname,
	)

	return repository.scanOne(context, query, nick)
}

/*
Create persists a new profile and attaches it to the identity's account link.

Description: Both writes happen in one transaction so a crash cannot leave an
orphaned profile without a link.

Parameters:
  - context: context.Context
  - identityID: string
  - profile: *Profile

Returns:
  - error: CONFLICT on nickname races, or storage failures
*/
func (repository *PostgresProfileRepository) Create(context context.Context, identityID string, profile *Profile) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserProfile.Table,
		schema.UserProfile.ID, schema.UserProfile.FirstName, schema.UserProfile.LastName,
		schema.UserProfile.Nickname, schema.UserProfile.CountryCode, schema.UserProfile.Sex,
		schema.UserProfile.DateOfBirth, schema.UserProfile.ArticleCount,
	)

	_, err = transaction.Exec(context, insertQuery,
		profile.ID,
		profile.FirstName,
		profile.LastName,
		profile.Nick,
		profile.Country,
		profile.Sex,
		profile.DateOfBirth,
		profile.ArticleCount,
	)
	if err != nil {
		return dberr.Wrap(err, "Profile")
	}

	linkQuery := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccountLink.Table,
		schema.UserAccountLink.ProfileID,
		schema.UserAccountLink.IdentityID,
	)

	if _, err := transaction.Exec(context, linkQuery, identityID, profile.ID); err != nil {
		return fmt.Errorf("postgres_profile_repo_link_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_profile_repo_commit_failed: %w", err)
	}

	return nil
}

/*
IncrementArticleCount bumps the published-article counter of the identity's
profile.

Parameters:
  - context: context.Context
  - identityID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresProfileRepository) IncrementArticleCount(context context.Context, identityID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1
		WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)`,
		schema.UserProfile.Table, schema.UserProfile.ArticleCount, schema.UserProfile.ArticleCount,
		schema.UserProfile.ID,
		schema.UserAccountLink.ProfileID, schema.UserAccountLink.Table, schema.UserAccountLink.IdentityID,
	)

	_, err := repository.pool.Exec(context, query, identityID)
	if err != nil {
		return fmt.Errorf("postgres_profile_repo_increment_failed: %w", err)
	}

	return nil
}

// scanOne runs a single-row profile query and hydrates the entity.
func (repository *PostgresProfileRepository) scanOne(context context.Context, query string, args ...any) (*Profile, error) {
	profile := &Profile{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&profile.ID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Nick,
		&profile.Country,
		&profile.Sex,
		&profile.DateOfBirth,
		&profile.ArticleCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Profile")
		}
		return nil, fmt.Errorf("postgres_profile_repo_find_failed: %w", err)
	}

	return profile, nil
}

// # IdentityStore Methods

/*
FindByID retrieves an identity by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.Identity: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (store *PostgresIdentityStore) FindByID(context context.Context, id string) (*auth.Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserIdentity.ID, schema.UserIdentity.Username, schema.UserIdentity.Email,
		schema.UserIdentity.PasswordHash, schema.UserIdentity.Role, schema.UserIdentity.IsActive,
		schema.UserIdentity.JoinedAt,
		schema.UserIdentity.Table,
		schema.UserIdentity.ID,
	)

	return store.scanOne(context, query, id)
}

/*
FindByEmail retrieves an identity by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *auth.Identity: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (store *PostgresIdentityStore) FindByEmail(context context.Context, email string) (*auth.Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserIdentity.ID, schema.UserIdentity.Username, schema.UserIdentity.Email,
		schema.UserIdentity.PasswordHash, schema.UserIdentity.Role, schema.UserIdentity.IsActive,
		schema.UserIdentity.JoinedAt,
		schema.UserIdentity.Table,
		schema.UserIdentity.Email,
	)

	return store.scanOne(context, query, email)
}

/*
UpdatePassword replaces only the identity's password hash.

Parameters:
  - context: context.Context
  - identityID: string
  - newHash: string

Returns:
  - error: Execution failures
*/
func (store *PostgresIdentityStore) UpdatePassword(context context.Context, identityID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserIdentity.Table, schema.UserIdentity.PasswordHash, schema.UserIdentity.ID)

	_, err := store.pool.Exec(context, query, identityID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_identity_store_update_password_failed: %w", err)
	}

	return nil
}

/*
UpdateEmail replaces only the identity's email address.

Parameters:
  - context: context.Context
  - identityID: string
  - newEmail: string

Returns:
  - error: CONFLICT when the address is already held, or execution failures
*/
func (store *PostgresIdentityStore) UpdateEmail(context context.Context, identityID, newEmail string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserIdentity.Table, schema.UserIdentity.Email, schema.UserIdentity.ID)

	_, err := store.pool.Exec(context, query, identityID, newEmail)
	if err != nil {
		return dberr.Wrap(err, "Email")
	}

	return nil
}

// scanOne runs a single-row identity query and hydrates the entity.
func (store *PostgresIdentityStore) scanOne(context context.Context, query string, args ...any) (*auth.Identity, error) {
	identity := &auth.Identity{}
	err := store.pool.QueryRow(context, query, args...).Scan(
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
		return nil, fmt.Errorf("postgres_identity_store_find_failed: %w", err)
	}

	return identity, nil
}
