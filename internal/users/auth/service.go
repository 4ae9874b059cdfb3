// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package auth implements the core identity and access management system.

It handles everything from user registration and secure password hashing to
bearer-token issuance and resolution (cached in Redis).

Architecture:

  - Service: Orchestrates business logic (Register, Login, ResetPassword).
  - Repository: Abstracted interfaces for Postgres (identities, tokens) and Redis (claims cache).
  - Security: Leverages bcrypt hashes and opaque crypto/rand token keys.

The package ensures that identity data remains consistent and secure throughout
the platform’s lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/constants"
	"github.com/risoko/inkwell/internal/platform/mail"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/internal/platform/validate"
	"github.com/risoko/inkwell/pkg/uuid"
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	identityRepository IdentityRepository
	linkRepository     AccountLinkRepository
	tokenRepository    TokenRepository
	tokenCache         TokenCache
	mailer             mail.Mailer
	mailSender         string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	identityRepo IdentityRepository,
	linkRepo AccountLinkRepository,
	tokenRepo TokenRepository,
	tokenCache TokenCache,
	mailer mail.Mailer,
	mailSender string,
) *Service {
	return &Service{
		identityRepository: identityRepo,
		linkRepository:     linkRepo,
		tokenRepository:    tokenRepo,
		tokenCache:         tokenCache,
		mailer:             mailer,
		mailSender:         mailSender,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new identity.

Description: Deep-enrollment of a new member, handling uniqueness pre-checks,
password hashing, and creation of the empty account link that later receives
the profile.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Identity: Created entity
  - err: Field-level validation errors (taken identity) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Identity, error) {

	// Pre-check uniqueness so the client gets per-field messages. Concurrent
	// duplicates that slip past this check are caught by the DB constraints.
	validator := &validate.Validator{}

	if _, err := service.identityRepository.FindByUsername(context, input.Username); err == nil {
		validator.Custom(FieldUsername, true, MsgUsernameTaken)
	}
	if _, err := service.identityRepository.FindByEmail(context, input.Email); err == nil {
		validator.Custom(FieldEmail, true, MsgEmailTaken)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new Identity. Time-sortable ID to prevent PG index fragmentation.
	identity := &Identity{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
		IsActive:     true,
	}

	if err := service.identityRepository.Create(context, identity); err != nil {
		return nil, err
	}

	// Every identity carries an account link; the profile side stays null
	// until the member fills in their profile.
	link := &AccountLink{
		ID:         uuid.New(),
		IdentityID: identity.ID,
	}
	if err := service.linkRepository.Create(context, link); err != nil {
		return nil, fmt.Errorf("auth_service_link_failed: %w", err)
	}

	return identity, nil
}

// # Authentication Flow

/*
Authenticate verifies login credentials and returns the matched identity.

Description: The login value doubles as username or email; a value containing
'@' is treated as an email address. Password verification is constant-time
via bcrypt. Every failure (unknown identity, inactive account, bad password)
collapses into one opaque message to prevent account enumeration.

Parameters:
  - context: context.Context
  - login: string (Username or email)
  - password: string

Returns:
  - *Identity: Verified entity
  - err: The single opaque validation failure
*/
func (service *Service) Authenticate(context context.Context, login, password string) (*Identity, error) {
	var identity *Identity
	var err error

	if strings.Contains(login, "@") {
		identity, err = service.identityRepository.FindByEmail(context, login)
	} else {
		identity, err = service.identityRepository.FindByUsername(context, login)
	}

	if err != nil {
		return nil, apperr.NonFieldError(MsgLoginFailed)
	}

	if !identity.IsActive {
		return nil, apperr.NonFieldError(MsgLoginFailed)
	}

	if !sec.CheckPasswordHash(password, identity.PasswordHash) {
		return nil, apperr.NonFieldError(MsgLoginFailed)
	}

	return identity, nil
}

/*
Login authenticates credentials and returns the identity's bearer token.

Parameters:
  - context: context.Context
  - login: string (Username or email)
  - password: string

Returns:
  - string: The identity's token key
  - err: Authentication or issuance failures
*/
func (service *Service) Login(context context.Context, login, password string) (string, error) {
	identity, err := service.Authenticate(context, login, password)
	if err != nil {
		return "", err
	}

	return service.IssueToken(context, identity.ID)
}

// # Token Lifecycle

/*
IssueToken returns the identity's single bearer token, creating it on first use.

Description: A candidate key is generated up front and offered to the storage
layer, which keeps whichever key already exists. Repeated calls therefore
always return the same token for one identity.

Parameters:
  - context: context.Context
  - identityID: string

Returns:
  - string: The persisted 40-character hex key
  - err: Generation or persistence failures
*/
func (service *Service) IssueToken(context context.Context, identityID string) (string, error) {
	candidate, err := sec.GenerateSecureToken(constants.BearerTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	key, err := service.tokenRepository.GetOrCreate(context, identityID, candidate)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return key, nil
}

/*
ResolveToken resolves a bearer-token key into identity claims.

Description: Serves the authentication middleware on every request, so a
short-lived Redis cache sits in front of the Postgres token join. Cache
failures fall through to storage rather than failing the request.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *sec.AuthClaims: Resolved claims
  - err: apperr.NotFound for unknown or inactive identities
*/
func (service *Service) ResolveToken(context context.Context, key string) (*sec.AuthClaims, error) {
	if claims, err := service.tokenCache.Get(context, key); err == nil {
		return claims, nil
	}

	claims, err := service.tokenRepository.ResolveClaims(context, key)
	if err != nil {
		return nil, err
	}

	// Best-effort cache fill; resolution already succeeded.
	_ = service.tokenCache.Set(context, key, claims, constants.TokenCacheTTL)

	return claims, nil
}

// # Password Recovery

/*
ResetPassword replaces a forgotten password with a generated one.

Description: The account is identified by username AND email together. On a
match a policy-compliant password is generated, hashed, and persisted, and
the plain text is both emailed to the account address and returned to the
caller.

Parameters:
  - context: context.Context
  - username: string
  - email: string

Returns:
  - string: The plain-text generated password
  - err: The canonical miss message, or generation/persistence failures
*/
func (service *Service) ResetPassword(context context.Context, username, email string) (string, error) {
	identity, err := service.identityRepository.FindByCredentials(context, username, email)
	if err != nil {
		return "", apperr.NonFieldError(MsgResetUserMissing)
	}

	password, err := GeneratePassword()
	if err != nil {
		return "", err
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.identityRepository.UpdatePassword(context, identity.ID, hashedPassword); err != nil {
		return "", fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	// Notification is best-effort: the password is already rotated and is
	// returned in the response body as well.
	body := fmt.Sprintf("Hello %s,\n\nYour password has been reset. Your new password is:\n\n%s\n",
		identity.Username, password)
	_ = service.mailer.Send(context, "Reset password", body, service.mailSender, identity.Email)

	return password, nil
}
