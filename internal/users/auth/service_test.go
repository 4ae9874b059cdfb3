// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/internal/users/auth"
)

// # Fakes

type fakeIdentityRepository struct {
	identities map[string]*auth.Identity // keyed by ID
}

func newFakeIdentityRepository() *fakeIdentityRepository {
	return &fakeIdentityRepository{identities: map[string]*auth.Identity{}}
}

func (repo *fakeIdentityRepository) Create(_ context.Context, identity *auth.Identity) error {
	repo.identities[identity.ID] = identity
	return nil
}

func (repo *fakeIdentityRepository) FindByID(_ context.Context, id string) (*auth.Identity, error) {
	if identity, ok := repo.identities[id]; ok {
		return identity, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeIdentityRepository) FindByUsername(_ context.Context, username string) (*auth.Identity, error) {
	for _, identity := range repo.identities {
		if identity.Username == username {
			return identity, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeIdentityRepository) FindByEmail(_ context.Context, email string) (*auth.Identity, error) {
	for _, identity := range repo.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeIdentityRepository) FindByCredentials(_ context.Context, username, email string) (*auth.Identity, error) {
	for _, identity := range repo.identities {
		if identity.Username == username && identity.Email == email {
			return identity, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeIdentityRepository) UpdatePassword(_ context.Context, identityID, newHash string) error {
	if identity, ok := repo.identities[identityID]; ok {
		identity.PasswordHash = newHash
	}
	return nil
}

type fakeLinkRepository struct {
	links []*auth.AccountLink
}

func (repo *fakeLinkRepository) Create(_ context.Context, link *auth.AccountLink) error {
	repo.links = append(repo.links, link)
	return nil
}

type fakeTokenRepository struct {
	identities *fakeIdentityRepository
	keys       map[string]string // identityID -> key
}

func (repo *fakeTokenRepository) GetOrCreate(_ context.Context, identityID, candidateKey string) (string, error) {
	if existing, ok := repo.keys[identityID]; ok {
		return existing, nil
	}
	repo.keys[identityID] = candidateKey
	return candidateKey, nil
}

func (repo *fakeTokenRepository) ResolveClaims(ctx context.Context, key string) (*sec.AuthClaims, error) {
	for identityID, existing := range repo.keys {
		if existing != key {
			continue
		}
		identity, err := repo.identities.FindByID(ctx, identityID)
		if err != nil || !identity.IsActive {
			break
		}
		return &sec.AuthClaims{
			UserID:   identity.ID,
			Username: identity.Username,
			Role:     string(identity.Role),
		}, nil
	}
	return nil, apperr.NotFound("Token")
}

type fakeTokenCache struct {
	entries map[string]*sec.AuthClaims
}

func (cache *fakeTokenCache) Set(_ context.Context, key string, claims *sec.AuthClaims, _ time.Duration) error {
	cache.entries[key] = claims
	return nil
}

func (cache *fakeTokenCache) Get(_ context.Context, key string) (*sec.AuthClaims, error) {
	if claims, ok := cache.entries[key]; ok {
		return claims, nil
	}
	return nil, apperr.NotFound("Cached token")
}

func (cache *fakeTokenCache) Delete(_ context.Context, key string) error {
	delete(cache.entries, key)
	return nil
}

type recordingMailer struct {
	subjects   []string
	bodies     []string
	recipients []string
}

func (mailer *recordingMailer) Send(_ context.Context, subject, body, _, to string) error {
	mailer.subjects = append(mailer.subjects, subject)
	mailer.bodies = append(mailer.bodies, body)
	mailer.recipients = append(mailer.recipients, to)
	return nil
}

// newTestService wires a service against in-memory fakes.
func newTestService() (*auth.Service, *fakeIdentityRepository, *fakeLinkRepository, *fakeTokenCache, *recordingMailer) {
	identities := newFakeIdentityRepository()
	links := &fakeLinkRepository{}
	tokens := &fakeTokenRepository{identities: identities, keys: map[string]string{}}
	cache := &fakeTokenCache{entries: map[string]*sec.AuthClaims{}}
	mailer := &recordingMailer{}

	service := auth.NewService(identities, links, tokens, cache, mailer, "Blog administration <no-reply@inkwell.blog>")
	return service, identities, links, cache, mailer
}

// nonFieldMessage extracts the non_field_errors detail from an error.
func nonFieldMessage(t *testing.T, err error) string {
	t.Helper()

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.Len(t, appError.Details, 1)
	require.Equal(t, apperr.FieldNonField, appError.Details[0].Field)
	return appError.Details[0].Message
}

// # Registration

/*
TestService_Register_CreatesIdentityAndLink verifies that registration hashes
the password, assigns the member role, and creates an unlinked account link.
*/
func TestService_Register_CreatesIdentityAndLink(t *testing.T) {
	service, _, links, _, _ := newTestService()

	identity, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleMember, identity.Role)
	assert.True(t, identity.IsActive)

	// 1. Plain text must never be stored
	assert.NotEqual(t, "Secret12!?", identity.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("Secret12!?", identity.PasswordHash))

	// 2. The account link exists and points at no profile yet
	require.Len(t, links.links, 1)
	assert.Equal(t, identity.ID, links.links[0].IdentityID)
	assert.Nil(t, links.links[0].ProfileID)
}

/*
TestService_Register_RejectsTakenIdentity verifies per-field errors for a
duplicate username and email.
*/
func TestService_Register_RejectsTakenIdentity(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	// Same username AND email: both fields must be reported at once
	_, err = service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Another12!?",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Len(t, appError.Details, 2)

	fields := []string{appError.Details[0].Field, appError.Details[1].Field}
	assert.Contains(t, fields, auth.FieldUsername)
	assert.Contains(t, fields, auth.FieldEmail)
}

// # Login & Tokens

/*
TestService_Login_SameTokenForUsernameAndEmail verifies the idempotent token:
logging in by username and by email yields the identical 40-character key.
*/
func TestService_Login_SameTokenForUsernameAndEmail(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	byUsername, err := service.Login(context.Background(), "kowalski", "Secret12!?")
	require.NoError(t, err)
	assert.Len(t, byUsername, 40)

	byEmail, err := service.Login(context.Background(), "kowalski@example.com", "Secret12!?")
	require.NoError(t, err)

	assert.Equal(t, byUsername, byEmail)
}

/*
TestService_Login_OpaqueFailure verifies that an unknown account, a bad
password, and an inactive account all fail with the identical message.
*/
func TestService_Login_OpaqueFailure(t *testing.T) {
	service, identities, _, _, _ := newTestService()

	identity, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	// 1. Unknown account
	_, err = service.Login(context.Background(), "nobody", "Secret12!?")
	assert.Equal(t, auth.MsgLoginFailed, nonFieldMessage(t, err))

	// 2. Wrong password
	_, err = service.Login(context.Background(), "kowalski", "Wrong12!?x")
	assert.Equal(t, auth.MsgLoginFailed, nonFieldMessage(t, err))

	// 3. Deactivated account with correct credentials
	identities.identities[identity.ID].IsActive = false
	_, err = service.Login(context.Background(), "kowalski", "Secret12!?")
	assert.Equal(t, auth.MsgLoginFailed, nonFieldMessage(t, err))
}

/*
TestService_ResolveToken_FillsCache verifies that a storage-resolved token is
cached and that unknown keys do not resolve.
*/
func TestService_ResolveToken_FillsCache(t *testing.T) {
	service, _, _, cache, _ := newTestService()

	identity, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	token, err := service.Login(context.Background(), "kowalski", "Secret12!?")
	require.NoError(t, err)

	// 1. Resolution yields the identity's claims
	claims, err := service.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, claims.UserID)
	assert.Equal(t, "kowalski", claims.Username)

	// 2. The claims landed in the cache under the token key
	cached, err := cache.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, cached.UserID)

	// 3. Unknown keys do not resolve
	_, err = service.ResolveToken(context.Background(), "ffffffffffffffffffffffffffffffffffffffff")
	assert.Error(t, err)
}

// # Password Recovery

/*
TestService_ResetPassword_RequiresBothCredentials verifies the AND lookup:
a matching username with the wrong email must not reset anything.
*/
func TestService_ResetPassword_RequiresBothCredentials(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	_, err = service.ResetPassword(context.Background(), "kowalski", "other@example.com")
	assert.Equal(t, auth.MsgResetUserMissing, nonFieldMessage(t, err))

	_, err = service.ResetPassword(context.Background(), "other", "kowalski@example.com")
	assert.Equal(t, auth.MsgResetUserMissing, nonFieldMessage(t, err))
}

/*
TestService_ResetPassword_RotatesAndNotifies verifies that the generated
password replaces the old one, is returned in plain text, and is emailed to
the account address.
*/
func TestService_ResetPassword_RotatesAndNotifies(t *testing.T) {
	service, identities, _, _, mailer := newTestService()

	identity, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "kowalski",
		Email:    "kowalski@example.com",
		Password: "Secret12!?",
	})
	require.NoError(t, err)

	password, err := service.ResetPassword(context.Background(), "kowalski", "kowalski@example.com")
	require.NoError(t, err)
	require.Len(t, password, auth.MinGeneratedPasswordLength)

	// 1. The stored hash now verifies against the generated password
	stored := identities.identities[identity.ID]
	assert.True(t, sec.CheckPasswordHash(password, stored.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("Secret12!?", stored.PasswordHash))

	// 2. The old password no longer authenticates; the new one does
	_, err = service.Login(context.Background(), "kowalski", "Secret12!?")
	assert.Error(t, err)
	_, err = service.Login(context.Background(), "kowalski", password)
	assert.NoError(t, err)

	// 3. A notification carrying the password went to the account address
	require.Len(t, mailer.recipients, 1)
	assert.Equal(t, "kowalski@example.com", mailer.recipients[0])
	assert.Equal(t, "Reset password", mailer.subjects[0])
	assert.Contains(t, mailer.bodies[0], password)
}
