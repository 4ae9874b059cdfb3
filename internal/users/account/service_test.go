// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package account_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/internal/users/account"
	"github.com/risoko/inkwell/internal/users/auth"
)

// # Fakes

type fakeProfileRepository struct {
	byIdentity map[string]*account.Profile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{byIdentity: map[string]*account.Profile{}}
}

func (repo *fakeProfileRepository) FindByIdentity(_ context.Context, identityID string) (*account.Profile, error) {
	if profile, ok := repo.byIdentity[identityID]; ok {
		return profile, nil
	}
	return nil, apperr.NotFound("Profile")
}

func (repo *fakeProfileRepository) FindByNick(_ context.Context, nick string) (*account.Profile, error) {
	for _, profile := range repo.byIdentity {
		if profile.Nick == nick {
			return profile, nil
		}
	}
	return nil, apperr.NotFound("Profile")
}

func (repo *fakeProfileRepository) Create(_ context.Context, identityID string, profile *account.Profile) error {
	repo.byIdentity[identityID] = profile
	return nil
}

func (repo *fakeProfileRepository) IncrementArticleCount(_ context.Context, identityID string) error {
	if profile, ok := repo.byIdentity[identityID]; ok {
		profile.ArticleCount++
	}
	return nil
}

type fakeIdentityStore struct {
	identities map[string]*auth.Identity
}

func (store *fakeIdentityStore) FindByID(_ context.Context, id string) (*auth.Identity, error) {
	if identity, ok := store.identities[id]; ok {
		return identity, nil
	}
	return nil, apperr.NotFound("User")
}

func (store *fakeIdentityStore) FindByEmail(_ context.Context, email string) (*auth.Identity, error) {
	for _, identity := range store.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *fakeIdentityStore) UpdatePassword(_ context.Context, identityID, newHash string) error {
	if identity, ok := store.identities[identityID]; ok {
		identity.PasswordHash = newHash
	}
	return nil
}

func (store *fakeIdentityStore) UpdateEmail(_ context.Context, identityID, newEmail string) error {
	if identity, ok := store.identities[identityID]; ok {
		identity.Email = newEmail
	}
	return nil
}

type recordingMailer struct {
	subjects   []string
	recipients []string
}

func (mailer *recordingMailer) Send(_ context.Context, subject, _, _, to string) error {
	mailer.subjects = append(mailer.subjects, subject)
	mailer.recipients = append(mailer.recipients, to)
	return nil
}

// newTestService wires a service against in-memory fakes, pre-seeding one
// identity with the given password.
func newTestService(t *testing.T, password string) (*account.Service, *fakeIdentityStore, *fakeProfileRepository, *recordingMailer, string) {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	identity := &auth.Identity{
		ID:           "0191a7b0-0000-7000-8000-000000000001",
		Username:     "kowalski",
		Email:        "kowalski@example.com",
		PasswordHash: hash,
		Role:         sec.RoleMember,
		IsActive:     true,
	}

	identities := &fakeIdentityStore{identities: map[string]*auth.Identity{identity.ID: identity}}
	profiles := newFakeProfileRepository()
	mailer := &recordingMailer{}

	service := account.NewService(profiles, identities, mailer,
		"Blog administration <no-reply@inkwell.blog>", slog.Default())
	return service, identities, profiles, mailer, identity.ID
}

func validProfileInput() account.CreateProfileInput {
	return account.CreateProfileInput{
		FirstName:  "jAN",
		LastName:   "kOWALSKI",
		Nick:       "janko",
		Country:    "PL",
		Sex:        account.SexMale,
		BirthDay:   29,
		BirthMonth: 2,
		BirthYear:  1996, // leap year
	}
}

// fieldMessages maps field names to their first error message.
func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()

	appError := apperr.As(err)
	require.NotNil(t, appError)

	messages := map[string]string{}
	for _, detail := range appError.Details {
		if _, seen := messages[detail.Field]; !seen {
			messages[detail.Field] = detail.Message
		}
	}
	return messages
}

// # Profile Creation

/*
TestService_CreateProfile_NormalizesNames verifies name capitalization and
birth date composition for a valid leap-day input.
*/
func TestService_CreateProfile_NormalizesNames(t *testing.T) {
	service, _, _, _, identityID := newTestService(t, "Secret12!?")

	profile, err := service.CreateProfile(context.Background(), identityID, validProfileInput())
	require.NoError(t, err)

	// 1. Mixed-case input is normalized to capitalized form
	assert.Equal(t, "Jan", profile.FirstName)
	assert.Equal(t, "Kowalski", profile.LastName)

	// 2. The three components composed into one date
	assert.Equal(t, time.Date(1996, time.February, 29, 0, 0, 0, 0, time.UTC), profile.DateOfBirth)
	assert.Zero(t, profile.ArticleCount)

	// 3. The profile is now retrievable for the identity
	found, err := service.GetProfile(context.Background(), identityID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, found.ID)
}

/*
TestService_CreateProfile_RejectsImpossibleDate verifies that in-range
components which do not compose (February 30th) are rejected.
*/
func TestService_CreateProfile_RejectsImpossibleDate(t *testing.T) {
	service, _, _, _, identityID := newTestService(t, "Secret12!?")

	input := validProfileInput()
	input.BirthDay = 30 // February 30th does not exist

	_, err := service.CreateProfile(context.Background(), identityID, input)
	messages := fieldMessages(t, err)
	assert.Equal(t, account.MsgInvalidBirthDate, messages[account.FieldBirthDay])

	// February 29th outside a leap year is equally impossible
	input.BirthDay = 29
	input.BirthYear = 1995

	_, err = service.CreateProfile(context.Background(), identityID, input)
	messages = fieldMessages(t, err)
	assert.Equal(t, account.MsgInvalidBirthDate, messages[account.FieldBirthDay])
}

/*
TestService_CreateProfile_RejectsTakenNick verifies nickname uniqueness
across identities.
*/
func TestService_CreateProfile_RejectsTakenNick(t *testing.T) {
	service, identities, _, _, identityID := newTestService(t, "Secret12!?")

	_, err := service.CreateProfile(context.Background(), identityID, validProfileInput())
	require.NoError(t, err)

	// A second identity tries to claim the same nick
	other := &auth.Identity{ID: "0191a7b0-0000-7000-8000-000000000002", Username: "nowak", Email: "nowak@example.com", IsActive: true}
	identities.identities[other.ID] = other

	input := validProfileInput()
	_, err = service.CreateProfile(context.Background(), other.ID, input)

	messages := fieldMessages(t, err)
	assert.Equal(t, account.MsgNickTaken, messages[account.FieldNick])
}

/*
TestService_CreateProfile_RejectsSecondProfile verifies the 1:1 invariant.
*/
func TestService_CreateProfile_RejectsSecondProfile(t *testing.T) {
	service, _, _, _, identityID := newTestService(t, "Secret12!?")

	_, err := service.CreateProfile(context.Background(), identityID, validProfileInput())
	require.NoError(t, err)

	input := validProfileInput()
	input.Nick = "different"
	_, err = service.CreateProfile(context.Background(), identityID, input)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Credential Self-Service

/*
TestService_ChangePassword verifies old-password verification, hash rotation,
and the notification mail.
*/
func TestService_ChangePassword(t *testing.T) {
	service, identities, _, mailer, identityID := newTestService(t, "Secret12!?")

	// 1. Wrong old password fails with the canonical message
	err := service.ChangePassword(context.Background(), identityID, "Wrong12!?x", "Fresh34$%A")
	messages := fieldMessages(t, err)
	assert.Equal(t, account.MsgOldPasswordMismatch, messages[apperr.FieldNonField])

	// 2. Correct old password rotates the hash
	err = service.ChangePassword(context.Background(), identityID, "Secret12!?", "Fresh34$%A")
	require.NoError(t, err)

	identity := identities.identities[identityID]
	assert.True(t, sec.CheckPasswordHash("Fresh34$%A", identity.PasswordHash))
	assert.False(t, sec.CheckPasswordHash("Secret12!?", identity.PasswordHash))

	// 3. The member was notified at their account address
	require.Len(t, mailer.recipients, 1)
	assert.Equal(t, "kowalski@example.com", mailer.recipients[0])
	assert.Equal(t, "Password changed", mailer.subjects[0])
}

/*
TestService_ChangeEmail verifies old-email confirmation, uniqueness, the
notification to the new address, and that reverting is allowed.
*/
func TestService_ChangeEmail(t *testing.T) {
	service, identities, _, mailer, identityID := newTestService(t, "Secret12!?")

	// 1. Wrong current address fails with the canonical message
	err := service.ChangeEmail(context.Background(), identityID, "other@example.com", "new@example.com")
	messages := fieldMessages(t, err)
	assert.Equal(t, account.MsgOldEmailMismatch, messages[apperr.FieldNonField])

	// 2. An address held by another account is rejected as a field error
	taken := &auth.Identity{ID: "0191a7b0-0000-7000-8000-000000000002", Username: "nowak", Email: "taken@example.com", IsActive: true}
	identities.identities[taken.ID] = taken

	err = service.ChangeEmail(context.Background(), identityID, "kowalski@example.com", "taken@example.com")
	messages = fieldMessages(t, err)
	assert.Equal(t, auth.MsgEmailTaken, messages[account.FieldNewEmail1])

	// 3. A free address goes through and notifies the new inbox
	err = service.ChangeEmail(context.Background(), identityID, "kowalski@example.com", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", identities.identities[identityID].Email)

	require.Len(t, mailer.recipients, 1)
	assert.Equal(t, "new@example.com", mailer.recipients[0])
	assert.Equal(t, "Email changed", mailer.subjects[0])

	// 4. Changing back to the previously held address is allowed
	err = service.ChangeEmail(context.Background(), identityID, "new@example.com", "kowalski@example.com")
	require.NoError(t, err)
	assert.Equal(t, "kowalski@example.com", identities.identities[identityID].Email)
}
