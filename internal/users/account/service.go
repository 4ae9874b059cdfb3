// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/mail"
	"github.com/risoko/inkwell/internal/platform/sec"
	"github.com/risoko/inkwell/internal/platform/validate"
	"github.com/risoko/inkwell/internal/users/auth"
	"github.com/risoko/inkwell/pkg/uuid"
)

// # Canonical Messages

const (
	MsgOldPasswordMismatch = "Old password mismatch."
	MsgOldEmailMismatch    = "Old email mismatch."
	MsgEmailPairMismatch   = "Two email mismatch."
	MsgNickTaken           = "A user with that nickname already exists."
	MsgNickNumeric         = "Nickname cannot consist of digits only."
	MsgInvalidBirthDate    = "The composed birth date is not a valid calendar date."
)

// # Birth Date Bounds

const (
	// MinMemberAge is the youngest accepted age in years.
	MinMemberAge = 5

	// MaxMemberAge is the oldest accepted age in years.
	MaxMemberAge = 100
)

// # Service Layer

// Service orchestrates business logic for member profiles and credential
// self-service.
type Service struct {
	profileRepository ProfileRepository
	identityStore     IdentityStore
	mailer            mail.Mailer
	mailSender        string
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	profileRepo ProfileRepository,
	identityStore IdentityStore,
	mailer mail.Mailer,
	mailSender string,
	logger *slog.Logger,
) *Service {
	return &Service{
		profileRepository: profileRepo,
		identityStore:     identityStore,
		mailer:            mailer,
		mailSender:        mailSender,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the profile of the acting identity.

Parameters:
  - context: context.Context
  - identityID: string

Returns:
  - *Profile: The hydrated profile
  - error: apperr.NotFound when the member has not created one yet
*/
func (service *Service) GetProfile(context context.Context, identityID string) (*Profile, error) {
	profile, err := service.profileRepository.FindByIdentity(context, identityID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateProfileInput holds the data for a new member profile. The birth date
// arrives as three separate components and is composed server-side.
type CreateProfileInput struct {
	FirstName  string
	LastName   string
	Nick       string
	Country    string
	Sex        string
	BirthDay   int
	BirthMonth int
	BirthYear  int
}

/*
CreateProfile validates and persists the acting identity's profile.

Description: Names are normalized to capitalized form (first letter upper,
rest lower). The three birth components must compose a real calendar date;
ranges are pre-checked field by field, so this rejects combinations like
February 30th. Nickname uniqueness is pre-checked for a friendly field error
and enforced by the DB constraint against races.

Parameters:
  - context: context.Context
  - identityID: string
  - input: CreateProfileInput

Returns:
  - *Profile: Created entity
  - error: Field-level validation errors, CONFLICT, or storage failures
*/
func (service *Service) CreateProfile(context context.Context, identityID string, input CreateProfileInput) (*Profile, error) {

	// One profile per identity
	if _, err := service.profileRepository.FindByIdentity(context, identityID); err == nil {
		return nil, apperr.Conflict("Profile already exists")
	}

	validator := &validate.Validator{}

	if _, err := service.profileRepository.FindByNick(context, input.Nick); err == nil {
		validator.Custom(FieldNick, true, MsgNickTaken)
	}

	dateOfBirth, composes := composeBirthDate(input.BirthYear, input.BirthMonth, input.BirthDay)
	validator.Custom(FieldBirthDay, !composes, MsgInvalidBirthDate)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:          uuid.New(),
		FirstName:   capitalize(input.FirstName),
		LastName:    capitalize(input.LastName),
		Nick:        input.Nick,
		Country:     input.Country,
		Sex:         input.Sex,
		DateOfBirth: dateOfBirth,
	}

	if err := service.profileRepository.Create(context, identityID, profile); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_created",
		slog.String("identity_id", identityID),
		slog.String("nick", profile.Nick),
	)

	return profile, nil
}

// # Credential Self-Service

/*
ChangePassword rotates the acting identity's password.

Description: The old password must verify against the stored hash before the
new one is accepted. A notification is mailed to the account address after
the rotation.

Parameters:
  - context: context.Context
  - identityID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - error: The canonical mismatch failure, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, identityID, oldPassword, newPassword string) error {
	identity, err := service.identityStore.FindByID(context, identityID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, identity.PasswordHash) {
		return apperr.NonFieldError(MsgOldPasswordMismatch)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.identityStore.UpdatePassword(context, identityID, hashedPassword); err != nil {
		return fmt.Errorf("account_service_change_password_update_failed: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour password has been changed.\n", identity.Username)
	_ = service.mailer.Send(context, "Password changed", body, service.mailSender, identity.Email)

	service.logger.Info("user_password_changed", slog.String("identity_id", identityID))

	return nil
}

/*
ChangeEmail replaces the acting identity's email address.

Description: The caller must confirm the current address (old_email) and the
replacement is taken from the already pair-matched new addresses. Changing
back to a previously held address is allowed as long as no other account
holds it now. A notification is mailed to the new address.

Parameters:
  - context: context.Context
  - identityID: string
  - oldEmail: string
  - newEmail: string

Returns:
  - error: The canonical mismatch failure, a taken-address field error, or
    storage failures
*/
func (service *Service) ChangeEmail(context context.Context, identityID, oldEmail, newEmail string) error {
	identity, err := service.identityStore.FindByID(context, identityID)
	if err != nil {
		return err
	}

	if identity.Email != oldEmail {
		return apperr.NonFieldError(MsgOldEmailMismatch)
	}

	// Pre-check so the common case gets a field error; the unique constraint
	// still guards the race.
	if existing, err := service.identityStore.FindByEmail(context, newEmail); err == nil && existing.ID != identityID {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldNewEmail1,
			Message: auth.MsgEmailTaken,
		})
	}

	if err := service.identityStore.UpdateEmail(context, identityID, newEmail); err != nil {
		return err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour email address has been changed to %s.\n",
		identity.Username, newEmail)
	_ = service.mailer.Send(context, "Email changed", body, service.mailSender, newEmail)

	service.logger.Info("user_email_changed", slog.String("identity_id", identityID))

	return nil
}

// # Helpers

// composeBirthDate builds a date from its components and reports whether the
// combination is a real calendar date (time.Date silently normalizes
// overflowing components, so the result is compared back).
func composeBirthDate(year, month, day int) (time.Time, bool) {
	composed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	valid := composed.Year() == year &&
		composed.Month() == time.Month(month) &&
		composed.Day() == day

	return composed, valid
}

// capitalize normalizes a name: first rune upper, remainder lower.
func capitalize(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}

	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
