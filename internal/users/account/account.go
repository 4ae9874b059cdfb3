// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package account handles user profile management and credential self-service.

It provides functionalities for users to create and view their personal
profile, and to rotate their own password and email address.

# Architecture

  - Entities: Profile (personal attributes, linked 1:1 to an identity).
  - Domain: This package depends on the auth package for the Identity entity.
  - Security: Every operation takes the acting identity explicitly; there is
    no ambient current-user state.
*/
package account

import (
	"context"
	"time"

	"github.com/risoko/inkwell/internal/users/auth"
)

// # Domain Entities

// Profile represents the personal attributes of a member.
//
// A profile exists only after the member explicitly creates one; a fresh
// registration has an identity and an empty account link.
type Profile struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Nick         string    `json:"nick"`
	Country      string    `json:"country"` // ISO 3166-1 alpha-2
	Sex          string    `json:"sex"`     // 'M' or 'F'
	DateOfBirth  time.Time `json:"date_of_birth"`
	ArticleCount int       `json:"article_count"`
}

// # Sex Enumeration

const (
	SexMale   = "M"
	SexFemale = "F"
)

// # Field Identifiers

const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldNick         = "nick"
	FieldCountry      = "country"
	FieldSex          = "sex"
	FieldBirthDay     = "birth_day"
	FieldBirthMonth   = "birth_month"
	FieldBirthYear    = "birth_year"
	FieldOldPassword  = "old_password"
	FieldNewPassword1 = "new_password1"
	FieldNewPassword2 = "new_password2"
	FieldOldEmail     = "old_email"
	FieldNewEmail1    = "new_email1"
	FieldNewEmail2    = "new_email2"
)

// # Repository Contracts

// ProfileRepository defines the persistence contract for member profiles.
type ProfileRepository interface {
	/*
		FindByIdentity retrieves the profile linked to an identity.

		Parameters:
		  - context: context.Context
		  - identityID: string (UUID)

		Returns:
		  - *Profile: Hydrated profile entity
		  - error: apperr.NotFound when no profile has been created yet
	*/
	FindByIdentity(context context.Context, identityID string) (*Profile, error)

	/*
		FindByNick retrieves a profile by its unique nickname.

		Parameters:
		  - context: context.Context
		  - nick: string

		Returns:
		  - *Profile: Hydrated profile entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByNick(context context.Context, nick string) (*Profile, error)

	/*
		Create persists a new profile and attaches it to the identity's
		account link.

		Parameters:
		  - context: context.Context
		  - identityID: string
		  - profile: *Profile

		Returns:
		  - error: CONFLICT on nickname races, or storage failures
	*/
	Create(context context.Context, identityID string, profile *Profile) error

	/*
		IncrementArticleCount bumps the published-article counter.

		Parameters:
		  - context: context.Context
		  - identityID: string

		Returns:
		  - error: Execution failures
	*/
	IncrementArticleCount(context context.Context, identityID string) error
}

// IdentityStore defines the subset of identity persistence this package needs
// for credential self-service. It is satisfied by the auth Postgres repository
// plus the email mutation implemented here.
type IdentityStore interface {
	/*
		FindByID retrieves an identity by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.Identity: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.Identity, error)

	/*
		FindByEmail retrieves an identity by its unique email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *auth.Identity: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*auth.Identity, error)

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

	/*
		UpdateEmail replaces only the identity's email address.

		Parameters:
		  - context: context.Context
		  - identityID: string
		  - newEmail: string

		Returns:
		  - error: CONFLICT on email races, or persistence failures
	*/
	UpdateEmail(context context.Context, identityID, newEmail string) error
}
