// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package account provides the HTTP delivery layer for profile and credential
self-service.

It implements the RESTful interface for members to create and view their
profile and to rotate their own password and email address.

# Security

All endpoints in this package require an authenticated bearer token provided
by the RequireAuth middleware. The resolved claims are read once per handler
and passed to the service explicitly.
*/
package account

import (
	"net/http"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/risoko/inkwell/internal/platform/apperr"
	requestutil "github.com/risoko/inkwell/internal/platform/request"
	"github.com/risoko/inkwell/internal/platform/respond"
	"github.com/risoko/inkwell/internal/platform/validate"
	"github.com/risoko/inkwell/internal/users/auth"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Profile
	router.Get("/", handler.getAccount)
	router.Post("/", handler.createProfile)

	// Credential self-service
	router.Put("/change_password", handler.changePassword)
	router.Put("/change_email", handler.changeEmail)

	return router
}

// # Profile Endpoints

/*
GetAccount retrieves the profile of the authenticated member.

GET /api/v1/account

Response:
  - 200: Profile: The member's profile
  - 404: NOT_FOUND: No profile has been created yet
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	identityID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), identityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

// createProfileRequest defines the expected JSON payload for profile creation.
// The birth date arrives as three separate numeric components.
type createProfileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Nick       string `json:"nick"`
	Country    string `json:"country"`
	Sex        string `json:"sex"`
	BirthDay   int    `json:"birth_day"`
	BirthMonth int    `json:"birth_month"`
	BirthYear  int    `json:"birth_year"`
}

/*
CreateProfile creates the authenticated member's profile.

POST /api/v1/account

Description: Validates names as pure-alphabetic, the nickname as unique and
not purely numeric, the country as an alpha-2 code, the sex as M or F, and
the birth components both individually and as a composed calendar date.

Request:
  - Body: createProfileRequest

Response:
  - 201: Profile: Created profile fields
  - 400: VALIDATION_ERROR: Per-field failures
  - 409: CONFLICT: Profile already exists
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) createProfile(writer http.ResponseWriter, request *http.Request) {
	identityID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	currentYear := time.Now().Year()

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		Alpha(FieldFirstName, input.FirstName).
		Required(FieldLastName, input.LastName).
		Alpha(FieldLastName, input.LastName).
		Required(FieldNick, input.Nick).
		MinLen(FieldNick, input.Nick, 3).
		Required(FieldCountry, input.Country).
		CountryCode(FieldCountry, input.Country).
		OneOf(FieldSex, input.Sex, SexMale, SexFemale).
		Range(FieldBirthDay, input.BirthDay, 1, 31).
		Range(FieldBirthMonth, input.BirthMonth, 1, 12).
		Range(FieldBirthYear, input.BirthYear, currentYear-MaxMemberAge, currentYear-MinMemberAge)

	// A nickname of digits only would shadow numeric identifiers.
	validator.Custom(FieldNick, isNumeric(input.Nick), MsgNickNumeric)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.CreateProfile(request.Context(), identityID, CreateProfileInput{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Nick:       input.Nick,
		Country:    input.Country,
		Sex:        input.Sex,
		BirthDay:   input.BirthDay,
		BirthMonth: input.BirthMonth,
		BirthYear:  input.BirthYear,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profile)
}

// # Credential Endpoints

type changePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

/*
ChangePassword rotates the authenticated member's password.

PUT /api/v1/account/change_password

Description: The old password must verify against the stored hash; the new
pair must match each other and satisfy the password policy.

Request:
  - Body: changePasswordRequest (OldPassword, NewPassword1, NewPassword2)

Response:
  - 200: {message}: Password changed
  - 400: VALIDATION_ERROR: Mismatch or weak password
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identityID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword1, input.NewPassword1).
		Required(FieldNewPassword2, input.NewPassword2)

	auth.CheckPassword(validator, FieldNewPassword1, input.NewPassword1, auth.MinPasswordLength)

	validator.Custom(apperr.FieldNonField, input.NewPassword1 != input.NewPassword2, auth.MsgPasswordMismatch)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.accountService.ChangePassword(request.Context(), identityID, input.OldPassword, input.NewPassword1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Password changed successfully",
	})
}

type changeEmailRequest struct {
	OldEmail  string `json:"old_email"`
	NewEmail1 string `json:"new_email1"`
	NewEmail2 string `json:"new_email2"`
}

/*
ChangeEmail replaces the authenticated member's email address.

PUT /api/v1/account/change_email

Description: The current address must be confirmed (old_email) and the new
address entered twice. Both new values must be valid addresses and match
each other.

Request:
  - Body: changeEmailRequest (OldEmail, NewEmail1, NewEmail2)

Response:
  - 200: {message}: Email changed
  - 400: VALIDATION_ERROR: Mismatch or taken address
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) changeEmail(writer http.ResponseWriter, request *http.Request) {
	identityID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeEmailRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldEmail, input.OldEmail).
		Email(FieldOldEmail, input.OldEmail).
		Required(FieldNewEmail1, input.NewEmail1).
		Email(FieldNewEmail1, input.NewEmail1).
		Required(FieldNewEmail2, input.NewEmail2).
		Email(FieldNewEmail2, input.NewEmail2)

	validator.Custom(apperr.FieldNonField, input.NewEmail1 != input.NewEmail2, MsgEmailPairMismatch)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.accountService.ChangeEmail(request.Context(), identityID, input.OldEmail, input.NewEmail1)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Email changed successfully",
	})
}

// isNumeric reports whether the value consists entirely of decimal digits.
func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
