// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to token issuance and password recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Returns opaque bearer tokens; never echoes password hashes.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/constants"
	requestutil "github.com/risoko/inkwell/internal/platform/request"
	"github.com/risoko/inkwell/internal/platform/respond"
	"github.com/risoko/inkwell/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Password Reset).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /registration   : Creates a new account.
//   - POST /login          : Authenticates and returns the bearer token.
//   - POST /reset_password : Replaces a forgotten password.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/registration", handler.registration)
	router.Post("/login", handler.login)
	router.Post("/reset_password", handler.resetPassword)

	return router
}

// # Request Payloads

type registrationRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

type resetPasswordRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Registration handles the creation of a new user account.

POST /api/v1/auth/registration

Description: Validates input (format, password policy, confirmation match),
checks for identity conflicts, and persists a new identity.

Request:
  - Body: registrationRequest (Username, Email, Password1, Password2)

Response:
  - 201: {username, email}: Created account
  - 400: VALIDATION_ERROR: Bad input, weak password, or taken identity
*/
func (handler *Handler) registration(writer http.ResponseWriter, request *http.Request) {
	var input registrationRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword1, input.Password1).
		Required(FieldPassword2, input.Password2)

	CheckPassword(validator, FieldPassword1, input.Password1, MinPasswordLength)

	// Both passwords must match; the mismatch concerns the pair, not either field.
	validator.Custom(apperr.FieldNonField, input.Password1 != input.Password2, MsgPasswordMismatch)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password1,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{
		FieldUsername: identity.Username,
		FieldEmail:    identity.Email,
	})
}

/*
Login authenticates a user and returns their bearer token.

POST /api/v1/auth/login

Description: Verifies credentials (username or email plus password) and
returns the identity's single opaque token. Repeated logins return the
same token.

Request:
  - Body: loginRequest (UsernameOrEmail, Password)

Response:
  - 200: {token}: The bearer token key
  - 400: VALIDATION_ERROR: The opaque credential failure
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsernameOrEmail, input.UsernameOrEmail).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input.UsernameOrEmail, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldToken: token,
	})
}

/*
ResetPassword replaces a forgotten password with a generated one.

POST /api/v1/auth/reset_password

Description: Identifies the account by username AND email together, rotates
the password to a policy-compliant generated value, emails it to the account
address, and returns it in the response body.

Request:
  - Body: resetPasswordRequest (Username, Email)

Response:
  - 200: {password}: The plain-text generated password
  - 400: VALIDATION_ERROR: Unknown username/email pair
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	password, err := handler.authService.ResetPassword(request.Context(), input.Username, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldPassword: password,
	})
}
