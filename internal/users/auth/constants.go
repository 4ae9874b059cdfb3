// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth

// # Password Policy

const (
	// MinPasswordLength applies to user-chosen passwords (registration,
	// password change).
	MinPasswordLength = 8

	// MinGeneratedPasswordLength applies to server-generated reset passwords.
	MinGeneratedPasswordLength = 10

	// MinPasswordDigits is the required count of decimal digits.
	MinPasswordDigits = 2

	// MinPasswordPunctuation is the required count of ASCII punctuation characters.
	MinPasswordPunctuation = 2

	// MinPasswordUppercase is the required count of uppercase letters.
	MinPasswordUppercase = 1
)

// # Canonical Messages
//
// Credential failures use a single opaque message regardless of which check
// failed, so the API never reveals whether an account exists.
const (
	MsgLoginFailed      = "Unable to log in with provided credentials."
	MsgResetUserMissing = "User with this email or username doesn't exist."
	MsgPasswordMismatch = "Two password mismatch."
	MsgUsernameTaken    = "A user with that username already exists."
	MsgEmailTaken       = "A user with that email address already exists."
)
