// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/risoko/inkwell/internal/platform/validate"
)

// asciiPunctuation is the fixed 32-character special set accepted by the
// password policy. It matches the classic ASCII punctuation range.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

const (
	asciiUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiDigits    = "0123456789"
)

// # Policy

/*
CheckPassword applies the platform password policy to the given value,
appending one field error per violated rule onto the validator chain.

Description: Rules are independent; a weak password reports every failure
in a single response. The minimum length differs between user-chosen and
server-generated passwords, so it is a parameter.

Parameters:
  - validator: *validate.Validator (Accumulates failures)
  - field: string (JSON field to attach failures to)
  - password: string
  - minLength: int

Returns:
  - *validate.Validator: The same chain, for fluent continuation
*/
func CheckPassword(validator *validate.Validator, field, password string, minLength int) *validate.Validator {
	var digits, punctuation, uppercase int

	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(asciiPunctuation, r):
			punctuation++
		case unicode.IsUpper(r):
			uppercase++
		}
	}

	validator.MinLen(field, password, minLength).
		Custom(field, digits < MinPasswordDigits,
			fmt.Sprintf("Password must contain at least %d digits", MinPasswordDigits)).
		Custom(field, punctuation < MinPasswordPunctuation,
			fmt.Sprintf("Password must contain at least %d special characters", MinPasswordPunctuation)).
		Custom(field, uppercase < MinPasswordUppercase,
			fmt.Sprintf("Password must contain at least %d uppercase letter", MinPasswordUppercase))

	return validator
}

// # Generation

/*
GeneratePassword creates a random password that satisfies the policy at the
generated minimum length.

Description: Samples 6 uppercase letters, 2 digits, and 2 punctuation
characters, each class without repetition, from crypto/rand. The result is
10 characters and always passes [CheckPassword] with
[MinGeneratedPasswordLength].

Returns:
  - string: The plain-text generated password
  - error: Entropy source failures
*/
func GeneratePassword() (string, error) {
	upper, err := sampleWithoutRepetition(asciiUppercase, 6)
	if err != nil {
		return "", err
	}

	digits, err := sampleWithoutRepetition(asciiDigits, 2)
	if err != nil {
		return "", err
	}

	punctuation, err := sampleWithoutRepetition(asciiPunctuation, 2)
	if err != nil {
		return "", err
	}

	return upper + digits + punctuation, nil
}

// sampleWithoutRepetition draws count distinct characters from the alphabet.
func sampleWithoutRepetition(alphabet string, count int) (string, error) {
	pool := []byte(alphabet)
	var builder strings.Builder

	for i := 0; i < count; i++ {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
		if err != nil {
			return "", fmt.Errorf("auth_password_sample_failed: %w", err)
		}

		n := index.Int64()
		builder.WriteByte(pool[n])

		// Remove the drawn character so it cannot repeat
		pool = append(pool[:n], pool[n+1:]...)
	}

	return builder.String(), nil
}
