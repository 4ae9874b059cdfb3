// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: risoko.dev@gmail.com

package auth_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risoko/inkwell/internal/platform/apperr"
	"github.com/risoko/inkwell/internal/platform/validate"
	"github.com/risoko/inkwell/internal/users/auth"
)

// checkPassword runs the policy and returns the collected field error messages.
func checkPassword(password string, minLength int) []string {
	validator := &validate.Validator{}
	auth.CheckPassword(validator, auth.FieldPassword, password, minLength)

	err := validator.Err()
	if err == nil {
		return nil
	}

	var messages []string
	for _, detail := range apperr.As(err).Details {
		messages = append(messages, detail.Message)
	}
	return messages
}

/*
TestPassword_PolicyAccepts verifies that compliant passwords produce no errors.
*/
func TestPassword_PolicyAccepts(t *testing.T) {
	compliant := []string{
		"Secret12!?",
		"A1b2,c.d",
		"PASS00--word",
	}

	for _, password := range compliant {
		assert.Empty(t, checkPassword(password, auth.MinPasswordLength), password)
	}
}

/*
TestPassword_PolicyRejectsPerRule verifies that each violated rule reports
its own error and that independent rules fire together.
*/
func TestPassword_PolicyRejectsPerRule(t *testing.T) {
	// 1. Missing digits only
	messages := checkPassword("Secret!!abc", auth.MinPasswordLength)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "digits")

	// 2. Missing punctuation only
	messages = checkPassword("Secret12abc", auth.MinPasswordLength)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "special")

	// 3. Missing uppercase only
	messages = checkPassword("secret12!!", auth.MinPasswordLength)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "uppercase")

	// 4. Too short but otherwise compliant
	messages = checkPassword("Ab1!2?.", auth.MinPasswordLength)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "at least 8 characters")

	// 5. Everything wrong at once: all four rules fire in one response
	messages = checkPassword("abc", auth.MinPasswordLength)
	assert.Len(t, messages, 4)
}

/*
TestPassword_PolicyCountsOnlyASCIIPunctuation verifies that characters outside
the fixed special set do not satisfy the punctuation rule.
*/
func TestPassword_PolicyCountsOnlyASCIIPunctuation(t *testing.T) {
	// "«" and "»" are punctuation in Unicode but not in the accepted set.
	messages := checkPassword("Secret12«»", auth.MinPasswordLength)

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "special")
}

/*
TestPassword_GenerateComposition verifies the generated password shape:
10 characters, 6 uppercase, 2 digits, 2 punctuation, no repeats per class.
*/
func TestPassword_GenerateComposition(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := auth.GeneratePassword()
		require.NoError(t, err)
		require.Len(t, password, auth.MinGeneratedPasswordLength)

		var upper, digits, punctuation int
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				upper++
			case unicode.IsDigit(r):
				digits++
			default:
				punctuation++
			}
		}

		assert.Equal(t, 6, upper)
		assert.Equal(t, 2, digits)
		assert.Equal(t, 2, punctuation)

		// Sampling is without repetition inside each class
		upperPart := password[:6]
		for _, r := range upperPart {
			assert.Equal(t, 1, strings.Count(upperPart, string(r)))
		}
	}
}

/*
TestPassword_GenerateSatisfiesPolicy verifies that generated passwords always
pass the policy at the generated minimum length.
*/
func TestPassword_GenerateSatisfiesPolicy(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := auth.GeneratePassword()
		require.NoError(t, err)

		assert.Empty(t, checkPassword(password, auth.MinGeneratedPasswordLength))
	}
}
