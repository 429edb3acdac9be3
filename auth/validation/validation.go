// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// Minimum zxcvbn score (0-4) accepted for new passwords.
const minPasswordScore = 2

var (
	validate = validator.New()

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]{1,62}[a-zA-Z0-9]$`)
)

// ValidateStruct runs the validator tags declared on a request struct.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(verr.Field()), verr.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// ValidateUsername checks the username shape beyond the struct tags.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must start and end with a letter or digit and contain only letters, digits, '_', '.', '-'")
	}
	return nil
}

// ValidatePasswordStrength rejects passwords that are guessable, using the
// username and email as crack-dictionary inputs so "username123" scores low.
func ValidatePasswordStrength(password string, userInputs ...string) error {
	result := zxcvbn.PasswordStrength(password, userInputs)
	if result.Score < minPasswordScore {
		return fmt.Errorf("password is too guessable (score %d of 4)", result.Score)
	}
	return nil
}
