// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"strings"

	"github.com/nbutton23/zxcvbn-go"

	"github.com/litboard/api/users/models"
)

// MinPasswordScore is the minimum zxcvbn score accepted for new passwords.
const MinPasswordScore = 1

// ValidateRegister checks registration input and returns field-keyed
// errors. An empty slice means the input is acceptable.
func ValidateRegister(req *models.RegisterRequest) []models.FieldError {
	var errs []models.FieldError

	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		errs = append(errs, models.FieldError{Field: "email", Message: "Invalid email."})
	}

	errs = append(errs, validateUsername(req.Username)...)
	errs = append(errs, ValidatePassword("password", req.Password, []string{req.Username, req.Email})...)

	return errs
}

// ValidatePassword checks a password against the length floor and the
// strength estimator, attributing failures to the given field name.
// userInputs feeds the estimator so passwords derived from the user's own
// identifiers score poorly.
func ValidatePassword(field, password string, userInputs []string) []models.FieldError {
	if len(password) <= 3 {
		return []models.FieldError{{Field: field, Message: "Length must be greater than 3."}}
	}

	if zxcvbn.PasswordStrength(password, userInputs).Score < MinPasswordScore {
		return []models.FieldError{{Field: field, Message: "Password is too weak."}}
	}

	return nil
}

func validateUsername(username string) []models.FieldError {
	var errs []models.FieldError

	if len(username) <= 2 {
		errs = append(errs, models.FieldError{Field: "username", Message: "Length must be greater than 2."})
	}
	if strings.Contains(username, "@") || strings.Contains(username, ".") {
		errs = append(errs, models.FieldError{Field: "username", Message: "Cannot include an @ or ."})
	}

	return errs
}
