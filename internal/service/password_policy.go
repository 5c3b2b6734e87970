package service

import (
	"context"
	"fmt"
	"unicode"

	apperrors "github.com/oaltun/fief/internal/errors"
)

// MinimumPasswordPolicy rejects passwords that are too short or lack both a
// letter and a digit. The rejection reason is human-readable and field-scoped
// so the form can display it next to the password input.
type MinimumPasswordPolicy struct {
	MinLength int
}

// NewMinimumPasswordPolicy constructs the default password policy.
func NewMinimumPasswordPolicy(minLength int) *MinimumPasswordPolicy {
	const floor = 8
	if minLength < floor {
		minLength = floor
	}
	return &MinimumPasswordPolicy{MinLength: minLength}
}

// Validate checks the candidate password, returning a Validation AppError on
// the password field with the policy reason when it is rejected.
func (p *MinimumPasswordPolicy) Validate(_ context.Context, password string) error {
	if len(password) < p.MinLength {
		return apperrors.ValidationField(
			"password",
			fmt.Sprintf("Password must be at least %d characters long.", p.MinLength),
		)
	}
	if !hasLetter(password) || !hasDigit(password) {
		return apperrors.ValidationField(
			"password",
			"Password must contain at least one letter and one digit.",
		)
	}
	return nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
