package security

import (
	"fmt"
	"unicode"

	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
)

// MinPasswordLength is the shortest password the policy accepts
const MinPasswordLength = 8

// BasicPasswordPolicy enforces a minimum length and rejects passwords made
// of a single character class
type BasicPasswordPolicy struct{}

// NewBasicPasswordPolicy creates the default password policy
func NewBasicPasswordPolicy() *BasicPasswordPolicy {
	return &BasicPasswordPolicy{}
}

// Validate returns ErrWeakPassword when the password fails the policy
func (p *BasicPasswordPolicy) Validate(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", errs.ErrWeakPassword, MinPasswordLength)
	}

	var hasLetter, hasOther bool
	for _, r := range password {
		if unicode.IsLetter(r) {
			hasLetter = true
		} else {
			hasOther = true
		}
	}
	if !hasLetter || !hasOther {
		return fmt.Errorf("%w: must mix letters with digits or symbols", errs.ErrWeakPassword)
	}

	return nil
}
