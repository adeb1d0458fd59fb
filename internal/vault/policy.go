package vault

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	lberrors "github.com/lockboxcli/lockbox/internal/errors"
)

const minPasswordLength = 12

// IsStrong reports whether the password meets the vault's strength rules:
// at least 12 characters with an uppercase letter, a lowercase letter, a
// digit, and a non-alphanumeric character.
func IsStrong(password string) bool {
	return ValidatePassword(password) == nil
}

// ValidatePassword applies the strength rules and returns the first failed
// rule wrapped in ErrWeakPassword, so prompts can tell the user what to fix.
func ValidatePassword(password string) error {
	// Characters, not bytes, so multi-byte runes count once like the class
	// checks below treat them.
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", lberrors.ErrWeakPassword, minPasswordLength)
	}
	if !containsClass(password, unicode.IsUpper) {
		return fmt.Errorf("%w: must include an uppercase letter", lberrors.ErrWeakPassword)
	}
	if !containsClass(password, unicode.IsLower) {
		return fmt.Errorf("%w: must include a lowercase letter", lberrors.ErrWeakPassword)
	}
	if !containsClass(password, unicode.IsDigit) {
		return fmt.Errorf("%w: must include a digit", lberrors.ErrWeakPassword)
	}
	if !containsClass(password, isSpecial) {
		return fmt.Errorf("%w: must include a special character", lberrors.ErrWeakPassword)
	}
	return nil
}

func containsClass(s string, class func(rune) bool) bool {
	for _, r := range s {
		if class(r) {
			return true
		}
	}
	return false
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
