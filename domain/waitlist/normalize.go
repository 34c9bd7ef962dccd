package waitlist

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var validate = validator.New()

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Uniqueness is enforced on the normalized form.
func NormalizeEmail(email string) string {
	// cases.Caser keeps state, so one is built per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// ValidateEmail applies the same syntactic check a browser applies to an input of type email.
func ValidateEmail(email string) error {
	return validate.Var(email, "required,email,max=254")
}
