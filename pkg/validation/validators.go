package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TagNotBlank   = "notblank"
	TagLooseEmail = "loose_email"
)

// looseEmailRegex accepts anything shaped like local@domain.tld: no whitespace,
// a single @, and at least one dot after it. Deliberately not RFC 5322.
// The whitespace class covers the Unicode spaces browsers treat as \s.
var looseEmailRegex = regexp.MustCompile(
	`^[^@\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+` +
		`@[^@\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+` +
		`\.[^@\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]+$`,
)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation(TagNotBlank, NotBlank)
	_ = v.RegisterValidation(TagLooseEmail, LooseEmail)
}

// NotBlank fails for empty and whitespace-only strings
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// LooseEmail validates the value as-is, surrounding whitespace included
func LooseEmail(fl validator.FieldLevel) bool {
	return IsLooseEmail(fl.Field().String())
}

func IsLooseEmail(s string) bool {
	return looseEmailRegex.MatchString(s)
}
