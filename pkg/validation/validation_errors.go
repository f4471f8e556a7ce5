package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FailedTags returns the validation tags that failed, in field declaration order.
// A non-validation error yields nil.
func FailedTags(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	tags := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		tags = append(tags, e.Tag())
	}
	return tags
}

// HasFailedTag reports whether any field failed the given tag
func HasFailedTag(err error, tag string) bool {
	for _, t := range FailedTags(err) {
		if t == tag {
			return true
		}
	}
	return false
}
