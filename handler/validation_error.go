package handler

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// ValidationError maps fields to their messages.
type ValidationError url.Values

// NewValidationError creates an empty ValidationError.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// AsValidationError converts host validation failures. It reports false
// for any other error.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	errs := validator.ExtractValidationErrors(err)
	if errs == nil {
		return nil, false
	}
	return ValidationError(errs.Bag()), true
}

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message of field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// First returns the first message of the alphabetically first field.
func (e ValidationError) First() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if m := e.Get(field); m != "" {
			return m
		}
	}
	return ""
}
