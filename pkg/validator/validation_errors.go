package validator

import (
	"errors"
	"fmt"
	"slices"
)

// ValidationError is one failed rule. TranslationKey and TranslationValues
// let callers render the message again in another language.
type ValidationError struct {
	Field             string
	Rule              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is returned by Validate, in attribute then rule order.
type ValidationErrors []ValidationError

// Error summarises the failures the way Laravel does: the first message
// followed by the number of remaining ones.
func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "The given data was invalid."
	case 1:
		return ve[0].Message
	case 2:
		return fmt.Sprintf("%s (and 1 more error)", ve[0].Message)
	}
	return fmt.Sprintf("%s (and %d more errors)", ve[0].Message, len(ve)-1)
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Failed reports whether rule failed for field.
func (ve ValidationErrors) Failed(field, rule string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool {
		return e.Field == field && e.Rule == rule
	})
}

// Get returns the messages of field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, e := range ve {
		if e.Field == field {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

// First returns the first message of field, or "".
func (ve ValidationErrors) First(field string) string {
	i := slices.IndexFunc(ve, func(e ValidationError) bool { return e.Field == field })
	if i < 0 {
		return ""
	}
	return ve[i].Message
}

func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Fields lists failed fields once each, in failure order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		if !slices.Contains(fields, e.Field) {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// Bag groups messages by field, the shape form endpoints answer with.
func (ve ValidationErrors) Bag() map[string][]string {
	bag := make(map[string][]string)
	for _, e := range ve {
		bag[e.Field] = append(bag[e.Field], e.Message)
	}
	return bag
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors returns the ValidationErrors in err's chain, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if err != nil && errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
