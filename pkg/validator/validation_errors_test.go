package validator_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs validator.ValidationErrors
		want string
	}{
		{name: "empty", want: "The given data was invalid."},
		{
			name: "one",
			errs: validator.ValidationErrors{{Field: "email", Message: "The email field is required."}},
			want: "The email field is required.",
		},
		{
			name: "two",
			errs: validator.ValidationErrors{
				{Field: "email", Message: "The email field is required."},
				{Field: "age", Message: "The age must be an integer."},
			},
			want: "The email field is required. (and 1 more error)",
		},
		{
			name: "many",
			errs: validator.ValidationErrors{
				{Field: "email", Message: "The email field is required."},
				{Field: "age", Message: "The age must be an integer."},
				{Field: "age", Message: "The age must be at least 18."},
			},
			want: "The email field is required. (and 2 more errors)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.errs.Error())
		})
	}
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	errs.Add(validator.ValidationError{Field: "password", Rule: "min", Message: "too short"})
	errs.Add(validator.ValidationError{Field: "email", Rule: "required", Message: "is required"})
	errs.Add(validator.ValidationError{Field: "password", Rule: "confirmed", Message: "does not match"})

	assert.True(t, errs.Has("password"))
	assert.False(t, errs.Has("name"))
	assert.True(t, errs.Failed("password", "confirmed"))
	assert.False(t, errs.Failed("email", "email"))
	assert.Equal(t, []string{"too short", "does not match"}, errs.Get("password"))
	assert.Equal(t, "too short", errs.First("password"))
	assert.Empty(t, errs.First("name"))
	assert.Len(t, errs.GetErrors("password"), 2)
	assert.Equal(t, []string{"password", "email"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"password": {"too short", "does not match"},
		"email":    {"is required"},
	}, errs.Bag())
	assert.False(t, errs.IsEmpty())
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{{Field: "email", Message: "is required"}}
	wrapped := fmt.Errorf("register: %w", errs)

	extracted := validator.ExtractValidationErrors(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, errs, extracted)
	assert.True(t, validator.IsValidationError(wrapped))

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	assert.False(t, validator.IsValidationError(errors.New("boom")))
	assert.False(t, validator.IsValidationError(nil))
}

func TestValidate_RecordsFailedRule(t *testing.T) {
	t.Parallel()

	v, err := validator.New(url.Values{"age": {"12"}}, map[string]any{"age": "required|integer|min:18"})
	require.NoError(t, err)

	errs := validator.ExtractValidationErrors(v.Validate(context.Background()))
	require.Len(t, errs, 1)
	assert.Equal(t, "min", errs[0].Rule)
	assert.True(t, errs.Failed("age", "min"))
}
