package jsvalidation_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

type takenEmails map[string]bool

func (t takenEmails) Count(_ context.Context, _, _, value, _, _ string) (int64, error) {
	if t[value] {
		return 1, nil
	}
	return 0, nil
}

func signupValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v, err := validator.New(nil, map[string]any{
		"email":     "required|email|unique:users,email",
		"user.name": "required|min:3",
		"secret":    "required|NoJsValidation",
	}, validator.WithPresenceVerifier(takenEmails{"taken@example.com": true}))
	require.NoError(t, err)
	return v
}

func TestRemoteResult_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(jsvalidation.RemoteResult{Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "true", string(b))

	b, err = json.Marshal(jsvalidation.RemoteResult{Messages: []string{"taken"}})
	require.NoError(t, err)
	assert.Equal(t, `["taken"]`, string(b))
}

func TestRemoteValidator_Validate(t *testing.T) {
	t.Parallel()

	rv, err := jsvalidation.NewRemoteValidator(signupValidator(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("remote rules only", func(t *testing.T) {
		res, err := rv.Validate(ctx, url.Values{"email": {"not-an-email"}}, nil, "email", false)
		require.NoError(t, err)
		assert.True(t, res.Valid, "local rules are not re-checked")

		res, err = rv.Validate(ctx, url.Values{"email": {"taken@example.com"}}, nil, "email", false)
		require.NoError(t, err)
		assert.Equal(t, jsvalidation.RemoteResult{Messages: []string{"The email has already been taken."}}, res)
	})

	t.Run("validate all", func(t *testing.T) {
		res, err := rv.Validate(ctx, url.Values{"user[name]": {"al"}}, nil, "user[name]", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"The user.name must be at least 3 characters."}, res.Messages)
	})

	t.Run("disabled attribute passes", func(t *testing.T) {
		res, err := rv.Validate(ctx, url.Values{}, nil, "secret", true)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := rv.Validate(ctx, url.Values{}, nil, "nope", false)
		assert.ErrorIs(t, err, jsvalidation.ErrUnknownAttribute)
	})

	_, err = jsvalidation.NewRemoteValidator(nil)
	assert.ErrorIs(t, err, jsvalidation.ErrNilValidator)
}

func TestRemoteMiddleware(t *testing.T) {
	t.Parallel()

	cfg := jsvalidation.DefaultConfig()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	provider := func(*http.Request) (*validator.Validator, error) { return signupValidator(t), nil }
	mw := jsvalidation.RemoteMiddleware(cfg, provider, nil)(next)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec
	}

	t.Run("passes regular requests through", func(t *testing.T) {
		rec := post(url.Values{"email": {"a@b.io"}})
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("valid", func(t *testing.T) {
		rec := post(url.Values{"email": {"free@example.com"}, "_jsvalidation": {"email"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "true", rec.Body.String())
	})

	t.Run("invalid", func(t *testing.T) {
		rec := post(url.Values{"email": {"taken@example.com"}, "_jsvalidation": {"email"}})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{
			"message": "The email has already been taken.",
			"errors": {"email": ["The email has already been taken."]}
		}`, rec.Body.String())
	})

	t.Run("validate all flag", func(t *testing.T) {
		rec := post(url.Values{
			"email":                      {"nope"},
			"_jsvalidation":              {"email"},
			"_jsvalidation_validate_all": {"true"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "The email must be a valid email address.")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		rec := post(url.Values{"_jsvalidation": {"nope"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider failure", func(t *testing.T) {
		failing := jsvalidation.RemoteMiddleware(cfg, func(*http.Request) (*validator.Validator, error) {
			return nil, errors.New("no form")
		}, nil)(next)
		req := httptest.NewRequest(http.MethodGet, "/signup?_jsvalidation=email", nil)
		rec := httptest.NewRecorder()
		failing.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
