package validator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

func validate(t *testing.T, data url.Values, rules map[string]any, opts ...validator.Option) validator.ValidationErrors {
	t.Helper()
	v, err := validator.New(data, rules, opts...)
	require.NoError(t, err)
	err = v.Validate(context.Background())
	if err == nil {
		return nil
	}
	verrs := validator.ExtractValidationErrors(err)
	require.NotNil(t, verrs, "unexpected error: %v", err)
	return verrs
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("explodes rule specs", func(t *testing.T) {
		t.Parallel()
		v, err := validator.New(nil, map[string]any{
			"age":  "required|integer|min:18",
			"name": []string{"required", "string"},
		})
		require.NoError(t, err)
		assert.Equal(t, validator.RuleSet{
			"age":  {"required", "integer", "min:18"},
			"name": {"required", "string"},
		}, v.Rules())
	})

	t.Run("sorted order by default", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(nil, map[string]any{"b": "required", "a": "required", "c": "required"})
		assert.Equal(t, []string{"a", "b", "c"}, v.Attributes())
	})

	t.Run("declared order wins", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(nil,
			map[string]any{"b": "required", "a": "required", "c": "required"},
			validator.WithAttributeOrder([]string{"c", "missing", "a"}),
		)
		assert.Equal(t, []string{"c", "a", "b"}, v.Attributes())
	})

	t.Run("unsupported spec", func(t *testing.T) {
		t.Parallel()
		_, err := validator.New(nil, map[string]any{"age": 18})
		assert.ErrorIs(t, err, validator.ErrUnsupportedRuleSpec)
	})

	t.Run("rules snapshot is a copy", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(nil, map[string]any{"age": "required"})
		rules := v.Rules()
		rules["age"][0] = "changed"
		assert.Equal(t, []string{"required"}, v.Rules()["age"])
	})
}

func TestHasRule(t *testing.T) {
	t.Parallel()

	v := validator.MustNew(nil, map[string]any{
		"name":  "required|NoJsValidation",
		"email": "required|email|bad rule:",
	})
	assert.True(t, v.HasRule("name", "no_js_validation"))
	assert.True(t, v.HasRule("name", "NoJsValidation"))
	assert.True(t, v.HasRule("email", "min", "email"))
	assert.False(t, v.HasRule("email", "NoJsValidation"))
	assert.False(t, v.HasRule("unknown", "required"))
}

func TestSometimes(t *testing.T) {
	t.Parallel()

	t.Run("merges rules when condition holds", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(nil, map[string]any{"email": "required|email"})
		require.NoError(t, v.Sometimes([]string{"email", "nick"}, "email|unique:users", validator.Always))
		assert.Equal(t, []string{"required", "email", "unique:users"}, v.Rules()["email"])
		assert.Equal(t, []string{"email", "unique:users"}, v.Rules()["nick"])
		assert.Equal(t, []string{"email", "nick"}, v.Attributes())
	})

	t.Run("skips when condition fails", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(url.Values{"type": {"person"}}, map[string]any{"email": "required"})
		err := v.Sometimes([]string{"company"}, "required", func(data url.Values) bool {
			return data.Get("type") == "company"
		})
		require.NoError(t, err)
		assert.NotContains(t, v.Rules(), "company")
	})

	t.Run("rejects unsupported spec", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(nil, map[string]any{})
		assert.ErrorIs(t, v.Sometimes([]string{"a"}, 1, validator.Always), validator.ErrUnsupportedRuleSpec)
	})
}

func TestValidate_DefaultMessages(t *testing.T) {
	t.Parallel()

	rules := map[string]any{"age": "required|integer|min:18"}

	errs := validate(t, url.Values{}, rules)
	assert.Equal(t, []string{"The age field is required."}, errs.Get("age"))

	errs = validate(t, url.Values{"age": {"abc"}}, rules)
	assert.Equal(t, []string{"The age must be an integer.", "The age must be at least 18."}, errs.Get("age"))

	errs = validate(t, url.Values{"age": {"16"}}, rules)
	require.Len(t, errs, 1)
	assert.Equal(t, "The age must be at least 18.", errs[0].Message)
	assert.Equal(t, "validation.min.numeric", errs[0].TranslationKey)
	assert.Equal(t, "18", errs[0].TranslationValues["min"])

	assert.Nil(t, validate(t, url.Values{"age": {"18"}}, rules))
}

func TestValidate_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rules string
		data  url.Values
		fails bool
	}{
		{"string min passes", "min:3", url.Values{"f": {"abc"}}, false},
		{"string min counts runes", "min:3", url.Values{"f": {"äö"}}, true},
		{"max string", "max:3", url.Values{"f": {"abcd"}}, true},
		{"between numeric", "numeric|between:1,10", url.Values{"f": {"10"}}, false},
		{"size array", "array|size:2", url.Values{"f[]": {"a", "b"}}, false},
		{"empty optional skips", "email", url.Values{"f": {""}}, false},
		{"email", "email", url.Values{"f": {"john@example.com"}}, false},
		{"bad email", "email", url.Values{"f": {"john@localhost"}}, true},
		{"alpha num", "alpha_num", url.Values{"f": {"abc123"}}, false},
		{"alpha dash fails", "alpha_dash", url.Values{"f": {"a b"}}, true},
		{"in", "in:red,green", url.Values{"f": {"blue"}}, true},
		{"not in", "not_in:red,green", url.Values{"f": {"blue"}}, false},
		{"boolean", "boolean", url.Values{"f": {"yes"}}, true},
		{"accepted", "accepted", url.Values{"f": {"on"}}, false},
		{"accepted missing", "accepted", url.Values{}, true},
		{"url", "url", url.Values{"f": {"https://example.com/a"}}, false},
		{"url without host", "url", url.Values{"f": {"example.com"}}, true},
		{"ipv4", "ipv4", url.Values{"f": {"10.0.0.1"}}, false},
		{"ipv6 rejects v4", "ipv6", url.Values{"f": {"10.0.0.1"}}, true},
		{"uuid", "uuid", url.Values{"f": {"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}}, false},
		{"json", "json", url.Values{"f": {`{"a":1}`}}, false},
		{"timezone", "timezone", url.Values{"f": {"Europe/Berlin"}}, false},
		{"bad timezone", "timezone", url.Values{"f": {"Mars/Olympus"}}, true},
		{"regex", "regex:^[a-z]+$", url.Values{"f": {"abc"}}, false},
		{"not regex", "not_regex:^[a-z]+$", url.Values{"f": {"abc"}}, true},
		{"digits", "digits:4", url.Values{"f": {"1234"}}, false},
		{"digits between", "digits_between:2,3", url.Values{"f": {"1234"}}, true},
		{"decimal", "decimal:2", url.Values{"f": {"1.25"}}, false},
		{"decimal wrong places", "decimal:2", url.Values{"f": {"1.2"}}, true},
		{"starts with", "starts_with:foo,bar", url.Values{"f": {"barbaz"}}, false},
		{"ends with", "ends_with:foo", url.Values{"f": {"barbaz"}}, true},
		{"lowercase", "lowercase", url.Values{"f": {"Abc"}}, true},
		{"uppercase", "uppercase", url.Values{"f": {"ABC"}}, false},
		{"date", "date", url.Values{"f": {"2024-02-29"}}, false},
		{"bad date", "date", url.Values{"f": {"2023-02-29"}}, true},
		{"date format php", "date_format:Y-m-d", url.Values{"f": {"2024-01-31"}}, false},
		{"date format go", "date_format:02/01/2006", url.Values{"f": {"2024-01-31"}}, true},
		{"after literal", "after:2020-01-01", url.Values{"f": {"2021-01-01"}}, false},
		{"before today", "before:today", url.Values{"f": {"2000-01-01"}}, false},
		{"gt field", "integer|gt:min_age", url.Values{"f": {"5"}, "min_age": {"7"}}, true},
		{"lte literal", "integer|lte:5", url.Values{"f": {"5"}}, false},
		{"unknown rule passes", "no_such_rule", url.Values{"f": {"x"}}, false},
		{"nested attribute by brackets", "required", url.Values{"f": {"x"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := validate(t, tt.data, map[string]any{"f": tt.rules})
			assert.Equal(t, tt.fails, errs.Has("f"), "errors: %v", errs)
		})
	}
}

func TestValidate_FieldReferences(t *testing.T) {
	t.Parallel()

	rules := map[string]any{
		"password":      "required|confirmed",
		"email":         "required_with:newsletter",
		"company":       "required_if:type,business",
		"phone":         "required_without_all:email,address",
		"backup_email":  "different:email",
		"email_confirm": "same:email",
	}

	errs := validate(t, url.Values{
		"password":              {"secret"},
		"password_confirmation": {"other"},
		"newsletter":            {"1"},
		"type":                  {"business"},
		"backup_email":          {"a@b.io"},
		"email_confirm":         {"x@b.io"},
	}, rules)

	assert.Equal(t, []string{"The password confirmation does not match."}, errs.Get("password"))
	assert.Equal(t, []string{"The email field is required when newsletter is present."}, errs.Get("email"))
	assert.Equal(t, []string{"The company field is required when type is business."}, errs.Get("company"))
	assert.Equal(t, []string{"The phone field is required when none of email / address are present."}, errs.Get("phone"))
	assert.False(t, errs.Has("backup_email"))
	assert.Equal(t, []string{"The email confirm and email must match."}, errs.Get("email_confirm"))
}

func TestValidate_FlowRules(t *testing.T) {
	t.Parallel()

	t.Run("bail stops at first failure", func(t *testing.T) {
		t.Parallel()
		errs := validate(t, url.Values{"code": {"ab"}}, map[string]any{"code": "bail|integer|min:5"})
		assert.Len(t, errs.Get("code"), 1)
	})

	t.Run("sometimes skips missing attribute", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validate(t, url.Values{}, map[string]any{"nick": "sometimes|required|min:3"}))
		errs := validate(t, url.Values{"nick": {""}}, map[string]any{"nick": "sometimes|required|min:3"})
		assert.True(t, errs.Has("nick"))
	})

	t.Run("nullable skips empty value", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, validate(t, url.Values{"bio": {""}}, map[string]any{"bio": "nullable|min:10"}))
	})

	t.Run("wildcard attributes", func(t *testing.T) {
		t.Parallel()
		errs := validate(t, url.Values{"tags[]": {"go", "x", "go"}}, map[string]any{"tags.*": "min:2|distinct"})
		assert.Equal(t, []string{"tags.0", "tags.1", "tags.2"}, errs.Fields())
	})

	t.Run("nested attribute as bracket key", func(t *testing.T) {
		t.Parallel()
		errs := validate(t, url.Values{"user[name]": {""}}, map[string]any{"user.name": "required"})
		assert.Equal(t, []string{"The user.name field is required."}, errs.Get("user.name"))
	})
}

func TestValidate_MalformedRule(t *testing.T) {
	t.Parallel()

	v := validator.MustNew(url.Values{"age": {"1"}}, map[string]any{"age": "required|min:"})
	err := v.Validate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrInvalidRule)
	assert.False(t, validator.IsValidationError(err))
}

func TestValidate_MissingParameters(t *testing.T) {
	t.Parallel()

	v := validator.MustNew(url.Values{"a": {"x"}}, map[string]any{"a": "same"})
	assert.ErrorIs(t, v.Validate(context.Background()), validator.ErrInvalidParameters)
}

func TestValidate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := validator.MustNew(nil, map[string]any{"a": "required"})
	assert.ErrorIs(t, v.Validate(ctx), context.Canceled)
}

func TestValidate_Extensions(t *testing.T) {
	t.Parallel()

	even := func(_ context.Context, _, value string, _ []string, _ url.Values) (bool, error) {
		return len(value)%2 == 0, nil
	}
	opts := []validator.Option{validator.WithExtension("EvenLength", even, "The %{attribute} must have an even length.")}

	v := validator.MustNew(nil, map[string]any{"code": "even_length"}, opts...)
	assert.True(t, v.IsExtension("even_length"))
	assert.True(t, v.IsExtension("EvenLength"))
	assert.False(t, v.IsExtension("required"))

	errs := validate(t, url.Values{"code": {"abc"}}, map[string]any{"code": "even_length"}, opts...)
	assert.Equal(t, []string{"The code must have an even length."}, errs.Get("code"))

	failing := validator.WithExtension("boom", func(context.Context, string, string, []string, url.Values) (bool, error) {
		return false, errors.New("backend down")
	}, "")
	v = validator.MustNew(url.Values{"x": {"1"}}, map[string]any{"x": "boom"}, failing)
	assert.EqualError(t, v.Validate(context.Background()), `attribute "x" rule "boom": backend down`)
}

type countingVerifier struct {
	counts map[string]int64
	calls  []string
}

func (c *countingVerifier) Count(_ context.Context, table, column, value, excludeID, idColumn string) (int64, error) {
	c.calls = append(c.calls, table+"."+column+"="+value+" except "+idColumn+"="+excludeID)
	return c.counts[value], nil
}

func TestValidate_Presence(t *testing.T) {
	t.Parallel()

	t.Run("unique and exists", func(t *testing.T) {
		t.Parallel()
		pv := &countingVerifier{counts: map[string]int64{"taken@example.com": 1, "42": 1}}
		errs := validate(t,
			url.Values{"email": {"taken@example.com"}, "team_id": {"42"}, "owner_id": {"7"}},
			map[string]any{
				"email":    "unique:users,email,5",
				"team_id":  "exists:teams,id",
				"owner_id": "exists:users,id",
			},
			validator.WithPresenceVerifier(pv),
		)
		assert.Equal(t, []string{"The email has already been taken."}, errs.Get("email"))
		assert.False(t, errs.Has("team_id"))
		assert.Equal(t, []string{"The selected owner id is invalid."}, errs.Get("owner_id"))
		assert.Contains(t, pv.calls, "users.email=taken@example.com except id=5")
	})

	t.Run("requires verifier", func(t *testing.T) {
		t.Parallel()
		v := validator.MustNew(url.Values{"email": {"a@b.io"}}, map[string]any{"email": "unique:users"})
		assert.ErrorIs(t, v.Validate(context.Background()), validator.ErrNoPresenceVerifier)
	})

	t.Run("verifier failure", func(t *testing.T) {
		t.Parallel()
		pv := validator.PresenceVerifierFunc(func(context.Context, string, string, string, string, string) (int64, error) {
			return 0, errors.New("connection refused")
		})
		v := validator.MustNew(url.Values{"email": {"a@b.io"}}, map[string]any{"email": "unique:users"}, validator.WithPresenceVerifier(pv))
		assert.ErrorIs(t, v.Validate(context.Background()), validator.ErrPresenceCheckFailed)
	})
}

func TestOnlyAndFilter(t *testing.T) {
	t.Parallel()

	base := validator.MustNew(url.Values{"email": {"bad"}, "name": {""}}, map[string]any{
		"email": "required|email|unique:users",
		"name":  "required",
	})

	only := base.Only("email")
	assert.Equal(t, []string{"email"}, only.Attributes())
	assert.Len(t, base.Attributes(), 2, "original untouched")

	filtered := only.Filter(func(_, rule string) bool { return rule != "unique" })
	assert.Equal(t, []string{"required", "email"}, filtered.Rules()["email"])

	err := filtered.Validate(context.Background())
	errs := validator.ExtractValidationErrors(err)
	require.NotNil(t, errs)
	assert.Equal(t, []string{"email"}, errs.Fields())

	other := filtered.WithData(url.Values{"email": {"ok@example.com"}}, nil)
	assert.NoError(t, other.Validate(context.Background()))
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	errs := validate(t, url.Values{}, map[string]any{"email": "required"}, validator.WithLogger(log))
	require.True(t, errs.Failed("email", "required"))
	assert.Contains(t, buf.String(), "rule failed")
}

func TestKnows(t *testing.T) {
	t.Parallel()

	v := validator.MustNew(url.Values{}, map[string]any{})
	assert.True(t, v.Knows("required"))
	assert.True(t, v.Knows("Unique"))
	assert.False(t, v.Knows("no_such_rule"))
	assert.False(t, v.Knows("bail"))
	assert.True(t, validator.IsMarker("bail"))
	assert.False(t, validator.IsMarker("required"))
}
