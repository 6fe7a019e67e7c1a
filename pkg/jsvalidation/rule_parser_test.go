package jsvalidation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

func parser(t *testing.T, rules map[string]any, opts ...jsvalidation.HandlerOption) *jsvalidation.RuleParser {
	t.Helper()
	v, err := validator.New(nil, rules)
	require.NoError(t, err)
	h, err := jsvalidation.NewValidatorHandler(v, opts...)
	require.NoError(t, err)
	return h.RuleParser()
}

func TestClientAttribute(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name", jsvalidation.ClientAttribute("name"))
	assert.Equal(t, "user[name]", jsvalidation.ClientAttribute("user.name"))
	assert.Equal(t, "user[address][city]", jsvalidation.ClientAttribute("user.address.city"))
	assert.Equal(t, "tags[*]", jsvalidation.ClientAttribute("tags.*"))
}

func TestAttributeFromClient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name", jsvalidation.AttributeFromClient("name"))
	assert.Equal(t, "user.address.city", jsvalidation.AttributeFromClient("user[address][city]"))
	assert.Equal(t, "tags.*", jsvalidation.AttributeFromClient("tags[]"))
	assert.Equal(t, "tags.*", jsvalidation.AttributeFromClient("tags[*]"))
}

func TestRuleParser_Rule(t *testing.T) {
	t.Parallel()

	p := parser(t, map[string]any{
		"start":    "date",
		"end":      "date|after:start",
		"password": "confirmed",
	})

	tests := []struct {
		name   string
		attr   string
		rule   string
		params []string
		want   jsvalidation.Conversion
	}{
		{
			name: "pass through",
			attr: "age", rule: "between", params: []string{"1", "9"},
			want: jsvalidation.Conversion{Attribute: "age", Rule: jsvalidation.JavascriptRule, Params: []any{"1", "9"}},
		},
		{
			name: "nested attribute",
			attr: "user.email", rule: "email",
			want: jsvalidation.Conversion{Attribute: "user[email]", Rule: jsvalidation.JavascriptRule, Params: []any{}},
		},
		{
			name: "confirmed moves to the confirmation field",
			attr: "password", rule: "confirmed",
			want: jsvalidation.Conversion{Attribute: "password_confirmation", Rule: jsvalidation.JavascriptRule, Params: []any{"password"}},
		},
		{
			name: "declared field reference",
			attr: "end", rule: "after", params: []string{"start"},
			want: jsvalidation.Conversion{Attribute: "end", Rule: jsvalidation.JavascriptRule, Params: []any{"start"}},
		},
		{
			name: "literal date stays",
			attr: "end", rule: "after", params: []string{"2024-01-01"},
			want: jsvalidation.Conversion{Attribute: "end", Rule: jsvalidation.JavascriptRule, Params: []any{"2024-01-01"}},
		},
		{
			name: "required_with fields",
			attr: "phone", rule: "required_with", params: []string{"user.email", "fax"},
			want: jsvalidation.Conversion{Attribute: "phone", Rule: jsvalidation.JavascriptRule, Params: []any{"user[email]", "fax"}},
		},
		{
			name: "required_if first field",
			attr: "vat", rule: "required_if", params: []string{"billing.type", "company"},
			want: jsvalidation.Conversion{Attribute: "vat", Rule: jsvalidation.JavascriptRule, Params: []any{"billing[type]", "company"}},
		},
		{
			name: "regex with inline flags",
			attr: "code", rule: "regex", params: []string{"(?i)^[a-z]+$"},
			want: jsvalidation.Conversion{Attribute: "code", Rule: jsvalidation.JavascriptRule, Params: []any{"^[a-z]+$", "i"}},
		},
		{
			name: "delimited regex keeps client flags",
			attr: "code", rule: "not_regex", params: []string{"/^a|b$/imU"},
			want: jsvalidation.Conversion{Attribute: "code", Rule: jsvalidation.JavascriptRule, Params: []any{"^a|b$", "im"}},
		},
		{
			name: "remote rule",
			attr: "user.email", rule: "unique", params: []string{"users"},
			want: jsvalidation.Conversion{Attribute: "user[email]", Rule: jsvalidation.RemoteRule, Params: []any{"user[email]", "", false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := p.Rule(tt.attr, tt.rule, tt.params, false)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleParser_NotConvertible(t *testing.T) {
	t.Parallel()

	p := parser(t, map[string]any{})
	for _, rule := range []string{"no_such_rule", "bail", "sometimes", "no_js_validation"} {
		_, ok := p.Rule("a", rule, nil, false)
		assert.False(t, ok, rule)
	}
}

func TestRuleParser_ForceRemote(t *testing.T) {
	t.Parallel()

	p := parser(t, map[string]any{}, jsvalidation.WithRuleParserOptions(jsvalidation.WithRemoteToken("tok")))

	got, ok := p.Rule("name", "min", []string{"3"}, true)
	require.True(t, ok)
	assert.Equal(t, jsvalidation.Conversion{
		Attribute: "name",
		Rule:      jsvalidation.RemoteRule,
		Params:    []any{"name", "tok", true},
	}, got)

	got, ok = p.Rule("name", "accepted_if", []string{"terms", "yes"}, true)
	require.True(t, ok, "host checked rules need no recipe")
	assert.Equal(t, jsvalidation.RemoteRule, got.Rule)

	for _, rule := range []string{"no_such_rule", "bail", "nullable", "sometimes"} {
		_, ok := p.Rule("name", rule, nil, true)
		assert.False(t, ok, rule)
	}
}

func TestRuleParser_CustomRecipe(t *testing.T) {
	t.Parallel()

	slug := func(_ *jsvalidation.DelegatedValidator, attribute, _ string, _ []string) (jsvalidation.Conversion, bool) {
		return jsvalidation.Conversion{
			Attribute: jsvalidation.ClientAttribute(attribute),
			Rule:      jsvalidation.JavascriptRule,
			Params:    []any{"^[a-z0-9-]+$", ""},
		}, true
	}
	p := parser(t, map[string]any{}, jsvalidation.WithRuleParserOptions(jsvalidation.WithRecipe("Slug", slug)))

	got, ok := p.Rule("path", "slug", nil, false)
	require.True(t, ok)
	assert.Equal(t, []any{"^[a-z0-9-]+$", ""}, got.Params)

	p.RegisterRecipe("email", func(*jsvalidation.DelegatedValidator, string, string, []string) (jsvalidation.Conversion, bool) {
		return jsvalidation.Conversion{}, false
	})
	_, ok = p.Rule("mail", "email", nil, false)
	assert.False(t, ok, "overridden recipe can opt out")
}
