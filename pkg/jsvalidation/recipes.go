package jsvalidation

import (
	"regexp"
	"strings"
)

var builtinRecipes = map[string]Recipe{}

func init() {
	for _, rule := range []string{
		"accepted", "alpha", "alpha_dash", "alpha_num", "array", "between",
		"boolean", "date", "decimal", "digits", "digits_between", "distinct",
		"email", "ends_with", "file", "filled", "image", "in", "integer", "ip",
		"ipv4", "ipv6", "json", "lowercase", "max", "mimes", "mimetypes", "min",
		"not_in", "nullable", "numeric", "present", "required", "size",
		"starts_with", "string", "timezone", "uppercase", "url", "uuid",
		"date_format",
	} {
		builtinRecipes[rule] = passThrough
	}

	builtinRecipes["confirmed"] = confirmedRecipe
	for _, rule := range []string{"same", "different", "gt", "gte", "lt", "lte", "after", "before", "after_or_equal", "before_or_equal"} {
		builtinRecipes[rule] = fieldOrLiteral
	}
	for _, rule := range []string{"required_with", "required_with_all", "required_without", "required_without_all"} {
		builtinRecipes[rule] = allFields
	}
	builtinRecipes["required_if"] = firstField
	builtinRecipes["required_unless"] = firstField
	builtinRecipes["regex"] = regexRecipe
	builtinRecipes["not_regex"] = regexRecipe
}

func toAny(params []string) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}

func local(attribute string, params []any) Conversion {
	return Conversion{Attribute: ClientAttribute(attribute), Rule: JavascriptRule, Params: params}
}

func passThrough(_ *DelegatedValidator, attribute, _ string, params []string) (Conversion, bool) {
	return local(attribute, toAny(params)), true
}

// confirmedRecipe validates the confirmation field against the original one.
func confirmedRecipe(_ *DelegatedValidator, attribute, _ string, _ []string) (Conversion, bool) {
	return Conversion{
		Attribute: ClientAttribute(attribute + "_confirmation"),
		Rule:      JavascriptRule,
		Params:    []any{ClientAttribute(attribute)},
	}, true
}

// fieldOrLiteral rewrites the first parameter to a client name when it
// refers to a declared attribute.
func fieldOrLiteral(d *DelegatedValidator, attribute, _ string, params []string) (Conversion, bool) {
	out := toAny(params)
	if len(params) > 0 && d.HasAttribute(params[0]) {
		out[0] = ClientAttribute(params[0])
	}
	return local(attribute, out), true
}

func firstField(_ *DelegatedValidator, attribute, _ string, params []string) (Conversion, bool) {
	out := toAny(params)
	if len(params) > 0 {
		out[0] = ClientAttribute(params[0])
	}
	return local(attribute, out), true
}

func allFields(_ *DelegatedValidator, attribute, _ string, params []string) (Conversion, bool) {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = ClientAttribute(p)
	}
	return local(attribute, out), true
}

var (
	leadingFlags   = regexp.MustCompile(`^\(\?([a-zA-Z]+)\)`)
	delimitedRegex = regexp.MustCompile(`^/(.*)/([a-zA-Z]*)$`)
)

// Flags the browser engine understands.
const clientFlags = "imsu"

// regexRecipe splits a pattern into [pattern, flags]. Both Go inline flags
// ("(?i)^abc$") and delimited patterns ("/^abc$/i") are accepted.
func regexRecipe(_ *DelegatedValidator, attribute, _ string, params []string) (Conversion, bool) {
	if len(params) == 0 {
		return Conversion{}, false
	}
	pattern, flags := splitPattern(params[0])
	return local(attribute, []any{pattern, flags}), true
}

func splitPattern(raw string) (string, string) {
	var pattern, flags string
	switch {
	case delimitedRegex.MatchString(raw):
		m := delimitedRegex.FindStringSubmatch(raw)
		pattern, flags = m[1], m[2]
	case leadingFlags.MatchString(raw):
		m := leadingFlags.FindStringSubmatch(raw)
		pattern, flags = raw[len(m[0]):], m[1]
	default:
		return raw, ""
	}

	var kept strings.Builder
	for _, f := range flags {
		if strings.ContainsRune(clientFlags, f) && !strings.ContainsRune(kept.String(), f) {
			kept.WriteRune(f)
		}
	}
	return pattern, kept.String()
}
