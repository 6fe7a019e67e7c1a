package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// RuleSet maps an attribute to its ordered raw rule strings.
type RuleSet map[string][]string

// Clone returns a deep copy of the rule set.
func (rs RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(rs))
	for attr, rules := range rs {
		out[attr] = slices.Clone(rules)
	}
	return out
}

var ruleNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Rules whose single parameter may contain commas or pipes.
var patternRules = map[string]bool{
	"regex":     true,
	"not_regex": true,
}

// Rules that run even when the attribute is missing or empty.
var implicitRules = map[string]bool{
	"accepted":             true,
	"accepted_if":          true,
	"declined":             true,
	"filled":               true,
	"present":              true,
	"required":             true,
	"required_if":          true,
	"required_unless":      true,
	"required_with":        true,
	"required_with_all":    true,
	"required_without":     true,
	"required_without_all": true,
}

// ParseRule splits a raw rule such as "between:1,10" into its snake_case
// name and parameters. StudlyCase names ("AlphaNum") are normalised.
func ParseRule(raw string) (string, []string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil, ErrEmptyRule
	}

	name, rest, hasParams := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if !ruleNameRegex.MatchString(name) {
		return "", nil, fmt.Errorf("%w: bad rule name in %q", ErrInvalidRule, raw)
	}
	name = NormalizeRuleName(name)

	if !hasParams {
		return name, nil, nil
	}
	if rest == "" {
		return "", nil, fmt.Errorf("%w: empty parameter list in %q", ErrInvalidRule, raw)
	}
	if patternRules[name] {
		return name, []string{rest}, nil
	}

	params := strings.Split(rest, ",")
	for i, p := range params {
		params[i] = strings.TrimSpace(p)
	}
	return name, params, nil
}

// NormalizeRuleName converts StudlyCase or camelCase rule names to snake_case.
func NormalizeRuleName(name string) string {
	if strings.IndexFunc(name, unicode.IsUpper) < 0 {
		return name
	}
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
					b.WriteByte('_')
				}
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExplodeRules normalises a rule specification into raw rule strings.
// A string is split on "|", a []string is taken element by element and a
// []any may mix strings with nested slices.
func ExplodeRules(spec any) ([]string, error) {
	switch s := spec.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for part := range strings.SplitSeq(s, "|") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []string:
		out := make([]string, 0, len(s))
		for _, part := range s {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []any:
		var out []string
		for _, item := range s {
			switch it := item.(type) {
			case string:
				if it = strings.TrimSpace(it); it != "" {
					out = append(out, it)
				}
			case []string, []any:
				nested, err := ExplodeRules(it)
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			default:
				return nil, fmt.Errorf("%w: %T", ErrUnsupportedRuleSpec, item)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedRuleSpec, spec)
	}
}

// IsMarker reports whether rule only steers the validation flow, like bail
// or nullable, and never fails on its own.
func IsMarker(rule string) bool {
	return markerRules[NormalizeRuleName(rule)]
}

// IsImplicit reports whether the rule runs on missing or empty values.
func IsImplicit(rule string) bool {
	return implicitRules[NormalizeRuleName(rule)]
}
