package validator

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"mime/multipart"
	"net"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
	"github.com/dmitrymomot/jsvalidation/pkg/logger"
)

// Condition decides whether a Sometimes rule group applies to the data.
type Condition func(data url.Values) bool

// Always is a Condition that always applies.
func Always(url.Values) bool { return true }

// Validator checks form data against Laravel-style rule strings such as
// "required|integer|min:18".
type Validator struct {
	data       url.Values
	files      map[string][]*multipart.FileHeader
	rules      RuleSet
	order      []string
	messages   map[string]string
	attributes map[string]string
	translator *i18n.Translator
	locale     string
	verifier   PresenceVerifier
	extensions map[string]extension
	resolver   *net.Resolver
	log        *slog.Logger
}

// New builds a validator for data. Each rules value is a rule specification
// accepted by ExplodeRules. Rule strings are parsed lazily, so a malformed
// rule surfaces from Validate or ParseRule rather than here.
func New(data url.Values, rules map[string]any, opts ...Option) (*Validator, error) {
	v := &Validator{
		data:       data,
		files:      make(map[string][]*multipart.FileHeader),
		rules:      make(RuleSet, len(rules)),
		messages:   make(map[string]string),
		attributes: make(map[string]string),
		translator: DefaultTranslator(),
		locale:     i18n.DefaultLanguage,
		extensions: make(map[string]extension),
		resolver:   net.DefaultResolver,
		log:        logger.Discard(),
	}
	if v.data == nil {
		v.data = url.Values{}
	}

	for attr, spec := range rules {
		exploded, err := ExplodeRules(spec)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr, err)
		}
		v.rules[attr] = exploded
	}

	for _, opt := range opts {
		opt(v)
	}
	v.order = v.normalizeOrder(v.order)
	return v, nil
}

// MustNew is like New but panics on error.
func MustNew(data url.Values, rules map[string]any, opts ...Option) *Validator {
	v, err := New(data, rules, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) normalizeOrder(preferred []string) []string {
	seen := make(map[string]bool, len(v.rules))
	order := make([]string, 0, len(v.rules))
	for _, attr := range preferred {
		if _, ok := v.rules[attr]; ok && !seen[attr] {
			order = append(order, attr)
			seen[attr] = true
		}
	}
	rest := make([]string, 0, len(v.rules)-len(order))
	for attr := range v.rules {
		if !seen[attr] {
			rest = append(rest, attr)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func (v *Validator) clone() *Validator {
	c := *v
	c.rules = v.rules.Clone()
	c.order = slices.Clone(v.order)
	return &c
}

// Rules returns a copy of the rule set.
func (v *Validator) Rules() RuleSet {
	return v.rules.Clone()
}

// Attributes returns the attributes in validation order.
func (v *Validator) Attributes() []string {
	return slices.Clone(v.order)
}

// Declares reports whether attribute has rules.
func (v *Validator) Declares(attribute string) bool {
	_, ok := v.rules[attribute]
	return ok
}

// Data returns the data under validation.
func (v *Validator) Data() url.Values {
	return v.data
}

// ParseRule parses a raw rule string. See the package-level ParseRule.
func (v *Validator) ParseRule(raw string) (string, []string, error) {
	return ParseRule(raw)
}

// ExplodeRules normalises a rule specification. See the package-level ExplodeRules.
func (v *Validator) ExplodeRules(spec any) ([]string, error) {
	return ExplodeRules(spec)
}

// IsImplicit reports whether rule runs on missing values. Extensions never do.
func (v *Validator) IsImplicit(rule string) bool {
	return IsImplicit(rule)
}

// IsExtension reports whether rule was registered with WithExtension.
func (v *Validator) IsExtension(rule string) bool {
	_, ok := v.extensions[NormalizeRuleName(rule)]
	return ok
}

// Knows reports whether rule has a built-in check or an extension. Flow
// markers such as bail are not checks.
func (v *Validator) Knows(rule string) bool {
	rule = NormalizeRuleName(rule)
	if _, ok := checks[rule]; ok {
		return true
	}
	return v.IsExtension(rule)
}

// HasRule reports whether attribute carries any of the given rules. Names
// are compared after normalisation, so "NoJsValidation" matches
// "no_js_validation". Unparsable raw rules never match.
func (v *Validator) HasRule(attribute string, rules ...string) bool {
	raws, ok := v.rules[attribute]
	if !ok {
		return false
	}
	wanted := make(map[string]bool, len(rules))
	for _, r := range rules {
		wanted[NormalizeRuleName(r)] = true
	}
	for _, raw := range raws {
		name, _, err := ParseRule(raw)
		if err == nil && wanted[name] {
			return true
		}
	}
	return false
}

// Sometimes adds rules to attributes when cond holds for the data. The
// condition is evaluated immediately. Rules already present are not added
// twice.
func (v *Validator) Sometimes(attributes []string, rules any, cond Condition) error {
	exploded, err := ExplodeRules(rules)
	if err != nil {
		return err
	}
	if cond != nil && !cond(v.data) {
		return nil
	}
	for _, attr := range attributes {
		current, known := v.rules[attr]
		for _, raw := range exploded {
			if !slices.Contains(current, raw) {
				current = append(current, raw)
			}
		}
		v.rules[attr] = current
		if !known {
			v.order = append(v.order, attr)
		}
	}
	return nil
}

// Only returns a copy restricted to the given attributes.
func (v *Validator) Only(attributes ...string) *Validator {
	c := v.clone()
	keep := make(map[string]bool, len(attributes))
	for _, a := range attributes {
		keep[a] = true
	}
	maps.DeleteFunc(c.rules, func(attr string, _ []string) bool { return !keep[attr] })
	c.order = slices.DeleteFunc(c.order, func(attr string) bool { return !keep[attr] })
	return c
}

// Filter returns a copy keeping only the rules for which keep returns true.
// keep receives the attribute and the normalised rule name; raw rules that
// fail to parse are kept so Validate still reports them.
func (v *Validator) Filter(keep func(attribute, rule string) bool) *Validator {
	c := v.clone()
	for attr, raws := range c.rules {
		c.rules[attr] = slices.DeleteFunc(raws, func(raw string) bool {
			name, _, err := ParseRule(raw)
			return err == nil && !keep(attr, name)
		})
	}
	return c
}

// WithData returns a copy validating other data with the same rules.
func (v *Validator) WithData(data url.Values, files map[string][]*multipart.FileHeader) *Validator {
	c := v.clone()
	c.data = data
	if c.data == nil {
		c.data = url.Values{}
	}
	c.files = files
	if c.files == nil {
		c.files = make(map[string][]*multipart.FileHeader)
	}
	return c
}

type parsedRule struct {
	raw    string
	name   string
	params []string
}

func (v *Validator) parseAll(attribute string) ([]parsedRule, error) {
	raws := v.rules[attribute]
	out := make([]parsedRule, 0, len(raws))
	for _, raw := range raws {
		name, params, err := ParseRule(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attribute, err)
		}
		out = append(out, parsedRule{raw: raw, name: name, params: params})
	}
	return out, nil
}

func hasParsed(rules []parsedRule, names ...string) bool {
	for _, r := range rules {
		if slices.Contains(names, r.name) {
			return true
		}
	}
	return false
}

// Rules that only steer the validation flow.
var markerRules = map[string]bool{
	"bail":             true,
	"nullable":         true,
	"sometimes":        true,
	"no_js_validation": true,
}

// Validate runs every rule and returns ValidationErrors when any fails.
// Other errors (malformed rules, presence verifier failures, cancellation)
// are returned as is.
func (v *Validator) Validate(ctx context.Context) error {
	var errs ValidationErrors
	for _, attr := range v.order {
		if err := ctx.Err(); err != nil {
			return err
		}
		rules, err := v.parseAll(attr)
		if err != nil {
			return err
		}
		for _, f := range v.fields(attr) {
			fieldErrs, err := v.validateField(ctx, attr, f, rules)
			if err != nil {
				return err
			}
			errs = append(errs, fieldErrs...)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func (v *Validator) validateField(ctx context.Context, attr string, f field, rules []parsedRule) (ValidationErrors, error) {
	if hasParsed(rules, "sometimes") && !f.present {
		return nil, nil
	}
	bail := hasParsed(rules, "bail")
	kind := v.sizeKind(rules, f)

	var errs ValidationErrors
	for _, r := range rules {
		if markerRules[r.name] {
			continue
		}
		if f.empty() && !IsImplicit(r.name) {
			continue
		}

		ok, err := v.check(ctx, checkInput{attribute: attr, field: f, params: r.params, kind: kind, rules: rules}, r.name)
		if err != nil {
			return nil, fmt.Errorf("attribute %q rule %q: %w", attr, r.name, err)
		}
		if ok {
			continue
		}

		variant := ""
		if sizeRules[r.name] {
			variant = kind
		}
		replacements := v.replacements(attr, r.name, r.params)
		values := make(map[string]any, len(replacements))
		for k, val := range replacements {
			values[k] = val
		}
		key := "validation." + r.name
		if variant != "" {
			key += "." + variant
		}
		errs.Add(ValidationError{
			Field:             f.name,
			Rule:              r.name,
			Message:           v.Message(attr, r.name, variant, r.params),
			TranslationKey:    key,
			TranslationValues: values,
		})
		v.log.DebugContext(ctx, "rule failed", logger.Attribute(f.name), logger.Rule(r.name))
		if bail {
			break
		}
	}
	return errs, nil
}

// Size rules compare numbers, lengths, counts or kilobytes depending on the
// other rules of the attribute.
var sizeRules = map[string]bool{
	"between": true,
	"gt":      true,
	"gte":     true,
	"lt":      true,
	"lte":     true,
	"max":     true,
	"min":     true,
	"size":    true,
}

func (v *Validator) sizeKind(rules []parsedRule, f field) string {
	switch {
	case hasParsed(rules, "numeric", "integer", "decimal"):
		return "numeric"
	case hasParsed(rules, "file", "image", "mimes", "mimetypes") || len(f.files) > 0:
		return "file"
	case hasParsed(rules, "array") || f.multi:
		return "array"
	default:
		return "string"
	}
}

// field is one concrete input value under validation. Wildcard attributes
// ("tags.*") expand into one field per element ("tags.0", "tags.1").
type field struct {
	name    string
	values  []string
	files   []*multipart.FileHeader
	present bool
	multi   bool
}

func (f field) value() string {
	if len(f.values) == 0 {
		return ""
	}
	return f.values[0]
}

func (f field) empty() bool {
	if len(f.files) > 0 {
		return false
	}
	for _, val := range f.values {
		if strings.TrimSpace(val) != "" {
			return false
		}
	}
	return true
}

// inputKeys lists the form keys an attribute may arrive under:
// "user.name" as is, as "user[name]", and "tags" as "tags[]".
func inputKeys(attribute string) []string {
	keys := []string{attribute}
	if strings.Contains(attribute, ".") {
		parts := strings.Split(attribute, ".")
		keys = append(keys, parts[0]+"["+strings.Join(parts[1:], "][")+"]")
	}
	return append(keys, attribute+"[]")
}

func (v *Validator) lookup(attribute string) field {
	f := field{name: attribute}
	for _, key := range inputKeys(attribute) {
		if vals, ok := v.data[key]; ok {
			f.values = vals
			f.present = true
			f.multi = strings.HasSuffix(key, "[]") || len(vals) > 1
			break
		}
	}
	for _, key := range inputKeys(attribute) {
		if fh, ok := v.files[key]; ok && len(fh) > 0 {
			f.files = fh
			f.present = true
			break
		}
	}
	return f
}

func (v *Validator) hasAttribute(attribute string) bool {
	if attribute == "" {
		return false
	}
	if _, ok := v.rules[attribute]; ok {
		return true
	}
	return v.lookup(attribute).present
}

func (v *Validator) fields(attribute string) []field {
	parent, isWildcard := strings.CutSuffix(attribute, ".*")
	if !isWildcard {
		return []field{v.lookup(attribute)}
	}
	whole := v.lookup(parent)
	if len(whole.values) == 0 {
		return nil
	}
	out := make([]field, len(whole.values))
	for i, val := range whole.values {
		out[i] = field{
			name:    parent + "." + strconv.Itoa(i),
			values:  []string{val},
			present: true,
		}
	}
	return out
}
