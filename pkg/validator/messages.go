package validator

import (
	"context"
	"embed"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
)

//go:embed lang/*.yaml
var langFS embed.FS

var defaultTranslator = sync.OnceValues(func() (*i18n.Translator, error) {
	adapter := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), langFS, "lang")
	return i18n.NewTranslator(context.Background(), adapter, i18n.WithDefaultLanguage(i18n.DefaultLanguage))
})

// DefaultTranslator returns the translator backed by the embedded English
// catalogue. Callers may Merge their own languages into a translator created
// from DefaultMessages instead of mutating this shared one.
func DefaultTranslator() *i18n.Translator {
	t, err := defaultTranslator()
	if err != nil {
		panic("validator: embedded messages are broken: " + err.Error())
	}
	return t
}

// DefaultMessages returns the embedded message files for use with i18n adapters.
func DefaultMessages() embed.FS {
	return langFS
}

// Message resolves the failure message for attribute and rule the same way
// Validate does. Variant selects a size flavour ("numeric", "file", "array",
// "string") for rules that have one; pass "" otherwise.
//
// Lookup order: custom "attribute.rule.variant", "attribute.rule",
// "rule.variant", "rule", then the translator, then the extension message.
// The key "validation.<rule>" is returned when nothing matches.
func (v *Validator) Message(attribute, rule, variant string, params []string) string {
	rule = NormalizeRuleName(rule)
	tmpl, ok := v.messageTemplate(attribute, rule, variant)
	if !ok {
		return "validation." + rule
	}
	return i18n.Format(tmpl, v.replacements(attribute, rule, params))
}

func (v *Validator) messageTemplate(attribute, rule, variant string) (string, bool) {
	var keys []string
	if variant != "" {
		keys = append(keys, attribute+"."+rule+"."+variant)
	}
	keys = append(keys, attribute+"."+rule)
	if variant != "" {
		keys = append(keys, rule+"."+variant)
	}
	keys = append(keys, rule)
	for _, k := range keys {
		if msg, ok := v.messages[k]; ok {
			return msg, true
		}
	}

	if variant != "" {
		if msg, ok := v.translator.Lookup(v.locale, "validation."+rule+"."+variant); ok {
			return msg, true
		}
	}
	if msg, ok := v.translator.Lookup(v.locale, "validation."+rule); ok {
		return msg, true
	}

	if ext, ok := v.extensions[rule]; ok && ext.message != "" {
		return ext.message, true
	}
	return "", false
}

// AttributeName returns the display name of attribute: the custom name if
// one is configured, otherwise the attribute with underscores as spaces.
func (v *Validator) AttributeName(attribute string) string {
	if name, ok := v.attributes[attribute]; ok {
		return name
	}
	return strings.ReplaceAll(attribute, "_", " ")
}

func (v *Validator) attributeNames(attributes []string) []string {
	names := make([]string, len(attributes))
	for i, a := range attributes {
		names[i] = v.AttributeName(a)
	}
	return names
}

func (v *Validator) replacements(attribute, rule string, params []string) map[string]string {
	name := v.AttributeName(attribute)
	tag := language.Make(v.locale)
	r := map[string]string{
		"attribute": name,
		"Attribute": upperFirst(name, tag),
		"ATTRIBUTE": cases.Upper(tag).String(name),
	}

	param := func(i int) string {
		if i < len(params) {
			return params[i]
		}
		return ""
	}

	switch rule {
	case "min", "digits_between":
		r["min"] = param(0)
		r["max"] = param(1)
	case "max":
		r["max"] = param(0)
	case "between":
		r["min"] = param(0)
		r["max"] = param(1)
	case "size":
		r["size"] = param(0)
	case "digits":
		r["digits"] = param(0)
	case "decimal":
		r["decimal"] = strings.Join(params, "-")
	case "gt", "gte", "lt", "lte":
		if v.hasAttribute(param(0)) {
			r["value"] = v.data.Get(param(0))
		} else {
			r["value"] = param(0)
		}
	case "same", "different", "confirmed":
		r["other"] = v.AttributeName(param(0))
	case "after", "after_or_equal", "before", "before_or_equal":
		if v.hasAttribute(param(0)) {
			r["date"] = v.AttributeName(param(0))
		} else {
			r["date"] = param(0)
		}
	case "date_format":
		r["format"] = param(0)
	case "required_if", "accepted_if":
		r["other"] = v.AttributeName(param(0))
		r["value"] = param(1)
	case "required_unless":
		r["other"] = v.AttributeName(param(0))
		if len(params) > 1 {
			r["values"] = strings.Join(params[1:], ", ")
		}
	case "required_with", "required_with_all", "required_without", "required_without_all":
		r["values"] = strings.Join(v.attributeNames(params), " / ")
	case "starts_with", "ends_with", "mimes", "mimetypes", "in", "not_in":
		r["values"] = strings.Join(params, ", ")
	default:
		for i, p := range params {
			r["param"+strconv.Itoa(i)] = p
		}
	}
	return r
}

func upperFirst(s string, tag language.Tag) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(tag).String(s[:size]) + s[size:]
}
