package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ErrLanguageNotSupported indicates that the requested language is not available
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}

// Translator resolves message templates by language and dot-separated key.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
}

// NewTranslator creates a new Translator and loads translations from the adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range translations {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrInvalidTranslations)
		}
		if messages == nil {
			return nil, fmt.Errorf("%w: nil translations for language %q", ErrInvalidTranslations, lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", "languages", t.supportedLanguages())
	return t, nil
}

// DefaultLanguage returns the language used when a requested one is missing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages returns the sorted list of loaded language codes.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

// Merge adds translations on top of the loaded ones. Existing keys are
// overwritten at the top level of each language.
func (t *Translator) Merge(translations map[string]map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.translations == nil {
		t.translations = make(map[string]map[string]any, len(translations))
	}
	for lang, messages := range translations {
		if t.translations[lang] == nil {
			t.translations[lang] = make(map[string]any, len(messages))
		}
		for k, v := range messages {
			t.translations[lang][k] = v
		}
	}
}

// find walks nested maps using a dot-separated key.
func find(m map[string]any, key string) (any, bool) {
	current := m
	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		switch next := val.(type) {
		case map[string]any:
			current = next
		case map[any]any:
			current = make(map[string]any, len(next))
			for k, v := range next {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

// Lookup returns the raw template for key. It tries lang first and then the
// default language. Only string values count as found.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, l := range []string{lang, t.defaultLang} {
		messages, ok := t.translations[l]
		if !ok {
			continue
		}
		val, ok := find(messages, key)
		if !ok {
			continue
		}
		if s, ok := val.(string); ok {
			return s, true
		}
		if t.missingLogMode {
			t.logger.Warn("translation is not a string", "lang", l, "key", key, "type", fmt.Sprintf("%T", val))
		}
	}

	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", lang, "key", key)
	}
	return "", false
}

// Has reports whether a string translation exists for lang and key
// (without default language fallback).
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.translations[lang]
	if !ok {
		return false
	}
	val, ok := find(messages, key)
	if !ok {
		return false
	}
	_, ok = val.(string)
	return ok
}

// T translates key for lang. Extra arguments are key/value pairs used for
// %{name} substitution; an odd trailing argument is ignored.
//
//	translator.T("en", "validation.min.string", "attribute", "name", "min", "3")
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return Format(tmpl, pairs(args))
}

// Td translates key and uses defaultValue as the template when key is missing.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		tmpl = defaultValue
	}
	return Format(tmpl, pairs(args))
}

// Tc translates key using the locale stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// ExportJSON returns all translations of lang as a JSON document.
func (t *Translator) ExportJSON(lang string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.translations[lang]
	if !ok {
		return "", &ErrLanguageNotSupported{Lang: lang}
	}
	b, err := json.Marshal(messages)
	if err != nil {
		return "", errors.Join(ErrFailedToMarshalJSON, err)
	}
	return string(b), nil
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Format replaces %{name} placeholders with values from params. Unknown
// placeholders are left untouched.
func Format(tmpl string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
