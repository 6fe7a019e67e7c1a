package validator

import (
	"context"
	"log/slog"
	"maps"
	"mime/multipart"
	"net"
	"net/url"

	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
)

// Option configures a Validator.
type Option func(*Validator)

// ExtensionFunc implements a custom rule. It receives the first value of the
// attribute and the parsed rule parameters.
type ExtensionFunc func(ctx context.Context, attribute, value string, params []string, data url.Values) (bool, error)

type extension struct {
	check   ExtensionFunc
	message string
}

// WithMessages sets custom messages keyed by "attribute.rule", "rule" or
// "rule.variant".
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		maps.Copy(v.messages, messages)
	}
}

// WithAttributes sets display names used in messages.
func WithAttributes(names map[string]string) Option {
	return func(v *Validator) {
		maps.Copy(v.attributes, names)
	}
}

// WithTranslator replaces the embedded English catalogue.
func WithTranslator(t *i18n.Translator) Option {
	return func(v *Validator) {
		if t != nil {
			v.translator = t
		}
	}
}

// WithLocale selects the message language.
func WithLocale(locale string) Option {
	return func(v *Validator) {
		if locale != "" {
			v.locale = locale
		}
	}
}

// WithPresenceVerifier sets the store used by unique and exists.
func WithPresenceVerifier(pv PresenceVerifier) Option {
	return func(v *Validator) {
		v.verifier = pv
	}
}

// WithExtension registers a custom rule. Extensions need a server round trip
// to be checked, so the client compiler treats them as remote rules.
func WithExtension(name string, check ExtensionFunc, message string) Option {
	return func(v *Validator) {
		if name == "" || check == nil {
			return
		}
		v.extensions[NormalizeRuleName(name)] = extension{check: check, message: message}
	}
}

// WithAttributeOrder fixes the order attributes are walked in. Attributes not
// listed follow in lexicographic order.
func WithAttributeOrder(order []string) Option {
	return func(v *Validator) {
		v.order = append(v.order[:0], order...)
	}
}

// WithFiles attaches uploaded files for file, image, mimes and mimetypes.
func WithFiles(files map[string][]*multipart.FileHeader) Option {
	return func(v *Validator) {
		maps.Copy(v.files, files)
	}
}

// WithResolver sets the DNS resolver used by active_url.
func WithResolver(r *net.Resolver) Option {
	return func(v *Validator) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.log = logger
		}
	}
}
