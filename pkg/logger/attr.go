package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error returns an "error" attribute, or an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// RequestID returns a "request_id" attribute, or an empty Attr for "".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Attribute is the validated field name.
func Attribute(name string) slog.Attr {
	return slog.String("attribute", name)
}

// Rule is the validation rule name.
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// ClientRule is the rule name emitted for the client engine.
func ClientRule(name string) slog.Attr {
	return slog.String("client_rule", name)
}

func Form(name string) slog.Attr {
	return slog.String("form", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
