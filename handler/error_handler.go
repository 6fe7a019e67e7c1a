package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/jsvalidation/pkg/logger"
)

// ErrorPageParams is passed to the error page component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders HTML errors for browsers. JSON is sent when nil.
	ErrorPage func(ErrorPageParams) templ.Component
}

// NewErrorHandler logs err and answers in the format the client expects:
// datastar gets an "error" signal, browsers the error page, everything
// else a JSON error body.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		status := http.StatusInternalServerError
		detail := errorToDetail(err, &status)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(ctx, level, "request error",
			logger.RequestID(ctx.RequestID()),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		w := ctx.ResponseWriter()
		switch {
		case IsDataStar(r):
			err = Signals(map[string]any{"error": detail}).Render(w, r)
		case cfg.ErrorPage != nil && wantsHTML(r):
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			err = cfg.ErrorPage(ErrorPageParams{
				Error:      detail.Message,
				StatusCode: status,
				RequestID:  ctx.RequestID(),
			}).Render(ctx, w)
		default:
			err = JSONError(detail, WithJSONStatus(status)).Render(w, r)
		}
		if err != nil {
			log.ErrorContext(ctx, "render error response", logger.Error(err), logger.Component("error_handler"))
		}
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
