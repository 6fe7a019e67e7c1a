package sanitizer

import (
	"net/http"
	"strings"
)

const maxMultipartMemory = 32 << 20

type middlewareOptions struct {
	except []string
}

type Option func(*middlewareOptions)

// WithExcept replaces DefaultExcept.
func WithExcept(fields ...string) Option {
	return func(o *middlewareOptions) {
		o.except = fields
	}
}

// Middleware parses the request form and trims its values before the next
// handler reads them. Requests whose form cannot be parsed pass through
// untouched so the handler can report the error.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := middlewareOptions{except: DefaultExcept}
	for _, opt := range opts {
		opt(&o)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := parseForm(r); err == nil {
				TrimStrings(r.Form, o.except...)
				TrimStrings(r.PostForm, o.except...)
				if r.MultipartForm != nil {
					TrimStrings(r.MultipartForm.Value, o.except...)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}
