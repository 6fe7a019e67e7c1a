package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor returns a language preference string for a request. It may
// be a single code or an Accept-Language style list.
type LangExtractor func(r *http.Request) string

// QueryExtractor reads the language from a query parameter.
func QueryExtractor(name string) LangExtractor {
	return func(r *http.Request) string {
		return strings.TrimSpace(r.URL.Query().Get(name))
	}
}

// CookieExtractor reads the language from a cookie.
func CookieExtractor(name string) LangExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(c.Value)
	}
}

// HeaderExtractor reads the Accept-Language header.
func HeaderExtractor() LangExtractor {
	return func(r *http.Request) string {
		return r.Header.Get("Accept-Language")
	}
}

// Middleware negotiates the request language against the translator's
// languages and stores it with SetLocale. Extractors are consulted in order;
// the first one that yields a supported language wins. Without extractors the
// "lang" query parameter and then Accept-Language are used.
func Middleware(t *Translator, extractors ...LangExtractor) func(http.Handler) http.Handler {
	if len(extractors) == 0 {
		extractors = []LangExtractor{QueryExtractor("lang"), HeaderExtractor()}
	}

	fallback := DefaultLanguage
	var matcher *Matcher
	if t != nil {
		fallback = t.DefaultLanguage()
		matcher = NewMatcher(t.SupportedLanguages()...)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := fallback
			if matcher != nil {
				for _, extract := range extractors {
					if match := matcher.Match("", extract(r)); match != "" {
						lang = match
						break
					}
				}
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
