package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "de", "pt-BR"}
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", "en"},
		{"exact match", "de", "de"},
		{"region falls back to base", "de-AT", "de"},
		{"quality order respected", "fr;q=0.9, de;q=0.8", "de"},
		{"regional supported", "pt-BR,pt;q=0.9", "pt-BR"},
		{"nothing matches", "ja", "en"},
		{"malformed header", ";;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, supported, "en"))
		})
	}
}

func TestMatcherWithoutLanguages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "xx", i18n.NewMatcher().Match("xx", "de"))
	assert.Equal(t, "xx", i18n.NewMatcher("not a tag!!").Match("xx", "de"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	translator := newTestTranslator(t)

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	})
	mw := i18n.Middleware(translator)(next)

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"query wins", "/?lang=de", "en", "de"},
		{"accept language", "/", "de-DE,de;q=0.9", "de"},
		{"unsupported query falls through to header", "/?lang=fr", "de", "de"},
		{"default", "/", "", "en"},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, tt.target, nil)
		if tt.accept != "" {
			r.Header.Set("Accept-Language", tt.accept)
		}
		mw.ServeHTTP(httptest.NewRecorder(), r)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestCookieExtractor(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, i18n.CookieExtractor("lang")(r))

	r.AddCookie(&http.Cookie{Name: "lang", Value: " de "})
	assert.Equal(t, "de", i18n.CookieExtractor("lang")(r))
}
