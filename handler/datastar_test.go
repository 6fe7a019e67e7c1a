package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/jsvalidation/handler"
)

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		header map[string]string
		want   bool
	}{
		{name: "plain", target: "/", want: false},
		{name: "accept", target: "/", header: map[string]string{"Accept": "text/event-stream"}, want: true},
		{name: "query", target: "/?datastar=%7B%7D", want: true},
		{name: "content type", target: "/", header: map[string]string{"Content-Type": "application/x-datastar"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		rec := render(t, handler.TemplPartial(text(`<div id="p">part</div>`), text("<html>full</html>")), nil)
		assert.Equal(t, "<html>full</html>", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("datastar patch", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept", "text/event-stream")
		rec := render(t, handler.Templ(text(`<div id="p">part</div>`), handler.WithTarget("#p"), handler.WithPatchMode(handler.PatchInner)), r)

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "part")
		assert.Contains(t, body, "#p")
	})
}

func TestSignals(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept", "text/event-stream")
	rec := render(t, handler.Signals(map[string]any{"count": 2}), r)
	assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
	assert.Contains(t, rec.Body.String(), `{"count":2}`)

	rec = render(t, handler.Signals(map[string]any{"count": 2}), nil)
	assert.JSONEq(t, `{"data":{"count":2}}`, rec.Body.String())
}

func TestNoContent(t *testing.T) {
	t.Parallel()

	rec := render(t, handler.NoContent(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
