package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jsvalidation/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header string) (string, string) {
	t.Helper()
	var seen string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), "")
		require.NotEmpty(t, seen)
		assert.Equal(t, seen, echoed)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("reuses valid header", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), "abc_123-x")
		assert.Equal(t, "abc_123-x", seen)
		assert.Equal(t, "abc_123-x", echoed)
	})

	t.Run("replaces invalid header", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"has space", "<script>", strings.Repeat("a", 129)} {
			seen, _ := serve(t, requestid.Middleware(), bad)
			assert.NotEqual(t, bad, seen)
			assert.NotEmpty(t, seen)
		}
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()
		seen, _ := serve(t, requestid.Middleware(requestid.WithGenerator(func() string { return "fixed" })), "")
		assert.Equal(t, "fixed", seen)
	})

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		h := requestid.Middleware(requestid.WithHeader("X-Trace"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", "trace1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "trace1", rec.Header().Get("X-Trace"))
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	ctx := requestid.WithContext(context.Background(), "id-1")
	assert.Equal(t, "id-1", requestid.FromContext(ctx))

	attr, ok := requestid.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "id-1", attr.Value.String())

	_, ok = requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
