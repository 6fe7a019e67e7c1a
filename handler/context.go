package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
	"github.com/dmitrymomot/jsvalidation/pkg/requestid"
)

// Context is the request context handed to every HandlerFunc.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE is nil unless the request comes from datastar.
	SSE() *datastar.ServerSentEventGenerator
	// Locale is the negotiated language, see i18n.Middleware.
	Locale() string
	RequestID() string
}

// NewContext creates the default Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	ctx := &httpContext{w: w, r: r}
	if IsDataStar(r) {
		ctx.sse = NewSSE(w, r)
	}
	return ctx
}

type httpContext struct {
	w   http.ResponseWriter
	r   *http.Request
	sse *datastar.ServerSentEventGenerator
}

func (c *httpContext) Request() *http.Request { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) SSE() *datastar.ServerSentEventGenerator { return c.sse }
func (c *httpContext) Locale() string { return i18n.GetLocale(c.r.Context()) }
func (c *httpContext) RequestID() string { return requestid.FromContext(c.r.Context()) }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{} { return c.r.Context().Done() }
func (c *httpContext) Err() error { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any { return c.r.Context().Value(key) }
