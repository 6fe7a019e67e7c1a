package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/jsvalidation/handler"
	"github.com/dmitrymomot/jsvalidation/pkg/cache"
	"github.com/dmitrymomot/jsvalidation/pkg/clientip"
	"github.com/dmitrymomot/jsvalidation/pkg/formspec"
	"github.com/dmitrymomot/jsvalidation/pkg/httpserver"
	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/ratelimiter"
	"github.com/dmitrymomot/jsvalidation/pkg/requestid"
	"github.com/dmitrymomot/jsvalidation/pkg/sanitizer"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

type formSource interface {
	handler.FormProvider
	Names() []string
}

type routerDeps struct {
	forms      formSource
	config     jsvalidation.Config
	translator *i18n.Translator
	hostOpts   []validator.Option
	checks     []func(context.Context) error
	throttle   *ratelimiter.Bucket
	views      *cache.LRU[string, jsvalidation.ViewData]
	ipHeaders  []string
	log        *slog.Logger
}

func newRouter(d routerDeps) http.Handler {
	factory := jsvalidation.NewFactory(d.config, jsvalidation.WithFactoryLogger(d.log))
	endpoints := handler.NewFormEndpoints(d.forms, factory,
		handler.WithHostOptions(d.hostOpts...),
		handler.WithEndpointLogger(d.log),
		handler.WithViewCache(d.views),
	)

	errHandler := handler.WithErrorHandler[handler.Context, handler.FormRequest](handler.NewErrorHandler(d.log, handler.ErrorHandlerConfig{}))
	binders := handler.WithBinders[handler.Context, handler.FormRequest](
		handler.BindForm(),
		handler.BindFormName(chi.URLParam, "form"),
	)

	// Submissions carrying the remote field are answered before Submit runs.
	// The data comes from the request; the validator only carries the rules.
	remote := jsvalidation.RemoteMiddleware(d.config, func(r *http.Request) (*validator.Validator, error) {
		form, err := d.forms.Form(chi.URLParam(r, "form"))
		if err != nil {
			return nil, err
		}
		opts := append([]validator.Option{validator.WithLocale(i18n.GetLocale(r.Context()))}, d.hostOpts...)
		return form.Validator(url.Values{}, nil, opts...)
	}, d.log)

	throttle := func(next http.Handler) http.Handler { return next }
	if d.throttle != nil {
		throttle = ratelimiter.Middleware(d.throttle,
			ratelimiter.Composite(ratelimiter.ByClientIP(), ratelimiter.ByParam(chi.URLParam, "form")),
			ratelimiter.WithMiddlewareLogger(d.log),
		)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(clientip.Middleware(clientip.WithHeaders(d.ipHeaders...)))
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(d.translator))

	r.Get("/health/live", httpserver.HealthCheckHandler(d.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(d.log, d.checks...))

	r.Route("/forms", func(r chi.Router) {
		r.Get("/", listForms(d.forms))
		r.Get("/{form}/rules", handler.Wrap(endpoints.Rules(), binders, errHandler))
		r.Get("/{form}/script", handler.Wrap(endpoints.Script(), binders, errHandler))
		r.With(sanitizer.Middleware(), throttle).Post("/{form}/remote", handler.Wrap(endpoints.Remote(), binders, errHandler))
		r.With(sanitizer.Middleware(), remoteOnly(d.config, throttle), remote).Post("/{form}", handler.Wrap(endpoints.Submit(), binders, errHandler))
	})
	return r
}

// remoteOnly applies mw to remote checks posted to the submit route, so
// full submissions are not throttled.
func remoteOnly(cfg jsvalidation.Config, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue(cfg.RemoteValidationField) != "" {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// listForms answers the form names sorted alphabetically.
func listForms(forms formSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := slices.Clone(forms.Names())
		slices.Sort(names)
		_ = handler.JSON(names).Render(w, r)
	}
}

var _ formSource = (*formspec.Registry)(nil)
