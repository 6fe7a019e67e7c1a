package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/jsvalidation/pkg/cache"
	"github.com/dmitrymomot/jsvalidation/pkg/formspec"
	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/logger"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// FormProvider resolves form definitions by name. *formspec.Registry
// implements it.
type FormProvider interface {
	Form(name string) (*formspec.Form, error)
}

// FormEndpoints serves compiled rules, remote checks and submissions of
// the forms of a FormProvider.
type FormEndpoints struct {
	forms   FormProvider
	factory *jsvalidation.Factory
	options []validator.Option
	views   *cache.LRU[string, jsvalidation.ViewData]
	log     *slog.Logger
}

// EndpointOption configures FormEndpoints.
type EndpointOption func(*FormEndpoints)

// WithHostOptions applies validator options, such as a presence verifier,
// to every host validator built for a request.
func WithHostOptions(opts ...validator.Option) EndpointOption {
	return func(e *FormEndpoints) {
		e.options = append(e.options, opts...)
	}
}

// WithViewCache keeps compiled view data per form and locale. Rule messages
// are resolved in the request locale, so each locale gets its own entry.
func WithViewCache(views *cache.LRU[string, jsvalidation.ViewData]) EndpointOption {
	return func(e *FormEndpoints) {
		e.views = views
	}
}

// WithEndpointLogger sets the logger for compile failures.
func WithEndpointLogger(l *slog.Logger) EndpointOption {
	return func(e *FormEndpoints) {
		if l != nil {
			e.log = l
		}
	}
}

// NewFormEndpoints creates FormEndpoints.
func NewFormEndpoints(forms FormProvider, factory *jsvalidation.Factory, opts ...EndpointOption) *FormEndpoints {
	e := &FormEndpoints{forms: forms, factory: factory, log: logger.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *FormEndpoints) form(name string) (*formspec.Form, error) {
	f, err := e.forms.Form(name)
	if errors.Is(err, formspec.ErrFormNotFound) {
		return nil, errors.Join(ErrNotFound, err)
	}
	return f, err
}

func (e *FormEndpoints) hostOptions(ctx Context) []validator.Option {
	return append([]validator.Option{validator.WithLocale(ctx.Locale())}, e.options...)
}

func (e *FormEndpoints) viewData(ctx Context, name string) (jsvalidation.ViewData, error) {
	compile := func() (jsvalidation.ViewData, error) {
		f, err := e.form(name)
		if err != nil {
			return jsvalidation.ViewData{}, err
		}
		j, err := f.JavascriptValidator(e.factory, e.hostOptions(ctx)...)
		if err != nil {
			return jsvalidation.ViewData{}, err
		}
		data, err := j.ViewData()
		if err != nil {
			e.log.ErrorContext(ctx, "compile form", logger.Form(name), logger.Error(err))
		}
		return data, err
	}
	if e.views == nil {
		return compile()
	}
	return e.views.GetOrCompute(viewKey(name, ctx.Locale()), compile)
}

func viewKey(name, locale string) string {
	return name + "\x00" + locale
}

// Rules answers the compiled view data of a form: JSON for API clients,
// a "validation" signal for datastar.
func (e *FormEndpoints) Rules() HandlerFunc[Context, FormRequest] {
	return func(ctx Context, req FormRequest) Response {
		data, err := e.viewData(ctx, req.Name)
		if err != nil {
			return JSONError(err)
		}
		if IsDataStar(ctx.Request()) {
			return Signals(map[string]any{"validation": data})
		}
		return JSON(data)
	}
}

// Script renders the page script of a form.
func (e *FormEndpoints) Script() HandlerFunc[Context, FormRequest] {
	return func(ctx Context, req FormRequest) Response {
		data, err := e.viewData(ctx, req.Name)
		if err != nil {
			return JSONError(err)
		}
		return Templ(jsvalidation.Script(data), WithTarget("#jsvalidation-"+req.Name), WithPatchMode(PatchOuter))
	}
}

// Remote validates the field named by the remote validation field and
// answers true or the Laravel style {message, errors} body with 422.
func (e *FormEndpoints) Remote() HandlerFunc[Context, FormRequest] {
	cfg := e.factory.Config()
	return func(ctx Context, req FormRequest) Response {
		field := req.Values.Get(cfg.RemoteValidationField)
		if field == "" {
			return JSONError(ErrBadRequest)
		}
		f, err := e.form(req.Name)
		if err != nil {
			return JSONError(err)
		}
		v, err := f.Validator(req.Values, req.Files, e.hostOptions(ctx)...)
		if err != nil {
			return JSONError(err)
		}
		rv, err := jsvalidation.NewRemoteValidator(v)
		if err != nil {
			return JSONError(err)
		}

		validateAll := req.Values.Get(cfg.ValidateAllField()) == "true"
		result, err := rv.Validate(ctx, req.Values, req.Files, field, validateAll)
		switch {
		case errors.Is(err, jsvalidation.ErrUnknownAttribute):
			return JSONError(errors.Join(ErrBadRequest, err))
		case err != nil:
			e.log.ErrorContext(ctx, "remote validation", logger.Form(req.Name), logger.Attribute(field), logger.Error(err))
			return JSONError(err)
		case result.Valid:
			return JSON(result, WithoutEnvelope())
		}
		return JSON(map[string]any{
			"message": result.Messages[0],
			"errors":  map[string][]string{field: result.Messages},
		}, WithoutEnvelope(), WithJSONStatus(http.StatusUnprocessableEntity))
	}
}

// Submit validates a whole submission. Valid data gets 204; invalid data
// a ValidationError, or an "errors" signal for datastar.
func (e *FormEndpoints) Submit() HandlerFunc[Context, FormRequest] {
	return func(ctx Context, req FormRequest) Response {
		f, err := e.form(req.Name)
		if err != nil {
			return JSONError(err)
		}
		v, err := f.Validator(req.Values, req.Files, e.hostOptions(ctx)...)
		if err != nil {
			return JSONError(err)
		}

		err = v.Validate(ctx)
		if err == nil {
			return NoContent()
		}
		ve, ok := AsValidationError(err)
		if !ok {
			e.log.ErrorContext(ctx, "validate submission", logger.Form(req.Name), logger.Error(err))
			return JSONError(err)
		}
		if IsDataStar(ctx.Request()) {
			return Signals(map[string]any{"errors": ve})
		}
		return JSONError(ve)
	}
}
