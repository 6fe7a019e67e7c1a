package jsvalidation

import (
	"log/slog"

	"github.com/dmitrymomot/jsvalidation/pkg/logger"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// Factory builds JavascriptValidators sharing one configuration.
type Factory struct {
	cfg       Config
	validator []validator.Option
	handler   []HandlerOption
	log       *slog.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithValidatorOptions applies host validator options to every Make call.
func WithValidatorOptions(opts ...validator.Option) FactoryOption {
	return func(f *Factory) {
		f.validator = append(f.validator, opts...)
	}
}

// WithHandlerOptions applies handler options to every validator built.
func WithHandlerOptions(opts ...HandlerOption) FactoryOption {
	return func(f *Factory) {
		f.handler = append(f.handler, opts...)
	}
}

// WithFactoryLogger sets the logger handed to every handler.
func WithFactoryLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFactory creates a Factory.
func NewFactory(cfg Config, opts ...FactoryOption) *Factory {
	f := &Factory{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the factory configuration.
func (f *Factory) Config() Config {
	return f.cfg
}

// Make compiles rules that have no data attached yet, the usual case when
// rendering a blank form.
func (f *Factory) Make(rules map[string]any, opts ...validator.Option) (*JavascriptValidator, error) {
	all := append([]validator.Option{validator.WithLocale(f.cfg.Locale)}, f.validator...)
	v, err := validator.New(nil, rules, append(all, opts...)...)
	if err != nil {
		return nil, err
	}
	return f.FromValidator(v)
}

// FromValidator wraps an existing host validator.
func (f *Factory) FromValidator(v *validator.Validator) (*JavascriptValidator, error) {
	opts := append([]HandlerOption{WithLogger(f.log)}, f.handler...)
	h, err := NewValidatorHandler(v, opts...)
	if err != nil {
		return nil, err
	}
	return newJavascriptValidator(h, f.cfg), nil
}
