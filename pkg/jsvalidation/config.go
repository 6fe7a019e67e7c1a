package jsvalidation

import "github.com/dmitrymomot/jsvalidation/pkg/config"

// EnvPrefix is prepended to every Config variable.
const EnvPrefix = "JSVALIDATION_"

// Config holds the client validation defaults.
type Config struct {
	FormSelector            string `env:"FORM_SELECTOR" envDefault:"form"`
	FocusOnError            bool   `env:"FOCUS_ON_ERROR" envDefault:"true"`
	AnimateDuration         int    `env:"DURATION_ANIMATE" envDefault:"1000"`
	DisableRemoteValidation bool   `env:"DISABLE_REMOTE_VALIDATION" envDefault:"false"`
	RemoteValidationField   string `env:"REMOTE_VALIDATION_FIELD" envDefault:"_jsvalidation"`
	Escape                  bool   `env:"ESCAPE" envDefault:"false"`
	Ignore                  string `env:"IGNORE" envDefault:":hidden, [contenteditable='true']"`
	Locale                  string `env:"LOCALE" envDefault:"en"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		FormSelector:          "form",
		FocusOnError:          true,
		AnimateDuration:       1000,
		RemoteValidationField: "_jsvalidation",
		Ignore:                ":hidden, [contenteditable='true']",
		Locale:                "en",
	}
}

// LoadConfig reads JSVALIDATION_* variables.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Parse(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateAllField carries the "validate every rule" flag of remote requests.
func (c Config) ValidateAllField() string {
	return c.RemoteValidationField + "_validate_all"
}
