package main

import (
	"github.com/dmitrymomot/jsvalidation/pkg/httpserver"
	"github.com/dmitrymomot/jsvalidation/pkg/ratelimiter"
)

// Backends selectable with PRESENCE_STORE and RATE_LIMIT_STORE.
const (
	storeNone     = "none"
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeRedis    = "redis"
	storeMongo    = "mongo"
)

type appConfig struct {
	HTTP      httpserver.Config
	RateLimit ratelimiter.Config

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	FormsFile string `env:"FORMS_FILE" envDefault:"forms.yaml"`
	LangDir   string `env:"LANG_DIR"`

	Presence       string   `env:"PRESENCE_STORE" envDefault:"none"`
	RateLimitStore string   `env:"RATE_LIMIT_STORE" envDefault:"memory"`
	ViewCacheSize  int      `env:"VIEW_CACHE_SIZE" envDefault:"256"`
	IPHeaders      []string `env:"TRUSTED_IP_HEADERS" envDefault:"CF-Connecting-IP,X-Real-IP,X-Forwarded-For" envSeparator:","`
}
