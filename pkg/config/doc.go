// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tags). Load caches one parsed value per
// configuration type, so repeated calls are cheap and consistent; Parse skips
// the cache and accepts explicit options, which is what tests use.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Prefixed structs can be loaded with WithPrefix, e.g. the jsvalidation
// options are read from JSVALIDATION_* variables.
package config
