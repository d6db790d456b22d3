// Package config fills configuration structs from environment variables.
//
// A .env file in the working directory is read once (missing files are fine),
// then env struct tags are applied with github.com/caarlos0/env/v11:
//
//	type Config struct {
//		Addr string        `env:"HTTP_ADDR" envDefault:":8080"`
//		TTL  time.Duration `env:"SESSION_TTL" envDefault:"720h"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
//
// Load caches the result per type, so every package asking for the same
// struct sees the same values. Parse skips the cache and is what tests use.
package config
