// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads an optional .env file,
// with github.com/caarlos0/env/v11, which maps variables onto struct fields
// through `env` and `envDefault` tags. Every package that needs settings owns
// an env-tagged Config struct; the application loads each with Load:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
// Parsed values are cached per type for the life of the process, so repeated
// loads are cheap and consistent. ResetCache clears the cache in tests.
package config
