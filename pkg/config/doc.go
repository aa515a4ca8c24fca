// Package config loads typed configuration structs from the process
// environment.
//
// It wraps github.com/joho/godotenv, which copies values from .env files
// into the environment without overriding variables that are already set,
// and github.com/caarlos0/env/v11, which parses the environment into a
// struct using `env` and `envDefault` field tags.
//
// # Usage
//
//	type AppConfig struct {
//	    Env  string     `env:"APP_ENV" envDefault:"development"`
//	    CSRF csrf.Config
//	}
//
//	cfg, err := config.Load[AppConfig]()          // reads ./.env when present
//	cfg, err := config.Load[AppConfig](".env.dev") // explicit files must exist
//
// MustLoad panics instead of returning an error and is meant for main.
//
// # Error Handling
//
// ErrLoadingEnvFile wraps failures reading an explicitly named file;
// ErrParsingConfig wraps failures from the environment parser (missing
// required variables, malformed values).
package config
