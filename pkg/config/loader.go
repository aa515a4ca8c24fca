package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Load populates a T from the environment.
//
// With no files, ./.env is read if it exists. Named files must exist.
// Variables already present in the environment always win over file values.
func Load[T any](files ...string) (T, error) {
	var zero T

	if len(files) == 0 {
		// The default file is optional.
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return zero, errors.Join(ErrLoadingEnvFile, err)
	}

	cfg, err := env.ParseAs[T]()
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](files ...string) T {
	cfg, err := Load[T](files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
