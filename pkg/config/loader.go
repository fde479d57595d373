package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv loads one or more .env files into the process environment before
// parsing. Existing environment variables are never overwritten, so real
// environment always wins over file values.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return errors.Join(ErrFailedToLoadEnvFile, err)
	}
	return nil
}

// Load populates the configuration struct from environment variables using
// `env` field tags. The default .env file in the working directory is loaded
// once per process if present.
//
// Example:
//
//	type GateConfig struct {
//		PlansPath     string `env:"GATE_PLANS_PATH"`
//		WarnThreshold int    `env:"GATE_WARN_THRESHOLD" envDefault:"80"`
//	}
//
//	var cfg GateConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
