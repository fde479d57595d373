// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file in the working directory is loaded once per process when
// present, and struct fields annotated with `env` tags are populated from the
// resulting environment.
//
//	type GateConfig struct {
//	    PlansPath string `env:"GATE_PLANS_PATH"`
//	    RedisURL  string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	var cfg GateConfig
//	config.MustLoad(&cfg)
//
// Sentinel errors compare with errors.Is: ErrParsingConfig wraps the parser
// error, ErrFailedToLoadEnvFile signals a missing explicit env file, and
// ErrNilPointer guards against nil destinations.
package config
