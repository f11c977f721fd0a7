package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from the environment.
type Env struct {
	ConfigDir string `env:"BOARDSIM_CONFIG_DIR" envDefault:"config"`
	Profile   string `env:"BOARDSIM_PROFILE"`
	HTTPAddr  string `env:"BOARDSIM_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr  string `env:"BOARDSIM_GRPC_ADDR" envDefault:":9090"`
	DBPath    string `env:"BOARDSIM_DB_PATH"`
	LogLevel  string `env:"BOARDSIM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
