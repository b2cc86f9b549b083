package handler

import (
	"os"

	"github.com/pkg/errors"
)

// EnvVars has all environment variables that should be given to Lambda function
type EnvVars struct {
	ConfigPath string `json:"config_path"`
	LogLevel   string `json:"log_level"`
	SentryDSN  string `json:"-"`
	SentryEnv  string `json:"sentry_env"`
}

// BindEnvVars reads environment variables. CONFIG_PATH is required.
func (x *EnvVars) BindEnvVars() error {
	x.ConfigPath = os.Getenv("CONFIG_PATH")
	x.LogLevel = os.Getenv("LOG_LEVEL")
	x.SentryDSN = os.Getenv("SENTRY_DSN")
	x.SentryEnv = os.Getenv("SENTRY_ENVIRONMENT")

	if x.ConfigPath == "" {
		return errors.New("CONFIG_PATH is not set")
	}
	return nil
}
