// Package logger builds the process-wide zerolog logger from config.
package logger

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LoggerConfig controls output format and verbosity. Zero values are
// filled with sensible production defaults before validation.
type LoggerConfig struct {
	Level          string `json:"level,omitempty" mapstructure:"level" validate:"oneof=debug info warn error"`
	Env            string `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev staging prod"`
	TimeField      string `json:"timeField,omitempty" mapstructure:"time_field"`
	ServiceName    string `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion string `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	WithCaller     bool   `json:"withCaller,omitempty" mapstructure:"with_caller"`
}

// New validates the config and returns a ready logger. Production-like
// environments emit JSON on stdout; dev gets a human console writer.
func New(logg *LoggerConfig) (logger zerolog.Logger, err error) {
	logg.setDefaults()

	v := validator.New()
	if err = v.Struct(logg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = logg.TimeField

	switch logg.Env {
	case "dev":
		writer := zerolog.ConsoleWriter{Out: os.Stderr}
		logger = zerolog.New(writer).
			With().
			Timestamp().
			Str("service", logg.ServiceName).
			Str("version", logg.ServiceVersion).
			Logger()
	default:
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", logg.ServiceName).
			Str("version", logg.ServiceVersion).
			Str("env", logg.Env).
			Logger()
	}

	if logg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(logg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.ServiceName == "" {
		c.ServiceName = "boardgame-tracker"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.1"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
}
