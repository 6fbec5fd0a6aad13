package logger

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config controls how the application logger is built.
type Config struct {
	Level          string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string `mapstructure:"format" validate:"oneof=json console"`
	TimeField      string `mapstructure:"timeField"`
	TimeFormat     string `mapstructure:"timeFormat" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName    string `mapstructure:"serviceName"`
	ServiceVersion string `mapstructure:"serviceVersion"`
	WithCaller     bool   `mapstructure:"withCaller"`
}

// New builds a zerolog logger from config. Console output goes to stderr
// for humans; JSON goes to stdout for collectors.
func New(cfg *Config) (logger zerolog.Logger, err error) {
	cfg.setDefaults()

	v := validator.New()
	if err = v.Struct(cfg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFieldFormat(cfg.TimeFormat)

	var base zerolog.Logger
	if cfg.Format == "console" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
		base = zerolog.New(writer)
	} else {
		base = zerolog.New(os.Stdout)
	}

	logger = base.With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Logger()
	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func timeFieldFormat(name string) string {
	switch name {
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	case "rfc3339":
		return "2006-01-02T15:04:05Z07:00"
	default:
		return "2006-01-02T15:04:05.999999999Z07:00"
	}
}

func (c *Config) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}
	if c.ServiceName == "" {
		c.ServiceName = "soccer-tracker"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.1"
	}
}
