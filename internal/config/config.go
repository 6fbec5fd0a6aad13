package config

import (
	"github.com/adamjolicoeur/soccer-tracker/internal/logger"
)

// Config is the application configuration tree.
type Config struct {
	Logger  logger.Config `mapstructure:"logger"`
	Storage Storage       `mapstructure:"storage"`
	Game    Game          `mapstructure:"game"`
}

// Storage selects where snapshots persist. An empty path keeps everything
// in memory for the session.
type Storage struct {
	Path string `mapstructure:"path"`
}

// Game holds match defaults offered by the setup screen.
type Game struct {
	DefaultHalfMinutes int `mapstructure:"defaultHalfMinutes" validate:"gte=1,lte=60"`
}
