package main

import (
	"os"

	"github.com/urfave/cli/v3"

	"vtubemusic/internal/config"
	"vtubemusic/internal/logging"
)

// loadConfig reads the full configuration and installs the global logger.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return nil, err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	}))
	return cfg, nil
}
