package main

import (
	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep/internal/config"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	// settings is the loaded config file, populated before any command runs.
	settings config.Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to the settings file",
			Value:       config.DefaultPath(),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

// applyLogConfig applies config file defaults to the logging flags when they
// were not set explicitly.
func applyLogConfig(c *cli.Command, cfg config.Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
