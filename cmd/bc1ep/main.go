package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep/internal/config"
	"github.com/woozymasta/bc1ep/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "bc1ep",
		Usage: "Extract BC1 endpoint datasets from DDS/EDDS textures",
		Flags: globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load(configFile)
			if err != nil {
				return ctx, err
			}
			settings = cfg
			applyLogConfig(cmd, cfg)

			log := logger.ForFormat(os.Stderr, logFormat, logger.ParseLevel(logLevel))
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			extractCmd(),
			inspectCmd(),
			encodeCmd(),
			serveCmd(),
			configCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
