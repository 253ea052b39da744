package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep/internal/config"
	"gopkg.in/yaml.v3"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or edit the settings file",
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "Print the settings file location",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(configFile)
					return nil
				},
			},
			{
				Name:    "show",
				Aliases: []string{"get"},
				Usage:   "Print the current settings as YAML",
				Action: func(ctx context.Context, c *cli.Command) error {
					out, err := yaml.Marshal(settings)
					if err != nil {
						return err
					}
					fmt.Print(string(out))
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Persist a single setting",
				ArgsUsage: "KEY VALUE",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 2 {
						return cli.Exit("error: expected KEY VALUE", 1)
					}
					if configFile == "" {
						return cli.Exit("error: no settings path; pass --config", 1)
					}
					cfg := settings
					if err := cfg.Set(c.Args().Get(0), c.Args().Get(1)); err != nil {
						return err
					}
					if err := config.Save(configFile, cfg); err != nil {
						return err
					}
					settings = cfg
					return nil
				},
			},
		},
	}
}
