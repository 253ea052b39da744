package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep"
	"github.com/woozymasta/bc1ep/internal/api"
	"github.com/woozymasta/bc1ep/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxBody     int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve endpoint extraction over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "largest accepted upload in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			if settings.ServerAddress != "" && !cmd.IsSet("addr") {
				addr = settings.ServerAddress
			}

			defaults := bc1ep.DefaultOptions()
			if settings.KeepOnlyOrdered != nil {
				defaults.KeepOnlyOrdered = *settings.KeepOnlyOrdered
			}
			if settings.IncludeMeta != nil {
				defaults.IncludeMeta = *settings.IncludeMeta
			}

			server := api.NewServer(api.Config{
				Logger:       log.With("component", "api"),
				MaxBodyBytes: maxBody,
				Defaults:     defaults,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
