package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep"
	"github.com/woozymasta/bc1ep/internal/logger"
)

func extractCmd() *cli.Command {
	var (
		outDir          string
		keepOnlyOrdered bool
		noMeta          bool
		rgb888          bool
		encoding        string
		container       string
		workers         int
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Write <name>_endpoints.json for each DDS/EDDS file",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: "output directory (default: next to each input)", Destination: &outDir},
			&cli.BoolFlag{Name: "keep-only-ordered", Usage: "keep only blocks with c0 > c1", Destination: &keepOnlyOrdered},
			&cli.BoolFlag{Name: "no-meta", Usage: "omit the meta summary", Destination: &noMeta},
			&cli.BoolFlag{Name: "rgb888", Usage: "add 8-bit endpoint colors to targets", Destination: &rgb888},
			&cli.StringFlag{Name: "encoding", Usage: "output encoding (json, json.zst)", Value: "json", Destination: &encoding},
			&cli.StringFlag{Name: "container", Usage: "input container (auto, dds, edds)", Value: "auto", Destination: &container},
			&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "files processed in parallel (0 = NumCPU)", Destination: &workers},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			paths := c.Args().Slice()
			if len(paths) == 0 {
				return cli.Exit("error: at least one input file is required", 1)
			}

			if settings.OutputDir != "" && !c.IsSet("out-dir") {
				outDir = settings.OutputDir
			}
			if settings.KeepOnlyOrdered != nil && !c.IsSet("keep-only-ordered") {
				keepOnlyOrdered = *settings.KeepOnlyOrdered
			}
			if settings.IncludeMeta != nil && !c.IsSet("no-meta") {
				noMeta = !*settings.IncludeMeta
			}
			if settings.Encoding != "" && !c.IsSet("encoding") {
				encoding = settings.Encoding
			}

			enc, err := bc1ep.ParseEncoding(encoding)
			if err != nil {
				return err
			}
			cont, err := bc1ep.ParseContainer(container)
			if err != nil {
				return err
			}

			opts := bc1ep.Options{
				KeepOnlyOrdered: keepOnlyOrdered,
				IncludeMeta:     !noMeta,
				IncludeRGB888:   rgb888,
				Container:       cont,
			}

			results := bc1ep.ExtractFiles(ctx, paths, outDir, opts, enc, workers)

			var failed int
			for _, res := range results {
				if res.Err != nil {
					failed++
					log.Error("extract failed", "input", res.Input, "error", res.Err)
					continue
				}
				log.Info("extracted endpoints", "input", res.Input, "output", res.Output)
				fmt.Println(res.Output)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}
}
