package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep"
	"github.com/woozymasta/bc1ep/internal/compressonator"
	"github.com/woozymasta/bc1ep/internal/logger"
	"github.com/woozymasta/bcn"
)

var encodeExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

func encodeCmd() *cli.Command {
	var (
		outDir    string
		container string
		quality   float64
		tool      string
		toolPath  string
		gpu       bool
		mipmaps   int
		compress  bool
	)

	return &cli.Command{
		Name:      "encode",
		Usage:     "Compress PNG/JPEG images (or folders of them) to BC1 textures",
		ArgsUsage: "IMAGE|DIR...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Usage: "destination folder", Value: ".", Destination: &outDir},
			&cli.StringFlag{Name: "container", Usage: "output container (dds, edds)", Value: "dds", Destination: &container},
			&cli.Float64Flag{Name: "quality", Usage: "quality between 0.05 and 1.0", Value: 0.75, Destination: &quality},
			&cli.StringFlag{Name: "tool", Usage: "encoder (builtin, compressonator)", Value: "builtin", Destination: &tool},
			&cli.StringFlag{Name: "compressonator-path", Usage: "path to compressonatorcli", Sources: cli.EnvVars(compressonator.EnvPath), Destination: &toolPath},
			&cli.BoolFlag{Name: "gpu", Usage: "encode on the GPU (compressonator only)", Value: true, Destination: &gpu},
			&cli.IntFlag{Name: "mipmaps", Usage: "mip levels to write with the builtin encoder (0 = full chain)", Value: 1, Destination: &mipmaps},
			&cli.BoolFlag{Name: "compress", Usage: "LZ4-compress EDDS mip bodies", Value: true, Destination: &compress},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			log := logger.FromContext(ctx)

			if settings.OutputDir != "" && !c.IsSet("out-dir") {
				outDir = settings.OutputDir
			}
			if settings.Quality != nil && !c.IsSet("quality") {
				quality = *settings.Quality
			}
			if settings.UseGPU != nil && !c.IsSet("gpu") {
				gpu = *settings.UseGPU
			}
			if settings.CompressonatorPath != "" && !c.IsSet("compressonator-path") {
				toolPath = settings.CompressonatorPath
			}

			if quality < compressonator.MinQuality || quality > compressonator.MaxQuality {
				return fmt.Errorf("%w: %v", compressonator.ErrQualityRange, quality)
			}
			cont, err := bc1ep.ParseContainer(container)
			if err != nil {
				return err
			}
			if cont == bc1ep.ContainerAuto {
				cont = bc1ep.ContainerDDS
			}

			inputs, err := collectImages(c.Args().Slice())
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return cli.Exit("error: no image files found to process", 1)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			var failed int
			for _, in := range inputs {
				out := encodeOutputPath(in, outDir, quality, cont)
				fileLog := log.With("input", in, "output", out)

				switch tool {
				case "builtin":
					err = encodeBuiltin(in, out, cont, quality, mipmaps, compress)
				case "compressonator":
					if cont == bc1ep.ContainerEDDS {
						return cli.Exit("error: compressonator cannot write EDDS", 1)
					}
					job := compressonator.Job{CLIPath: toolPath, Input: in, Output: out, Format: "BC1", Quality: quality, UseGPU: gpu}
					_, err = job.Run(ctx)
				default:
					return cli.Exit(fmt.Sprintf("error: unknown tool %q", tool), 1)
				}

				if err != nil {
					failed++
					fileLog.Error("encode failed", "error", err)
					continue
				}
				fileLog.Info("encoded")
				fmt.Println(out)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(inputs))
			}
			return nil
		},
	}
}

// encodeOutputPath names outputs <stem>-BC1-<quality>.<ext>.
func encodeOutputPath(in, outDir string, quality float64, cont bc1ep.Container) string {
	base := filepath.Base(in)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, fmt.Sprintf("%s-BC1-%.2f.%s", stem, quality, cont))
}

// collectImages expands directories into their supported image files.
func collectImages(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			out = append(out, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !encodeExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

func encodeBuiltin(in, out string, cont bc1ep.Container, quality float64, mipmaps int, compress bool) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	encOpts := &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast}
	if quality >= 0.5 {
		encOpts.QualityLevel = 8
	}

	return bc1ep.WriteBC1(img, out, &bc1ep.WriteOptions{
		Container:     cont,
		MaxMipMaps:    mipmaps,
		Compress:      compress,
		EncodeOptions: encOpts,
	})
}
