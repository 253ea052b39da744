package main

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bc1ep"
)

func inspectCmd() *cli.Command {
	var preview string

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and block statistics of a DDS/EDDS file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "preview", Usage: "also decode the base level to this PNG file", Destination: &preview},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("error: input file is required", 1)
			}

			ext, err := bc1ep.LoadFile(path, bc1ep.Options{})
			if err != nil {
				return err
			}

			hdr := ext.Header
			ordered := 0
			for _, b := range ext.Blocks {
				if b.Ordered() {
					ordered++
				}
			}

			fmt.Printf("file:        %s\n", path)
			fmt.Printf("container:   %s\n", ext.Container)
			fmt.Printf("size:        %dx%d\n", hdr.Width, hdr.Height)
			fmt.Printf("fourcc:      %s\n", hdr.FourCCString())
			if hdr.HasDX10 {
				fmt.Printf("dxgi:        %d (srgb=%v)\n", hdr.DXGIFormat, hdr.SRGB())
			}
			fmt.Printf("mipmaps:     %d\n", hdr.Mipmaps())
			fmt.Printf("data offset: %d\n", hdr.DataOffset)
			fmt.Printf("blocks:      %dx%d (%d)\n", ext.Grid.BlocksX, ext.Grid.BlocksY, ext.Grid.Total())
			fmt.Printf("c0 > c1:     %d\n", ordered)

			if preview == "" {
				return nil
			}

			img, err := ext.Image(nil)
			if err != nil {
				return err
			}
			f, err := os.Create(preview)
			if err != nil {
				return fmt.Errorf("create preview: %w", err)
			}
			defer func() { _ = f.Close() }()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encode preview: %w", err)
			}
			return f.Close()
		},
	}
}
