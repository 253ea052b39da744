package bc1ep

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
)

// Image decodes the base level into pixels. Nil opts uses the decoder defaults.
func (e *Extraction) Image(opts *bcn.DecodeOptions) (image.Image, error) {
	img, err := bcn.DecodeImageWithOptions(e.Payload, int(e.Header.Width), int(e.Header.Height), bcn.FormatDXT1, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}
	return img, nil
}
