package bc1ep

import "fmt"

const (
	// Magic is the four-byte tag that opens every DDS file.
	Magic = "DDS "
	// HeaderSize is the value of the DDS header size field.
	HeaderSize = 124
	// DX10HeaderSize is the size of the extended DX10 header.
	DX10HeaderSize = 20
	// MinFileSize is the magic plus the fixed header.
	MinFileSize = 4 + HeaderSize

	// DXGIFormatBC1UNorm is DXGI_FORMAT_BC1_UNORM.
	DXGIFormatBC1UNorm = 71
	// DXGIFormatBC1UNormSRGB is DXGI_FORMAT_BC1_UNORM_SRGB.
	DXGIFormatBC1UNormSRGB = 72

	capsMipmap = 0x400000
)

var (
	fourCCDXT1 = makeFourCC('D', 'X', 'T', '1')
	fourCCDX10 = makeFourCC('D', 'X', '1', '0')
)

// Header is the subset of a DDS header needed to locate BC1 block data.
type Header struct {
	Size        uint32
	Flags       uint32
	Height      uint32
	Width       uint32
	MipMapCount uint32
	Caps        uint32
	FourCC      uint32

	// DXGIFormat is set only when the DX10 extension is present.
	DXGIFormat uint32
	HasDX10    bool

	// DataOffset is the absolute offset of the first byte after the headers.
	DataOffset int
}

// FourCCString returns the pixel format tag as text.
func (h *Header) FourCCString() string {
	return intToFourCC(h.FourCC)
}

// SRGB reports whether the DX10 header marks the texture as sRGB encoded.
func (h *Header) SRGB() bool {
	return h.HasDX10 && h.DXGIFormat == DXGIFormatBC1UNormSRGB
}

// Mipmaps returns the number of mip levels declared by the header, at least 1.
func (h *Header) Mipmaps() uint32 {
	if h.Caps&capsMipmap != 0 && h.MipMapCount > 0 {
		return h.MipMapCount
	}
	return 1
}

// ParseHeader validates the DDS magic, header and optional DX10 extension.
func ParseHeader(buf []byte) (*Header, error) {
	if len(buf) < MinFileSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrTooShort, len(buf), MinFileSize)
	}

	r := newByteReader(buf)
	magic, err := r.Bytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTooShort, err)
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	h, err := readHeaderFields(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTooShort, err)
	}
	if h.Size != HeaderSize {
		return nil, fmt.Errorf("%w: %d", ErrBadHeaderSize, h.Size)
	}

	switch h.FourCC {
	case fourCCDXT1:
	case fourCCDX10:
		h.HasDX10 = true
		if h.DXGIFormat, err = r.Uint32(); err != nil {
			return nil, fmt.Errorf("%w: DX10 header: %v", ErrTooShort, err)
		}
		if err := r.Skip(DX10HeaderSize - 4); err != nil {
			return nil, fmt.Errorf("%w: DX10 header: %v", ErrTooShort, err)
		}
		if h.DXGIFormat != DXGIFormatBC1UNorm && h.DXGIFormat != DXGIFormatBC1UNormSRGB {
			return nil, fmt.Errorf("%w: dxgiFormat=%d", ErrUnsupportedDxgiFormat, h.DXGIFormat)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFourCC, h.FourCCString())
	}

	h.DataOffset = r.Offset()
	return h, nil
}

// readHeaderFields walks the 124-byte header that follows the magic.
func readHeaderFields(r *byteReader) (*Header, error) {
	var h Header
	var err error
	read := func(dst *uint32) {
		if err == nil {
			*dst, err = r.Uint32()
		}
	}
	skip := func(n int) {
		if err == nil {
			err = r.Skip(n)
		}
	}

	read(&h.Size)
	read(&h.Flags)
	read(&h.Height)
	read(&h.Width)
	skip(4) // pitch or linear size
	skip(4) // depth
	read(&h.MipMapCount)
	skip(11 * 4)
	skip(4) // pixel format size
	skip(4) // pixel format flags
	read(&h.FourCC)
	skip(5 * 4) // bit count and masks
	read(&h.Caps)
	skip(4 * 4) // caps2..caps4, reserved2
	if err != nil {
		return nil, err
	}

	return &h, nil
}
