package bc1ep

import "github.com/woozymasta/bcn"

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// blockDataLength is the BC1 payload size for the given pixel dimensions.
func blockDataLength(width, height int) int {
	return NewGrid(width, height).ByteLen()
}

func enfusionReserved1() [11]uint32 {
	return [11]uint32{
		0,
		0x31464e45, // "ENF1"
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
}

// makeDDSHeader builds a DXT1 header. EDDS files carry the Enfusion marker
// in Reserved1.
func makeDDSHeader(width, height, mipMapCount uint32, container Container) *bcn.DDSHeader {
	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat | bcn.DDSFlagLinearSize)
	caps := uint32(bcn.DDSCapsTexture)
	if mipMapCount > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       flags,
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: mipMapCount,
		Caps:        caps,
		// #nosec G115 -- payload of u32 dimensions
		PitchOrLinearSize: uint32(blockDataLength(int(width), int(height))),
	}
	if container == ContainerEDDS {
		hdr.Reserved1 = enfusionReserved1()
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = bcn.DDSPFFourCC
	hdr.PixelFormat.FourCC = fourCCDXT1

	return hdr
}
