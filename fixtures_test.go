package bc1ep

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/woozymasta/bcn"
)

// buildDDS writes a single-level DXT1 (or DX10 when dxgi != 0) file around the
// given blocks. Index bits are filled with a fixed pattern.
func buildDDS(tb testing.TB, width, height int, blocks []Block, dxgi uint32) []byte {
	tb.Helper()

	hdr := makeDDSHeader(uint32(width), uint32(height), 1, ContainerDDS) //nolint:gosec // test sizes
	if dxgi != 0 {
		hdr.PixelFormat.FourCC = fourCCDX10
	}

	var buf bytes.Buffer
	if err := bcn.WriteDDSMagic(&buf); err != nil {
		tb.Fatalf("WriteDDSMagic: %v", err)
	}
	if err := bcn.WriteDDSHeader(&buf, hdr); err != nil {
		tb.Fatalf("WriteDDSHeader: %v", err)
	}
	if dxgi != 0 {
		// dxgiFormat, resourceDimension (texture2d), miscFlag, arraySize, miscFlags2
		for _, v := range []uint32{dxgi, 3, 0, 1, 0} {
			_ = binary.Write(&buf, binary.LittleEndian, v)
		}
	}
	buf.Write(blockPayload(blocks))

	return buf.Bytes()
}

func blockPayload(blocks []Block) []byte {
	out := make([]byte, 0, len(blocks)*BlockSize)
	for _, b := range blocks {
		out = binary.LittleEndian.AppendUint16(out, uint16(b.Low))
		out = binary.LittleEndian.AppendUint16(out, uint16(b.High))
		out = append(out, 0xe4, 0xe4, 0xe4, 0xe4)
	}
	return out
}

// patternBlocks returns n deterministic blocks with a mix of ordered and
// unordered endpoint pairs.
func patternBlocks(n int) []Block {
	blocks := make([]Block, n)
	for i := range blocks {
		a := RGB565((i*7919 + 1013) & 0xffff)   //nolint:gosec // bounded by mask
		b := RGB565((i*40503 + 12345) & 0xffff) //nolint:gosec // bounded by mask
		if i%5 == 0 {
			b = a
		}
		blocks[i] = Block{Low: a, High: b}
	}
	return blocks
}
