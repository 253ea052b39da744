package bc1ep

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestNewGridTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h         int
		wantX, wantY int
	}{
		{name: "4x4", w: 4, h: 4, wantX: 1, wantY: 1},
		{name: "5x7", w: 5, h: 7, wantX: 2, wantY: 2},
		{name: "1x1", w: 1, h: 1, wantX: 1, wantY: 1},
		{name: "16x8", w: 16, h: 8, wantX: 4, wantY: 2},
		{name: "0x0", w: 0, h: 0, wantX: 0, wantY: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := NewGrid(tc.w, tc.h)
			if g.BlocksX != tc.wantX || g.BlocksY != tc.wantY {
				t.Fatalf("NewGrid(%d,%d) = %+v", tc.w, tc.h, g)
			}
			if g.Total() != tc.wantX*tc.wantY || g.ByteLen() != g.Total()*BlockSize {
				t.Fatalf("inconsistent totals: %+v", g)
			}
		})
	}
}

func TestDecodeBlocksRowMajor(t *testing.T) {
	t.Parallel()

	want := patternBlocks(6)
	buf := buildDDS(t, 12, 8, want, 0)
	hdr, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	got, grid, err := DecodeBlocks(buf, hdr.DataOffset, 12, 8)
	if err != nil {
		t.Fatalf("DecodeBlocks: %v", err)
	}
	if grid.Total() != len(got) || len(got) != len(want) {
		t.Fatalf("got %d blocks, grid total %d, want %d", len(got), grid.Total(), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeBlocksTruncated(t *testing.T) {
	t.Parallel()

	buf := buildDDS(t, 8, 8, patternBlocks(4), 0)
	offset := MinFileSize
	maxU32 := uint32(math.MaxUint32)

	tests := []struct {
		name          string
		buf           []byte
		offset        int
		width, height int
	}{
		{name: "last-block-cut", buf: buf[:len(buf)-1], offset: offset, width: 8, height: 8},
		{name: "offset-past-end", buf: buf, offset: len(buf) + 1, width: 8, height: 8},
		{name: "max-u32-dimensions", buf: buf, offset: offset, width: int(maxU32), height: int(maxU32)},
		{name: "max-int-dimensions", buf: buf, offset: offset, width: math.MaxInt, height: math.MaxInt},
		{name: "wide-strip", buf: buf, offset: offset, width: math.MaxInt32, height: 4},
		{name: "tall-tiny-buffer", buf: buf[:offset+BlockSize], offset: offset, width: 4, height: 1 << 20},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeBlocks(tc.buf, tc.offset, tc.width, tc.height)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("expected ErrTruncated, got %v", err)
			}
		})
	}
}

func TestExtractOversizedHeader(t *testing.T) {
	t.Parallel()

	for _, container := range []Container{ContainerAuto, ContainerDDS, ContainerEDDS} {
		buf := buildDDS(t, 4, 4, patternBlocks(1), 0)
		binary.LittleEndian.PutUint32(buf[4+8:], math.MaxUint32)  // height
		binary.LittleEndian.PutUint32(buf[4+12:], math.MaxUint32) // width

		_, err := Extract(buf, Options{Container: container})
		if err == nil {
			t.Fatalf("%s: expected an error", container)
		}
		if container != ContainerEDDS && !errors.Is(err, ErrTruncated) {
			t.Fatalf("%s: expected ErrTruncated, got %v", container, err)
		}
	}
}

func TestBlocksIteratorStops(t *testing.T) {
	t.Parallel()

	grid := NewGrid(16, 16)
	seq, err := grid.Blocks(blockPayload(patternBlocks(16)), 0)
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}

	seen := 0
	for i := range seq {
		if i == 3 {
			break
		}
		seen++
	}
	if seen != 3 {
		t.Fatalf("expected to stop after 3 blocks, saw %d", seen)
	}
}
