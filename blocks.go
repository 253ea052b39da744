package bc1ep

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// BlockSize is the size of one BC1 block in bytes.
const BlockSize = 8

// Block holds the two endpoints of one 4x4 BC1 block in stored order.
type Block struct {
	Low  RGB565
	High RGB565
}

// Ordered reports whether c0 > c1, i.e. the block uses four-color mode.
func (b Block) Ordered() bool {
	return b.Low > b.High
}

// Grid is the block layout derived from the pixel dimensions.
type Grid struct {
	BlocksX int
	BlocksY int
}

// NewGrid rounds the pixel dimensions up to whole 4x4 blocks.
func NewGrid(width, height int) Grid {
	return Grid{
		BlocksX: (width + 3) / 4,
		BlocksY: (height + 3) / 4,
	}
}

// Total returns the number of blocks in the grid.
func (g Grid) Total() int {
	return g.BlocksX * g.BlocksY
}

// ByteLen returns the size of the block payload.
func (g Grid) ByteLen() int {
	return g.Total() * BlockSize
}

// checkedByteLen is ByteLen without wraparound. It reports false for
// negative dimensions and for payloads that do not fit in an int.
func (g Grid) checkedByteLen() (int, bool) {
	if g.BlocksX < 0 || g.BlocksY < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(g.BlocksX), uint64(g.BlocksY))
	if hi != 0 || lo > uint64(math.MaxInt/BlockSize) {
		return 0, false
	}
	return int(lo) * BlockSize, true
}

// Coords returns the column and row of the i-th block in row-major order.
func (g Grid) Coords(i int) (bx, by int) {
	if g.BlocksX == 0 {
		return 0, 0
	}
	return i % g.BlocksX, i / g.BlocksX
}

// Normalized maps a block position onto [0,1]x[0,1]. Axes with a single
// block map to 0.
func (g Grid) Normalized(bx, by int) (s, t float64) {
	if g.BlocksX > 1 {
		s = float64(bx) / float64(g.BlocksX-1)
	}
	if g.BlocksY > 1 {
		t = float64(by) / float64(g.BlocksY-1)
	}
	return s, t
}

// DecodeBlocks reads the endpoints of every block of a width x height BC1
// surface starting at offset. Blocks are returned in row-major order.
func DecodeBlocks(buf []byte, offset, width, height int) ([]Block, Grid, error) {
	grid := NewGrid(width, height)
	seq, err := grid.Blocks(buf, offset)
	if err != nil {
		return nil, grid, err
	}

	blocks := make([]Block, 0, grid.Total())
	for _, b := range seq {
		blocks = append(blocks, b)
	}

	return blocks, grid, nil
}

// Blocks validates that buf holds the whole grid after offset and returns a
// single-pass iterator over its blocks in row-major order.
func (g Grid) Blocks(buf []byte, offset int) (iter.Seq2[int, Block], error) {
	r := newByteReader(buf)
	if err := r.Seek(offset); err != nil {
		return nil, fmt.Errorf("%w: data offset %d beyond %d bytes", ErrTruncated, offset, len(buf))
	}
	need, ok := g.checkedByteLen()
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d blocks exceed any buffer", ErrTruncated, g.BlocksX, g.BlocksY)
	}
	if r.Remaining() < need {
		return nil, fmt.Errorf("%w: need %d bytes for %d blocks, have %d", ErrTruncated, need, g.Total(), r.Remaining())
	}

	total := g.Total()
	return func(yield func(int, Block) bool) {
		for i := 0; i < total; i++ {
			raw, err := r.Bytes(BlockSize)
			if err != nil {
				return
			}
			// bytes 4..7 are the 2-bit texel indices
			b := Block{
				Low:  RGB565(uint16(raw[0]) | uint16(raw[1])<<8),
				High: RGB565(uint16(raw[2]) | uint16(raw[3])<<8),
			}
			if !yield(i, b) {
				return
			}
		}
	}, nil
}
