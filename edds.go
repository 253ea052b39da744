package bc1ep

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS mip body.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS mip body.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024
)

// Container identifies how block data is stored after the DDS headers.
type Container int

const (
	// ContainerAuto picks EDDS when a valid block table follows the headers.
	ContainerAuto Container = iota
	// ContainerDDS stores raw BC1 blocks after the headers.
	ContainerDDS
	// ContainerEDDS stores a COPY/LZ4 block table and mip bodies.
	ContainerEDDS
)

func (c Container) String() string {
	switch c {
	case ContainerDDS:
		return "dds"
	case ContainerEDDS:
		return "edds"
	default:
		return "auto"
	}
}

// ParseContainer maps "dds", "edds" or "auto" to a Container.
func ParseContainer(s string) (Container, error) {
	switch s {
	case "", "auto":
		return ContainerAuto, nil
	case "dds":
		return ContainerDDS, nil
	case "edds":
		return ContainerEDDS, nil
	default:
		return ContainerAuto, fmt.Errorf("unknown container %q", s)
	}
}

// mipBlock is one EDDS mip body.
type mipBlock struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

type mipHeader struct {
	Magic string
	Size  int32
}

// unwrapEDDS returns the BC1 payload of the largest mip level.
func unwrapEDDS(buf []byte, hdr *Header) ([]byte, error) {
	r := newByteReader(buf)
	if err := r.Seek(hdr.DataOffset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockTableRead, err)
	}

	count := hdr.Mipmaps()
	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	// bodies are stored smallest to largest, level 0 is last
	for i := range table[:len(table)-1] {
		if err := r.Skip(int(table[i].Size)); err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %v", ErrBlockBodyRead, i, err)
		}
	}

	last := len(table) - 1
	block, err := readBlockBody(r, table[last])
	if err != nil {
		return nil, fmt.Errorf("%w: mipmap %d: %v", ErrBlockBodyRead, last, err)
	}

	want, ok := NewGrid(int(hdr.Width), int(hdr.Height)).checkedByteLen()
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d", ErrTruncated, hdr.Width, hdr.Height)
	}
	out, err := decompressBlock(block, want)
	if err != nil {
		return nil, fmt.Errorf("%w: mipmap %d: %v", ErrDecompressBlock, last, err)
	}

	return out, nil
}

// looksLikeEDDS reports whether a complete block table whose bodies exactly
// fill the rest of the buffer follows the headers.
func looksLikeEDDS(buf []byte, hdr *Header) bool {
	r := newByteReader(buf)
	if r.Seek(hdr.DataOffset) != nil {
		return false
	}
	table, err := readBlockTable(r, hdr.Mipmaps())
	if err != nil {
		return false
	}

	total := 0
	for _, h := range table {
		total += int(h.Size)
	}
	return total == r.Remaining()
}

func readBlockTable(r *byteReader, mipMapCount uint32) ([]mipHeader, error) {
	if mipMapCount == 0 {
		mipMapCount = 1
	}
	if uint64(mipMapCount)*8 > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d entries, %d bytes left", ErrBlockTableRead, mipMapCount, r.Remaining())
	}

	hdrs := make([]mipHeader, 0, mipMapCount)
	for i := uint32(0); i < mipMapCount; i++ {
		magicBytes, err := r.Bytes(4)
		if err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableRead, i, err)
		}
		size, err := r.Int32()
		if err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableRead, i, err)
		}

		magic := string(magicBytes)
		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, mipHeader{Magic: magic, Size: size})
	}

	return hdrs, nil
}

func readBlockBody(r *byteReader, h mipHeader) (*mipBlock, error) {
	data, err := r.Bytes(int(h.Size))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Magic, err)
	}

	return &mipBlock{Magic: h.Magic, Size: h.Size, Data: data}, nil
}

// writeBlockData writes the mip payload (no table entry).
func writeBlockData(w io.Writer, block *mipBlock) error {
	if block.Magic == BlockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, block.UncompressedSize); err != nil {
			return err
		}
	}
	_, err := w.Write(block.Data)
	return err
}

// compressBlock compresses raw data into an LZ4 chunk stream or falls back to COPY.
func compressBlock(data []byte) (*mipBlock, error) {
	uncompressedSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}

	if len(data) < 1024 {
		return &mipBlock{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	}

	var chunkStream bytes.Buffer
	compressBuf := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for i := 0; i < len(data); i += ChunkSize {
		end := min(i+ChunkSize, len(data))
		srcChunk := data[i:end]

		cn, err := lz4.CompressBlockHC(srcChunk, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(srcChunk))*0.85 {
			return &mipBlock{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		chunkStream.WriteByte(byte(cn))
		chunkStream.WriteByte(byte(cn >> 8))
		chunkStream.WriteByte(byte(cn >> 16))
		if end == len(data) {
			chunkStream.WriteByte(0x80)
		} else {
			chunkStream.WriteByte(0x00)
		}
		chunkStream.Write(compressBuf[:cn])
	}

	compressed := chunkStream.Bytes()
	if float64(4+len(compressed)) > float64(len(data))*0.85 {
		return &mipBlock{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	}

	size, err := i32FromInt(4 + len(compressed))
	if err != nil {
		return nil, err
	}

	return &mipBlock{
		Magic:            BlockMagicLZ4,
		Size:             size,
		UncompressedSize: uncompressedSize,
		Data:             compressed,
	}, nil
}

// decompressBlock inflates an EDDS mip body into raw block data.
func decompressBlock(block *mipBlock, expectedSize int) ([]byte, error) {
	switch block.Magic {
	case BlockMagicCOPY:
		if len(block.Data) != expectedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedSize, len(block.Data))
		}
		out := make([]byte, len(block.Data))
		copy(out, block.Data)
		return out, nil
	case BlockMagicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}

	r := newByteReader(block.Data)
	declared, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("%w: uncompressed size: %v", ErrChunkStreamTruncated, err)
	}
	targetSize := int(declared)
	if targetSize <= 0 || targetSize != expectedSize {
		return nil, fmt.Errorf("%w: declared %d, expected %d", ErrInvalidTargetSize, targetSize, expectedSize)
	}

	const dictCap = 64 * 1024
	dict := make([]byte, dictCap)
	dictSize := 0

	target := make([]byte, targetSize)
	outIdx := 0

	for {
		hdr, err := r.Bytes(4)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk header: %v", ErrChunkStreamTruncated, err)
		}

		cSize := int(hdr[0]) | (int(hdr[1]) << 8) | (int(hdr[2]) << 16)
		flags := hdr[3]
		if (flags &^ 0x80) != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Remaining() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Remaining())
		}
		compressed, _ := r.Bytes(cSize)

		remaining := targetSize - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := target[outIdx : outIdx+min(ChunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict[:dictSize])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		outIdx += n

		decoded := target[outIdx-n : outIdx]
		if len(decoded) >= dictCap {
			copy(dict, decoded[len(decoded)-dictCap:])
			dictSize = dictCap
		} else {
			avail := dictCap - dictSize
			if len(decoded) <= avail {
				copy(dict[dictSize:], decoded)
				dictSize += len(decoded)
			} else {
				shift := len(decoded) - avail
				copy(dict, dict[shift:dictSize])
				copy(dict[dictCap-len(decoded):], decoded)
				dictSize = dictCap
			}
		}

		if (flags & 0x80) != 0 {
			break
		}
	}

	if outIdx != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, outIdx)
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Remaining())
	}

	return target, nil
}
