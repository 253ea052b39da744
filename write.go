package bc1ep

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/bcn"
)

const maxInt32 = int(^uint32(0) >> 1)

// WriteOptions configures BC1 texture output.
type WriteOptions struct {
	// Container selects DDS or EDDS; ContainerAuto follows the file extension.
	Container Container
	// MaxMipMaps limits the mip chain; 0 means full chain, 1 writes only the base level.
	MaxMipMaps int
	// Compress stores EDDS mips as LZ4 chunk streams when that saves space.
	Compress bool
	// EncodeOptions are passed to the BCn encoder.
	EncodeOptions *bcn.EncodeOptions
}

// ContainerForPath maps a .edds extension to ContainerEDDS and anything else to ContainerDDS.
func ContainerForPath(path string) Container {
	if strings.EqualFold(filepath.Ext(path), ".edds") {
		return ContainerEDDS
	}
	return ContainerDDS
}

// WriteBC1 encodes img to BC1 and writes it as a DDS or EDDS texture.
func WriteBC1(img image.Image, path string, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{MaxMipMaps: 1}
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	levels, err := mipLevels(width, height, opts.MaxMipMaps)
	if err != nil {
		return err
	}

	payloads := make([][]byte, 0, levels)
	encode := func(mip image.Image) error {
		data, _, _, err := bcn.EncodeImageWithOptions(mip, bcn.FormatDXT1, opts.EncodeOptions)
		if err != nil {
			return fmt.Errorf("%w: mipmap %d: %v", ErrEncodeImage, len(payloads), err)
		}
		payloads = append(payloads, data)
		return nil
	}

	if levels == 1 {
		if err := encode(img); err != nil {
			return err
		}
	} else {
		mips := bcn.GenerateMipmaps(img, false)
		for i := 0; i < len(mips) && i < levels; i++ {
			if err := encode(mips[i]); err != nil {
				return err
			}
		}
	}

	container := opts.Container
	if container == ContainerAuto {
		container = ContainerForPath(path)
	}

	return WriteBC1FromBlocks(path, container, width, height, payloads, opts.Compress)
}

// WriteBC1FromBlocks writes pre-encoded BC1 mip payloads ordered from largest
// to smallest.
func WriteBC1FromBlocks(path string, container Container, width, height int, mipmaps [][]byte, compress bool) error {
	if len(mipmaps) == 0 {
		return fmt.Errorf("%w: no mipmaps", ErrWriteBlockData)
	}

	w32, err := u32FromInt(width)
	if err != nil {
		return err
	}
	h32, err := u32FromInt(height)
	if err != nil {
		return err
	}

	for i, mip := range mipmaps {
		want := blockDataLength(mipDimension(width, i), mipDimension(height, i))
		if len(mip) != want {
			return fmt.Errorf("%w: mipmap %d: expected %d bytes, got %d", ErrTruncated, i, want, len(mip))
		}
	}

	header := makeDDSHeader(w32, h32, uint32(len(mipmaps)), container) // #nosec G115 -- at most 11 levels

	var blocks []*mipBlock
	if container == ContainerEDDS {
		blocks = make([]*mipBlock, len(mipmaps))
		for i, mip := range mipmaps {
			if compress {
				if blocks[i], err = compressBlock(mip); err != nil {
					return fmt.Errorf("%w: mipmap %d: %v", ErrLZ4Compress, i, err)
				}
				continue
			}
			size, err := i32FromInt(len(mip))
			if err != nil {
				return err
			}
			blocks[i] = &mipBlock{Magic: BlockMagicCOPY, Size: size, Data: mip}
		}
	}

	// write next to the target and rename, so a failure leaves no partial texture
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	tmpName := f.Name()
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmpName)
	}()

	w := bufio.NewWriter(f)
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}

	if blocks == nil {
		for i, mip := range mipmaps {
			if _, err := w.Write(mip); err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
			}
		}
	} else {
		// EDDS tables and bodies run from the smallest level to the largest
		for i := len(blocks) - 1; i >= 0; i-- {
			if _, err := w.WriteString(blocks[i].Magic); err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
			}
			if err := binary.Write(w, binary.LittleEndian, blocks[i].Size); err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
			}
		}
		for i := len(blocks) - 1; i >= 0; i-- {
			if err := writeBlockData(w, blocks[i]); err != nil {
				return fmt.Errorf("%w: mipmap %d: %v", ErrWriteBlockData, i, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockData, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	return nil
}

// mipLevels returns the mip count for the dimensions, capped by limit when limit > 0.
func mipLevels(width, height, limit int) (int, error) {
	w, err := u32FromInt(width)
	if err != nil {
		return 0, err
	}
	h, err := u32FromInt(height)
	if err != nil {
		return 0, err
	}

	count := 1
	for w > 1 || h > 1 {
		count++
		w = max(w/2, 1)
		h = max(h/2, 1)
	}
	count = min(count, 11)
	if limit > 0 {
		count = min(count, limit)
	}

	return count, nil
}

func mipDimension(base, level int) int {
	return max(base>>level, 1)
}

func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}
	return int32(n), nil
}

func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > uint64(^uint32(0)) {
		return 0, ErrSizeOverflow
	}
	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}
