package bc1ep

import (
	"encoding/binary"
	"fmt"
)

// byteReader is a little-endian cursor over an in-memory buffer.
// Every read is bounds checked and fails with ErrShortRead instead of panicking.
type byteReader struct {
	buf []byte
	off int
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf}
}

// Remaining returns the number of unread bytes.
func (r *byteReader) Remaining() int {
	return len(r.buf) - r.off
}

// Offset returns the absolute cursor position.
func (r *byteReader) Offset() int {
	return r.off
}

// Seek moves the cursor to an absolute offset within the buffer.
func (r *byteReader) Seek(off int) error {
	if off < 0 || off > len(r.buf) {
		return fmt.Errorf("%w: seek to %d of %d", ErrShortRead, off, len(r.buf))
	}
	r.off = off
	return nil
}

// Bytes returns the next n bytes without copying.
func (r *byteReader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at %d, have %d", ErrShortRead, n, r.off, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (r *byteReader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

func (r *byteReader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *byteReader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) Int32() (int32, error) {
	v, err := r.Uint32()
	// #nosec G115 -- two's complement reinterpretation.
	return int32(v), err
}
