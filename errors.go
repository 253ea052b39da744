package bc1ep

import "errors"

var (
	// ErrInputNotFound indicates the source file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrTooShort indicates the buffer is smaller than the fixed DDS header.
	ErrTooShort = errors.New("buffer too short for DDS header")
	// ErrBadMagic indicates the buffer does not start with "DDS ".
	ErrBadMagic = errors.New("missing DDS magic")
	// ErrBadHeaderSize indicates an unexpected DDS header size field.
	ErrBadHeaderSize = errors.New("unexpected DDS header size")
	// ErrUnsupportedFourCC indicates a pixel format other than DXT1 or DX10.
	ErrUnsupportedFourCC = errors.New("unsupported DDS FourCC for BC1 extraction")
	// ErrUnsupportedDxgiFormat indicates a DX10 header that is not BC1.
	ErrUnsupportedDxgiFormat = errors.New("DDS DX10 format is not BC1")
	// ErrTruncated indicates the block data is shorter than the block grid.
	ErrTruncated = errors.New("DDS truncated: not enough BC1 blocks")
	// ErrIO indicates reading the source or writing the dataset failed.
	ErrIO = errors.New("i/o error")

	// ErrShortRead indicates a binary read past the end of the buffer.
	ErrShortRead = errors.New("short read")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidEncoding indicates an unknown dataset encoding.
	ErrInvalidEncoding = errors.New("invalid dataset encoding")

	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = errors.New("invalid target size")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
	// ErrBlockTableUnknownMagic indicates unknown block magic in table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates invalid size in block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockTableRead indicates the block table is truncated.
	ErrBlockTableRead = errors.New("reading block table failed")
	// ErrBlockBodyRead indicates block body read failed.
	ErrBlockBodyRead = errors.New("reading block body failed")
	// ErrDecompressBlock indicates block decompression failed.
	ErrDecompressBlock = errors.New("decompress block failed")

	// ErrDecodeImage indicates BC1 decoding for preview failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates BC1 encoding of the source image failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrWriteDDSMagic indicates DDS magic write failed.
	ErrWriteDDSMagic = errors.New("writing DDS magic failed")
	// ErrWriteDDSHeader indicates DDS header write failed.
	ErrWriteDDSHeader = errors.New("writing DDS header failed")
	// ErrWriteBlockData indicates block data write failed.
	ErrWriteBlockData = errors.New("writing block data failed")
)
