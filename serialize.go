package bc1ep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// Encoding selects the on-disk representation of a dataset.
type Encoding string

const (
	// EncodingJSON writes indented JSON.
	EncodingJSON Encoding = "json"
	// EncodingJSONZstd writes indented JSON compressed with zstd.
	EncodingJSONZstd Encoding = "json.zst"

	outputSuffix = "_endpoints"
)

// ParseEncoding accepts "json" and "json.zst"; empty selects JSON.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case "", EncodingJSON:
		return EncodingJSON, nil
	case EncodingJSONZstd, "zst", "zstd":
		return EncodingJSONZstd, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, s)
	}
}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(
			nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// Marshal renders the dataset with a two-space indent. Field order is fixed
// by the Dataset type, so equal datasets always produce equal bytes.
func Marshal(ds *Dataset, enc Encoding) ([]byte, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, err
	}

	switch enc {
	case "", EncodingJSON:
		return data, nil
	case EncodingJSONZstd:
		zenc := zstdEncPool.Get().(*zstd.Encoder)
		defer zstdEncPool.Put(zenc)
		return zenc.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, enc)
	}
}

// Unmarshal parses bytes produced by Marshal.
func Unmarshal(data []byte, enc Encoding) (*Dataset, error) {
	if enc == EncodingJSONZstd {
		zdec := zstdDecPool.Get().(*zstd.Decoder)
		defer zstdDecPool.Put(zdec)
		raw, err := zdec.DecodeAll(data, nil)
		if err != nil {
			return nil, err
		}
		data = raw
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// OutputPath returns <dir>/<stem>_endpoints.<ext>. An empty dir selects the
// directory of src.
func OutputPath(src, dir string, enc Encoding) string {
	if enc == "" {
		enc = EncodingJSON
	}
	if dir == "" {
		dir = filepath.Dir(src)
	}
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+outputSuffix+"."+string(enc))
}

// WriteDataset serializes ds and stores it next to src or inside dir,
// creating dir when needed. The file appears only once fully written.
func WriteDataset(ds *Dataset, src, dir string, enc Encoding) (string, error) {
	data, err := Marshal(ds, enc)
	if err != nil {
		return "", err
	}

	path := OutputPath(src, dir, enc)
	outDir := filepath.Dir(path)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %q: %v", ErrIO, outDir, err)
	}

	tmp, err := os.CreateTemp(outDir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create %q: %v", ErrIO, path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: write %q: %v", ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: write %q: %v", ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("%w: rename %q: %v", ErrIO, path, err)
	}

	return path, nil
}

// ReadDataset loads a dataset file, picking the encoding from its suffix.
func ReadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	enc := EncodingJSON
	if strings.HasSuffix(path, "."+string(EncodingJSONZstd)) {
		enc = EncodingJSONZstd
	}
	return Unmarshal(data, enc)
}
