package bc1ep

import (
	"path/filepath"
	"testing"
)

// benchTexture builds a 1024x1024 BC1 texture (65536 blocks).
func benchTexture(b *testing.B) []byte {
	b.Helper()
	return buildDDS(b, 1024, 1024, patternBlocks(256*256), 0)
}

func BenchmarkExtract(b *testing.B) {
	buf := benchTexture(b)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Extract(buf, DefaultOptions()); err != nil {
			b.Fatalf("Extract: %v", err)
		}
	}
}

func BenchmarkExtractFiltered(b *testing.B) {
	buf := benchTexture(b)
	opts := Options{IncludeMeta: true, KeepOnlyOrdered: true}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Extract(buf, opts); err != nil {
			b.Fatalf("Extract: %v", err)
		}
	}
}

func BenchmarkMarshal(b *testing.B) {
	ext, err := Extract(benchTexture(b), DefaultOptions())
	if err != nil {
		b.Fatalf("Extract: %v", err)
	}

	for _, enc := range []Encoding{EncodingJSON, EncodingJSONZstd} {
		b.Run(string(enc), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Marshal(ext.Dataset, enc); err != nil {
					b.Fatalf("Marshal: %v", err)
				}
			}
		})
	}
}

func BenchmarkExtractFileEDDS(b *testing.B) {
	blocks := patternBlocks(128 * 128)
	path := filepath.Join(b.TempDir(), "bench.edds")
	if err := WriteBC1FromBlocks(path, ContainerEDDS, 512, 512, [][]byte{blockPayload(blocks)}, true); err != nil {
		b.Fatalf("prepare input file: %v", err)
	}
	outDir := b.TempDir()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ExtractFile(path, outDir, DefaultOptions(), EncodingJSON); err != nil {
			b.Fatalf("ExtractFile: %v", err)
		}
	}
}
