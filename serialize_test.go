package bc1ep

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func compactJSON(tb testing.TB, data []byte) string {
	tb.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		tb.Fatalf("Compact: %v", err)
	}
	return buf.String()
}

func TestMarshalSchema(t *testing.T) {
	t.Parallel()

	buf := buildDDS(t, 8, 4, []Block{{Low: 0xffff, High: 0}, {Low: 0x0001, High: 0x0002}}, 0)
	ds := mustExtract(t, buf, Options{IncludeMeta: true, Source: "tex.dds"}).Dataset

	data, err := Marshal(ds, EncodingJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for _, key := range []string{
		`"inputs"`, `"st"`, `"bxby"`,
		`"targets"`, `"ep_rgb565"`, `"ep_q01"`,
		`"flags"`, `"c0_gt_c1"`,
		`"meta"`, `"block_order": "row_major"`, `"format": "BC1"`,
		`"num_blocks_total": 2`, `"num_blocks_kept": 2`, `"filtered_c0_gt_c1": false`, `"source_image": "tex.dds"`,
	} {
		if !bytes.Contains(data, []byte(key)) {
			t.Fatalf("missing %s in output:\n%s", key, data)
		}
	}

	// integral coordinates and unit values stay floats
	compact := compactJSON(t, data)
	for _, key := range []string{
		`"st":[[0.0,0.0],[1.0,0.0]]`,
		`"bxby":[[0,0],[1,0]]`,
		`"ep_q01":[[1.0,1.0,1.0,0.0,0.0,0.0],`,
	} {
		if !strings.Contains(compact, key) {
			t.Fatalf("missing %s in output:\n%s", key, compact)
		}
	}

	order := []string{`"inputs"`, `"targets"`, `"flags"`, `"meta"`}
	last := -1
	for _, key := range order {
		idx := bytes.Index(data, []byte(key))
		if idx < last {
			t.Fatalf("%s out of order", key)
		}
		last = idx
	}
}

func TestMarshalDeterministic(t *testing.T) {
	t.Parallel()

	buf := buildDDS(t, 64, 64, patternBlocks(256), 0)
	a, err := Marshal(mustExtract(t, buf, DefaultOptions()).Dataset, EncodingJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(mustExtract(t, bytes.Clone(buf), DefaultOptions()).Dataset, EncodingJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("output differs between runs")
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		dir  string
		enc  Encoding
		want string
	}{
		{name: "same-dir", src: filepath.Join("a", "tex.dds"), want: filepath.Join("a", "tex_endpoints.json")},
		{name: "out-dir", src: filepath.Join("a", "tex.dds"), dir: "out", want: filepath.Join("out", "tex_endpoints.json")},
		{name: "zstd", src: "tex.edds", dir: "out", enc: EncodingJSONZstd, want: filepath.Join("out", "tex_endpoints.json.zst")},
		{name: "dotted", src: "my.tex.dds", enc: EncodingJSON, want: "my.tex_endpoints.json"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := OutputPath(tc.src, tc.dir, tc.enc); got != tc.want {
				t.Fatalf("OutputPath = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	t.Parallel()

	ds := mustExtract(t, buildDDS(t, 32, 16, patternBlocks(32), 0), Options{IncludeMeta: true, Source: "x"}).Dataset
	dir := filepath.Join(t.TempDir(), "nested", "out")

	for _, enc := range []Encoding{EncodingJSON, EncodingJSONZstd} {
		path, err := WriteDataset(ds, "/textures/tex.dds", dir, enc)
		if err != nil {
			t.Fatalf("WriteDataset(%s): %v", enc, err)
		}
		if !strings.HasSuffix(path, "tex_endpoints."+string(enc)) {
			t.Fatalf("unexpected path %q", path)
		}

		got, err := ReadDataset(path)
		if err != nil {
			t.Fatalf("ReadDataset(%s): %v", enc, err)
		}
		if !reflect.DeepEqual(got, ds) {
			t.Fatalf("%s round trip mismatch", enc)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected exactly the two outputs, found %d entries", len(entries))
	}
}

func TestWriteDatasetIOError(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ds := mustExtract(t, buildDDS(t, 4, 4, patternBlocks(1), 0), Options{}).Dataset
	_, err := WriteDataset(ds, "tex.dds", filepath.Join(blocker, "sub"), EncodingJSON)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Encoding{"": EncodingJSON, "json": EncodingJSON, ".json.zst": EncodingJSONZstd, "zstd": EncodingJSONZstd} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Fatalf("ParseEncoding(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("xml"); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestAppendFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{1.0 / 3.0, "0.3333333333333333"},
		{1e-9, "1e-09"},
	}

	for _, tc := range tests {
		got, err := appendFloat(nil, tc.in)
		if err != nil {
			t.Fatalf("appendFloat(%v): %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Fatalf("appendFloat(%v)=%q want %q", tc.in, got, tc.want)
		}
	}

	if _, err := appendFloat(nil, math.NaN()); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding for NaN, got %v", err)
	}
}

func TestFloatRowsRoundTrip(t *testing.T) {
	t.Parallel()

	buf := buildDDS(t, 12, 8, patternBlocks(6), 0)
	ds := mustExtract(t, buf, DefaultOptions()).Dataset

	data, err := Marshal(ds, EncodingJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data, EncodingJSON)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Inputs.ST, ds.Inputs.ST) || !reflect.DeepEqual(back.Targets.EpQ01, ds.Targets.EpQ01) {
		t.Fatalf("float rows changed after round trip")
	}
}
