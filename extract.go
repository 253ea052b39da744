package bc1ep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Extraction is the full result of running the pipeline on one texture.
type Extraction struct {
	Header    *Header
	Container Container
	Grid      Grid
	Blocks    []Block
	Dataset   *Dataset

	// Payload is the BC1 data of the base level.
	Payload []byte
}

// Extract parses a DDS or EDDS buffer and assembles its endpoint dataset.
func Extract(buf []byte, opts Options) (*Extraction, error) {
	hdr, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	container := opts.Container
	if container == ContainerAuto {
		container = ContainerDDS
		if looksLikeEDDS(buf, hdr) {
			container = ContainerEDDS
		}
	}

	data, offset := buf, hdr.DataOffset
	if container == ContainerEDDS {
		if data, err = unwrapEDDS(buf, hdr); err != nil {
			return nil, err
		}
		offset = 0
	}

	blocks, grid, err := DecodeBlocks(data, offset, int(hdr.Width), int(hdr.Height))
	if err != nil {
		return nil, err
	}

	return &Extraction{
		Header:    hdr,
		Container: container,
		Grid:      grid,
		Blocks:    blocks,
		Dataset:   Build(hdr, grid, blocks, opts),
		Payload:   data[offset : offset+grid.ByteLen()],
	}, nil
}

// LoadFile reads path and runs Extract on it. When opts.Source is empty the
// absolute path is recorded as the provenance.
func LoadFile(path string, opts Options) (*Extraction, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrIO, path, err)
	}

	buf, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, abs)
		}
		return nil, fmt.Errorf("%w: read %q: %v", ErrIO, abs, err)
	}

	if opts.Source == "" {
		opts.Source = abs
	}
	if opts.Container == ContainerAuto && ContainerForPath(abs) == ContainerEDDS {
		opts.Container = ContainerEDDS
	}

	return Extract(buf, opts)
}

// ExtractFile extracts path and writes <stem>_endpoints.<ext> into outDir
// (the source directory when outDir is empty). It returns the written path.
func ExtractFile(path, outDir string, opts Options, enc Encoding) (string, error) {
	ext, err := LoadFile(path, opts)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrIO, path, err)
	}
	if outDir != "" {
		if outDir, err = filepath.Abs(outDir); err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrIO, outDir, err)
		}
	}

	return WriteDataset(ext.Dataset, abs, outDir, enc)
}

// FileResult is the outcome for one input of ExtractFiles.
type FileResult struct {
	Input  string
	Output string
	Err    error
}

// ExtractFiles runs ExtractFile for every path using up to workers
// goroutines (NumCPU when workers <= 0). Results keep the input order.
// Files not yet started when ctx is done report ctx.Err().
func ExtractFiles(ctx context.Context, paths []string, outDir string, opts Options, enc Encoding, workers int) []FileResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(min(workers, len(paths)), 1)

	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out, err := ExtractFile(paths[i], outDir, opts, enc)
				results[i] = FileResult{Input: paths[i], Output: out, Err: err}
			}
		}()
	}

	next := 0
feed:
	for ; next < len(paths); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	for j := next; j < len(paths); j++ {
		results[j] = FileResult{Input: paths[j], Err: ctx.Err()}
	}
	wg.Wait()

	return results
}
