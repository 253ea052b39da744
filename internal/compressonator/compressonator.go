// Package compressonator runs the AMD Compressonator CLI to produce BCn
// textures.
package compressonator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

const (
	// MinQuality and MaxQuality bound the -Quality argument.
	MinQuality = 0.05
	MaxQuality = 1.0

	// EnvPath overrides the CLI location.
	EnvPath = "COMPRESSONATOR_PATH"
)

var (
	// ErrQualityRange indicates a quality outside [MinQuality, MaxQuality].
	ErrQualityRange = errors.New("quality must be between 0.05 and 1.0")
	// ErrToolFailed indicates the CLI exited with a non-zero status.
	ErrToolFailed = errors.New("compressonator failed")
	// ErrNoTool indicates no CLI path was configured.
	ErrNoTool = errors.New("compressonator path not set")
)

// Job describes one compression run.
type Job struct {
	CLIPath string
	Input   string
	Output  string
	Format  string
	Quality float64
	UseGPU  bool
}

// Result holds the captured process output.
type Result struct {
	Stdout string
	Stderr string
}

// Validate checks the job before any process is started.
func (j *Job) Validate() error {
	if j.CLIPath == "" {
		return ErrNoTool
	}
	if j.Quality < MinQuality || j.Quality > MaxQuality {
		return fmt.Errorf("%w: %v", ErrQualityRange, j.Quality)
	}
	return nil
}

// Args returns the command line passed to the CLI, excluding the program.
func (j *Job) Args() []string {
	format := j.Format
	if format == "" {
		format = "BC1"
	}
	args := []string{"-fd", format, "-Quality", strconv.FormatFloat(j.Quality, 'f', -1, 64)}
	if j.UseGPU {
		args = append(args, "-EncodeWith", "GPU")
	}
	return append(args, "-nomipmap", j.Input, j.Output)
}

// Run launches the CLI and waits for it. A non-zero exit is reported as
// ErrToolFailed with the captured stderr.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, j.CLIPath, j.Args()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("%w: exit %d: %s", ErrToolFailed, exitErr.ExitCode(), res.Stderr)
		}
		return res, fmt.Errorf("%w: %v", ErrToolFailed, err)
	}

	return res, nil
}
