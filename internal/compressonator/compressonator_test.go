package compressonator

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		job  Job
		want []string
	}{
		{
			name: "gpu",
			job:  Job{Input: "in.png", Output: "out.dds", Format: "BC1", Quality: 0.85, UseGPU: true},
			want: []string{"-fd", "BC1", "-Quality", "0.85", "-EncodeWith", "GPU", "-nomipmap", "in.png", "out.dds"},
		},
		{
			name: "cpu-default-format",
			job:  Job{Input: "a.jpg", Output: "a.dds", Quality: 1},
			want: []string{"-fd", "BC1", "-Quality", "1", "-nomipmap", "a.jpg", "a.dds"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.job.Args(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Args() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     Job
		wantErr error
	}{
		{name: "no-tool", job: Job{Quality: 0.5}, wantErr: ErrNoTool},
		{name: "too-low", job: Job{CLIPath: "x", Quality: 0.01}, wantErr: ErrQualityRange},
		{name: "too-high", job: Job{CLIPath: "x", Quality: 1.5}, wantErr: ErrQualityRange},
		{name: "ok-min", job: Job{CLIPath: "x", Quality: 0.05}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.job.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRunFailure(t *testing.T) {
	t.Parallel()

	falsePath, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	job := Job{CLIPath: falsePath, Input: "in.png", Output: filepath.Join(t.TempDir(), "out.dds"), Quality: 0.5}
	if _, err := job.Run(context.Background()); !errors.Is(err, ErrToolFailed) {
		t.Fatalf("expected ErrToolFailed, got %v", err)
	}
}
