package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CompressonatorPath != "" || cfg.KeepOnlyOrdered != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	var cfg Config
	for key, value := range map[string]string{
		"compressonator_path": `C:\Compressonator_4.5.52\bin\CLI\compressonatorcli.exe`,
		"keep_only_ordered":   "true",
		"quality":             "0.85",
		"encoding":            "json.zst",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.CompressonatorPath != cfg.CompressonatorPath {
		t.Fatalf("compressonator_path = %q", got.CompressonatorPath)
	}
	if got.KeepOnlyOrdered == nil || !*got.KeepOnlyOrdered {
		t.Fatalf("keep_only_ordered not persisted: %v", got.KeepOnlyOrdered)
	}
	if got.Quality == nil || *got.Quality != 0.85 {
		t.Fatalf("quality not persisted: %v", got.Quality)
	}
	if got.IncludeMeta != nil {
		t.Fatalf("include_meta should stay unset")
	}
	if got.Encoding != "json.zst" {
		t.Fatalf("encoding = %q", got.Encoding)
	}
}

func TestSetErrors(t *testing.T) {
	t.Parallel()

	var cfg Config
	if err := cfg.Set("bogus", "1"); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if err := cfg.Set("use_gpu", "maybe"); err == nil {
		t.Fatal("expected error for bad bool")
	}
	if err := cfg.Set("quality", "high"); err == nil {
		t.Fatal("expected error for bad float")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("quality: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
