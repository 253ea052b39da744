// Package config loads and saves the bc1ep settings file
// (~/.config/bc1ep/config.yaml).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the settings file location.
const EnvConfigPath = "BC1EP_CONFIG"

// Config holds persisted defaults. Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	CompressonatorPath string `yaml:"compressonator_path,omitempty"`
	OutputDir          string `yaml:"output_dir,omitempty"`

	KeepOnlyOrdered *bool    `yaml:"keep_only_ordered,omitempty"`
	IncludeMeta     *bool    `yaml:"include_meta,omitempty"`
	Encoding        string   `yaml:"encoding,omitempty"`
	Quality         *float64 `yaml:"quality,omitempty"`
	UseGPU          *bool    `yaml:"use_gpu,omitempty"`

	ServerAddress string `yaml:"server_address,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	LogFormat     string `yaml:"log_format,omitempty"`
}

// DefaultPath returns the settings path, honoring BC1EP_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bc1ep", "config.yaml")
}

// Load reads the settings file. A missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, replacing any previous file in one step.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Set updates a single key by its YAML name.
func (c *Config) Set(key, value string) error {
	parseBool := func(dst **bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*dst = &b
		return nil
	}

	switch key {
	case "compressonator_path":
		c.CompressonatorPath = value
	case "output_dir":
		c.OutputDir = value
	case "keep_only_ordered":
		return parseBool(&c.KeepOnlyOrdered)
	case "include_meta":
		return parseBool(&c.IncludeMeta)
	case "use_gpu":
		return parseBool(&c.UseGPU)
	case "encoding":
		c.Encoding = value
	case "quality":
		q, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		c.Quality = &q
	case "server_address":
		c.ServerAddress = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
