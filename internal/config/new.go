package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atlanticdynamic/kgames/internal/config/errz"
	"github.com/atlanticdynamic/kgames/internal/interpolation"
	"github.com/pelletier/go-toml/v2"
)

// NewConfig loads configuration from a TOML file
func NewConfig(filePath string) (*Config, error) {
	if ext := filepath.Ext(filePath); ext != ".toml" {
		return nil, fmt.Errorf("%w: unsupported config extension: '%s'", errz.ErrFailedToLoadConfig, ext)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}
	return NewConfigFromBytes(data)
}

// NewConfigFromBytes loads configuration from TOML bytes
func NewConfigFromBytes(data []byte) (*Config, error) {
	return NewConfigFromReader(bytes.NewReader(data))
}

// NewConfigFromReader loads configuration from an io.Reader providing TOML data
func NewConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config data: %w", errz.ErrFailedToLoadConfig, err)
	}

	// First, extract just the version to check compatibility
	var versionCheck struct {
		Version string `toml:"version"`
	}
	if err := toml.Unmarshal(data, &versionCheck); err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}
	if versionCheck.Version == "" {
		versionCheck.Version = VersionLatest
	}
	if versionCheck.Version != VersionLatest {
		return nil, fmt.Errorf("%w: %s", errz.ErrUnsupportedConfigVer, versionCheck.Version)
	}

	// Omitted fields keep their defaults
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}
	cfg.Version = versionCheck.Version

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToValidateConfig, err)
	}
	return cfg, nil
}

// Interpolate expands ${VAR:default} references in tagged path fields.
func (c *Config) Interpolate() error {
	if err := interpolation.InterpolateStruct(&c.Dirs); err != nil {
		return fmt.Errorf("interpolation failed for dirs: %w", err)
	}
	if err := interpolation.InterpolateStruct(&c.Logging); err != nil {
		return fmt.Errorf("interpolation failed for logging: %w", err)
	}
	return nil
}
