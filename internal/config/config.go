// Package config resolves the steg command line defaults from an optional YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the settings a command line invocation falls back to when a flag is not
// given.
type Config struct {
	Key       string `yaml:"key"`
	Algorithm string `yaml:"algorithm"`
	Output    string `yaml:"output"`
	OutDir    string `yaml:"out_dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Key:       "",
		Algorithm: "pattern",
		Output:    "steps",
		OutDir:    "",
	}
}

// Load resolves the configuration from defaults, the YAML file at path (skipped when path is
// empty or the file does not exist), and finally STEG_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

type fileConfig struct {
	Key       *string `yaml:"key"`
	Algorithm *string `yaml:"algorithm"`
	Output    *string `yaml:"output"`
	OutDir    *string `yaml:"out_dir"`
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Key != nil {
		cfg.Key = *fc.Key
	}
	if fc.Algorithm != nil {
		cfg.Algorithm = strings.TrimSpace(*fc.Algorithm)
	}
	if fc.Output != nil {
		cfg.Output = strings.TrimSpace(*fc.Output)
	}
	if fc.OutDir != nil {
		cfg.OutDir = strings.TrimSpace(*fc.OutDir)
	}
	return nil
}

// Keys are compared byte for byte, so STEG_KEY is taken verbatim.
func applyEnvOverrides(cfg *Config) {
	if val, ok := os.LookupEnv("STEG_KEY"); ok && val != "" {
		cfg.Key = val
	}
	if val := strings.TrimSpace(os.Getenv("STEG_ALGO")); val != "" {
		cfg.Algorithm = val
	}
	if val := strings.TrimSpace(os.Getenv("STEG_OUTPUT")); val != "" {
		cfg.Output = val
	}
	if val := strings.TrimSpace(os.Getenv("STEG_OUT_DIR")); val != "" {
		cfg.OutDir = val
	}
}
