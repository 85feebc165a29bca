// Package config loads kode project settings from kode.yaml or kode.toml.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// FileNames are searched in order by Find.
var FileNames = []string{"kode.yaml", "kode.yml", "kode.toml"}

type Config struct {
	// ModuleDir is the import base directory. Relative paths are resolved
	// against the directory of the config file.
	ModuleDir       string `yaml:"module_dir" toml:"module_dir"`
	MaxCallDepth    int    `yaml:"max_call_depth" toml:"max_call_depth"`
	ModuleCacheSize int    `yaml:"module_cache_size" toml:"module_cache_size"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
}

func Default() Config {
	return Config{
		MaxCallDepth:    10000,
		ModuleCacheSize: 64,
		LogLevel:        "error",
	}
}

// Unknown keys are rejected so that typos do not go unnoticed.
var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load reads a YAML or TOML config file, chosen by extension. Fields missing
// from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bufio.NewReader(f))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%s: unsupported config format", path)
	}

	if cfg.ModuleDir != "" && !filepath.IsAbs(cfg.ModuleDir) {
		cfg.ModuleDir = filepath.Join(filepath.Dir(path), cfg.ModuleDir)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}
	if c.ModuleCacheSize < 0 {
		return fmt.Errorf("module_cache_size must not be negative, got %d", c.ModuleCacheSize)
	}
	return nil
}

// Find returns the first config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
