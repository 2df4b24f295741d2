package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/axdr/schema"
)

const defaultBufferSize = 64 * 1024

// config holds CLI defaults. Flags override the file, the environment
// overrides both. BufferSize caps the buffer encode grows into.
type config struct {
	Format     schema.Format
	LogLevel   string
	SchemaDir  string
	BufferSize int
}

type fileConfig struct {
	Format     string `toml:"format"`
	LogLevel   string `toml:"log_level"`
	SchemaDir  string `toml:"schema_dir"`
	BufferSize int    `toml:"buffer_size"`
}

func defaultConfig() config {
	return config{
		Format:     schema.FormatYAML,
		LogLevel:   "warn",
		BufferSize: defaultBufferSize,
	}
}

// loadConfig reads path over the defaults. Keys absent from the file keep
// their default values.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		f, err := schema.ParseFormat(strings.TrimSpace(raw.Format))
		if err != nil {
			return config{}, fmt.Errorf("parse format: %w", err)
		}
		cfg.Format = f
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("schema_dir") {
		dir := strings.TrimSpace(raw.SchemaDir)
		if dir != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(path), dir)
		}
		cfg.SchemaDir = dir
	}

	if meta.IsDefined("buffer_size") {
		if raw.BufferSize <= 0 {
			return config{}, fmt.Errorf("buffer_size must be positive, got %d", raw.BufferSize)
		}
		cfg.BufferSize = raw.BufferSize
	}

	return cfg, nil
}

// applyEnv overlays AXDR_LOG_LEVEL and AXDR_FORMAT.
func (c *config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("AXDR_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("AXDR_FORMAT")); v != "" {
		f, err := schema.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("AXDR_FORMAT: %w", err)
		}
		c.Format = f
	}
	return nil
}

// schemaPath resolves a relative schema name against SchemaDir when the
// name does not exist as given.
func (c *config) schemaPath(name string) string {
	if c.SchemaDir == "" || filepath.IsAbs(name) {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(c.SchemaDir, name)
}
