package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/scorecli/internal/factory"
)

// Environment variables read by DefaultConfig
const (
	envSaveDir = "SCORECLI_SAVE_DIR"
	envConfig  = "SCORECLI_CONFIG"
	envOutput  = "SCORECLI_OUTPUT"
	envStorage = "SCORECLI_STORAGE"
)

// Config holds CLI configuration
type Config struct {
	SaveDir    string
	ConfigFile string
	Output     string
	Storage    string
	Atomic     bool
	Verbose    bool
}

// fileConfig is the YAML config file layout
type fileConfig struct {
	SaveDir      string `yaml:"save_dir"`
	Output       string `yaml:"output"`
	Storage      string `yaml:"storage"`
	AtomicWrites *bool  `yaml:"atomic_writes"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		SaveDir:    os.Getenv(envSaveDir),
		ConfigFile: getEnvOrDefault(envConfig, defaultConfigFile()),
		Output:     getEnvOrDefault(envOutput, "text"),
		Storage:    getEnvOrDefault(envStorage, factory.StorageTypeFile),
		Atomic:     false,
		Verbose:    false,
	}
}

// ApplyFile fills in settings from the config file that were not given by
// flag or environment. A missing config file is fine.
func (c *Config) ApplyFile(changed func(flag string) bool) error {
	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", c.ConfigFile, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", c.ConfigFile, err)
	}

	unset := func(flag, env string) bool {
		return !changed(flag) && os.Getenv(env) == ""
	}

	if fc.SaveDir != "" && unset("save-dir", envSaveDir) {
		c.SaveDir = expandHome(fc.SaveDir)
	}
	if fc.Output != "" && unset("output", envOutput) {
		c.Output = fc.Output
	}
	if fc.Storage != "" && unset("storage", envStorage) {
		c.Storage = fc.Storage
	}
	if fc.AtomicWrites != nil && !changed("atomic") {
		c.Atomic = *fc.AtomicWrites
	}
	return nil
}

// Validate rejects settings no command can run with
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
	switch c.Storage {
	case factory.StorageTypeFile, factory.StorageTypeMemory:
	default:
		return fmt.Errorf("invalid storage %q: must be %s or %s", c.Storage, factory.StorageTypeFile, factory.StorageTypeMemory)
	}
	return nil
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".scorecli", "config.yaml")
	}
	return filepath.Join(home, ".scorecli", "config.yaml")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
