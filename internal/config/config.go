package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds frond configuration.
type Config struct {
	Models   ModelsConfig   `toml:"models"`
	Serve    ServeConfig    `toml:"serve"`
	Generate GenerateConfig `toml:"generate"`
}

// ModelsConfig controls the on-disk model store.
type ModelsConfig struct {
	Dir          string `toml:"dir"`
	DefaultQuant string `toml:"default_quant"` // "4-bit", "8-bit", "bf16"
}

// ServeConfig controls the local web UI.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// GenerateConfig holds default sampling parameters.
type GenerateConfig struct {
	MaxTokens         int     `toml:"max_tokens"`
	Temperature       float64 `toml:"temperature"`
	TopP              float64 `toml:"top_p"`
	RepetitionPenalty float64 `toml:"repetition_penalty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Models:   ModelsConfig{Dir: "./models", DefaultQuant: "4-bit"},
		Serve:    ServeConfig{Addr: "127.0.0.1:7860"},
		Generate: GenerateConfig{MaxTokens: 512, Temperature: 0.7, TopP: 1.0, RepetitionPenalty: 1.0},
	}
}

// ConfigDir returns the frond config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "frond")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist.
func Load() *Config {
	cfg := Default()
	path := configPath()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	path := configPath()
	if _, err := os.Stat(path); err == nil {
		return nil // already exists
	}
	return Save(Default())
}
