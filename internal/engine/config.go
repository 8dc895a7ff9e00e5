package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for an Engine, loaded once at
// startup by the demo CLI.
type Config struct {
	CacheDir string `yaml:"cache_dir"`
}

// DefaultConfig returns the engine's out-of-the-box settings.
func DefaultConfig() Config {
	return Config{CacheDir: ".incremental-cache/compiled"}
}

// LoadConfig reads and parses a YAML config file at path, falling back to
// DefaultConfig when path does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("engine: read config %s: %w", path, err)
	}
	var loaded Config
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return cfg, fmt.Errorf("engine: parse config %s: %w", path, err)
	}
	if loaded.CacheDir != "" {
		cfg.CacheDir = loaded.CacheDir
	}
	return cfg, nil
}

// New builds an Engine from cfg.
func (cfg Config) New() *Engine {
	return New(cfg.CacheDir)
}
