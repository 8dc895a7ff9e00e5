package buildcache

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for a BuildCache, loaded once at
// startup by the demo CLI.
type Config struct {
	CacheDir   string `yaml:"cache_dir"`
	MaxSize    int    `yaml:"max_size"`
	Strategy   string `yaml:"strategy"`   // "lru" or "lfu"
	BadgerPath string `yaml:"badger_path"` // empty disables the durable store
}

// DefaultConfig returns the engine's out-of-the-box BuildCache settings.
func DefaultConfig() Config {
	return Config{
		CacheDir: ".incremental-cache/build",
		MaxSize:  DefaultMaxSize,
		Strategy: string(LRU),
	}
}

// LoadConfig reads and parses a YAML config file at path, filling any
// field left at its zero value with DefaultConfig's value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("buildcache: read config %s: %w", path, err)
	}
	var loaded Config
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return cfg, fmt.Errorf("buildcache: parse config %s: %w", path, err)
	}
	if loaded.CacheDir != "" {
		cfg.CacheDir = loaded.CacheDir
	}
	if loaded.MaxSize > 0 {
		cfg.MaxSize = loaded.MaxSize
	}
	if loaded.Strategy != "" {
		cfg.Strategy = loaded.Strategy
	}
	if loaded.BadgerPath != "" {
		cfg.BadgerPath = loaded.BadgerPath
	}
	return cfg, nil
}

// New builds a BuildCache (and, if BadgerPath is set, a durable store
// attached to it) from cfg.
func (cfg Config) New() (*BuildCache, error) {
	strategy := LRU
	if cfg.Strategy == string(LFU) {
		strategy = LFU
	}
	bc := New(cfg.CacheDir, strategy, cfg.MaxSize)
	if cfg.BadgerPath != "" {
		store, err := OpenBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		if err := bc.AttachStore(store); err != nil {
			return nil, fmt.Errorf("buildcache: rehydrate from %s: %w", cfg.BadgerPath, err)
		}
	}
	return bc, nil
}
