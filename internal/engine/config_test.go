package engine

import (
	"os"
	"path/filepath"
	"testing"

	"incremental-engine/internal/units"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("LoadConfig(missing) = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: /tmp/custom-compiled\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CacheDir != "/tmp/custom-compiled" {
		t.Fatalf("LoadConfig = %+v, want overridden cache_dir", cfg)
	}
}

func TestConfigNewBuildsUsableEngine(t *testing.T) {
	cfg := Config{CacheDir: filepath.Join(t.TempDir(), "compiled")}
	e := cfg.New()
	u := unitFor("f.go", 1, 1, units.Line, "", "hello")
	if err := e.RegisterUnits("f.go", []*units.CompilationUnit{u}); err != nil {
		t.Fatalf("RegisterUnits: %v", err)
	}
	if records := e.UpdateSource("f.go", "hello"); len(records) != 1 {
		t.Fatalf("UpdateSource on a freshly built engine = %+v, want one Added record", records)
	}
}
