package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Host != DefaultHost || cfg.Server.Port != DefaultPort {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}
	if cfg.Store != DefaultStoreDir {
		t.Errorf("store = %q, want %q", cfg.Store, DefaultStoreDir)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q for defaults", cfg.Path())
	}
}

func TestLoadMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	raw := `{"name": "demo", "definition": "main", "server": {"port": 9000}}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" || cfg.Definition != "main" {
		t.Errorf("explicit fields lost: %+v", cfg)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("host default not applied: %q", cfg.Server.Host)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("malformed config did not error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Name = "demo"
	cfg.Definition = "main"
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Name != "demo" || back.Definition != "main" || back.Server.Port != DefaultPort {
		t.Errorf("round trip = %+v", back)
	}
}
