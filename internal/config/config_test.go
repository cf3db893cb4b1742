package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func newTestManager(t *testing.T) (*ConfigManager, string) {
	t.Helper()
	path := tempConfigPath(t)
	cm, err := NewConfigManager(path)
	if err != nil {
		t.Fatalf("NewConfigManager: %v", err)
	}
	return cm, path
}

func TestNewConfigManager_EmptyPath(t *testing.T) {
	if _, err := NewConfigManager(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoad_CreatesDefaultOnMissing(t *testing.T) {
	cm, path := newTestManager(t)
	if err := cm.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	cfg := cm.Get()
	if cfg == nil {
		t.Fatal("Get returned nil")
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, want 0.0.0.0:8080", cfg.Server.Addr)
	}
	if cfg.Upload.MaxMB != 50 {
		t.Errorf("MaxMB = %d, want 50", cfg.Upload.MaxMB)
	}
	if cfg.Preview.Rows != 50 {
		t.Errorf("Preview.Rows = %d, want 50", cfg.Preview.Rows)
	}
	if cfg.Export.MaxColWidth != 60 {
		t.Errorf("MaxColWidth = %v, want 60", cfg.Export.MaxColWidth)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cm, path := newTestManager(t)
	if err := os.WriteFile(path, []byte(`{"preview":{"rows":5}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := cm.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := cm.Get()
	if cfg.Preview.Rows != 5 {
		t.Errorf("Preview.Rows = %d, want 5", cfg.Preview.Rows)
	}
	if cfg.Upload.MaxMB != 50 {
		t.Errorf("MaxMB = %d, want default 50", cfg.Upload.MaxMB)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	cm, path := newTestManager(t)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := cm.Load(); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	cm, _ := newTestManager(t)
	if err := cm.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	a := cm.Get()
	a.Preview.Rows = 9999
	if b := cm.Get(); b.Preview.Rows == 9999 {
		t.Error("Get must return a copy, not shared state")
	}
}

func TestGet_NilBeforeLoad(t *testing.T) {
	cm, _ := newTestManager(t)
	if cfg := cm.Get(); cfg != nil {
		t.Errorf("expected nil before Load, got %+v", cfg)
	}
}
