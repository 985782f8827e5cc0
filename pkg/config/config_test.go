package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrisonrobin/lockin/pkg/storage"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Expected backend %s, got %s", BackendFile, cfg.Backend)
	}
	if d, _ := cfg.Undo(); d != 5*time.Second {
		t.Errorf("Expected 5s undo window, got %v", d)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	if err := Save(&Config{Backend: BackendSQLite, UndoWindow: "10s"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Expected backend sqlite, got %s", cfg.Backend)
	}
	if d, _ := cfg.Undo(); d != 10*time.Second {
		t.Errorf("Expected 10s, got %v", d)
	}
	path, _ := cfg.StoragePath()
	if path != filepath.Join(dir, "lockin.db") {
		t.Errorf("Expected sqlite path in config dir, got %s", path)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("backend: postgres\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown backend")
	}
	if err := Save(&Config{Backend: BackendFile, UndoWindow: "-1s"}); err == nil {
		t.Error("Expected error for negative undo window")
	}
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDir, dir)

	backend, closeFn, err := Default().OpenBackend()
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	defer closeFn()
	f, ok := backend.(*storage.File)
	if !ok {
		t.Fatalf("Expected file backend, got %T", backend)
	}
	if f.Path != filepath.Join(dir, "lockin-tasks.json") {
		t.Errorf("Expected default data file, got %s", f.Path)
	}
}
