package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("IRONTODO_SERVER_URL", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
	if !cfg.ConfirmDelete {
		t.Error("ConfirmDelete should default to true")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("IRONTODO_SERVER_URL", "")
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if err := cfg.SetServer("https://todo.example.com/ "); err != nil {
		t.Fatalf("SetServer: %v", err)
	}
	cfg.ConfirmDelete = false
	cfg.ToastDuration = 2 * time.Second
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.ServerURL != "https://todo.example.com" {
		t.Errorf("ServerURL = %q", loaded.ServerURL)
	}
	if loaded.ConfirmDelete {
		t.Error("ConfirmDelete should have been saved as false")
	}
	if loaded.ToastDuration != 2*time.Second {
		t.Errorf("ToastDuration = %v, want 2s", loaded.ToastDuration)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: http://file:1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IRONTODO_SERVER_URL", "http://env:2")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ServerURL != "http://env:2" {
		t.Errorf("ServerURL = %q, want env value", cfg.ServerURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	for _, bad := range []string{"localhost:5000", "ftp://x", "http://"} {
		if err := cfg.SetServer(bad); err == nil {
			t.Errorf("SetServer(%q) should fail", bad)
		}
	}
	if cfg.ServerURL == "" {
		t.Error("failed SetServer must keep the previous value")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server_url: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error for malformed yaml")
	}
}
