package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Backend != "file" {
		t.Errorf("Backend: got %q, want file", cfg.Backend)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, dir)
	}
	if cfg.Key != "projects" {
		t.Errorf("Key: got %q, want projects", cfg.Key)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogPath() != filepath.Join(dir, LogFileName) {
		t.Errorf("LogPath: got %q", cfg.LogPath())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "backend = \"sqlite\"\nkey = \"work\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TODOS_LOG_LEVEL", "warn")
	t.Setenv("TODOS_DATA_DIR", "/tmp/elsewhere")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"backend from file", cfg.Backend, "sqlite"},
		{"key from file", cfg.Key, "work"},
		{"log level from env", cfg.LogLevel, "warn"},
		{"data dir from env", cfg.DataDir, "/tmp/elsewhere"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("backend = \"sqlite\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOS_BACKEND", "memory")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	os.WriteFile(path, []byte("backend = "), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default(filepath.Dir(path))
	if err := cfg.Set("backend", "sqlite"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("got %+v, want %+v", loaded, cfg)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default("/data")

	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q): %v", key, err)
		}
	}
	if _, err := cfg.Get("server_url"); err == nil {
		t.Error("expected error for unknown key")
	}

	if err := cfg.Set("backend", "redis"); err == nil {
		t.Error("expected error for unknown backend")
	}
	if err := cfg.Set("key", ""); err == nil {
		t.Error("expected error for empty key")
	}
	if err := cfg.Set("log_file", "/var/log/todos.log"); err != nil {
		t.Fatal(err)
	}
	if cfg.LogPath() != "/var/log/todos.log" {
		t.Errorf("LogPath: got %q", cfg.LogPath())
	}
}
