package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxbar", "config.toml")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	again, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile (existing): %v", err)
	}
	if !reflect.DeepEqual(again, cfg) {
		t.Fatalf("reloaded cfg = %+v, want %+v", again, cfg)
	}
}

func TestLoadFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
ui_language = "ru"
log_level = "debug"

[widget]
bottom_margin = 64.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.UILanguage != "ru" {
		t.Errorf("UILanguage = %q, want ru", cfg.UILanguage)
	}
	if cfg.Widget.BottomMargin != 64 {
		t.Errorf("BottomMargin = %v, want 64", cfg.Widget.BottomMargin)
	}
	if cfg.Widget.Width != 300 || cfg.Widget.Height != 80 {
		t.Errorf("widget size = %dx%d, want 300x80", cfg.Widget.Width, cfg.Widget.Height)
	}
	if !cfg.Notifications || !cfg.Bridge.Enabled {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", cfg.SlogLevel())
	}
}

func TestLoadFileAllowedOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[bridge]
allowed_origins = ["http://localhost:5173"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := []string{"http://localhost:5173"}
	if !reflect.DeepEqual(cfg.Bridge.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.Bridge.AllowedOrigins, want)
	}
	if cfg.Bridge.Addr != Default().Bridge.Addr {
		t.Errorf("Bridge.Addr = %q, want default", cfg.Bridge.Addr)
	}
	if len(Default().Bridge.AllowedOrigins) != 0 {
		t.Error("default config allows browser origins")
	}
}

func TestLoadFileRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("ui_language = [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("LoadFile succeeded on invalid TOML")
	}
}

func TestNormalizeReplacesInvalidSizes(t *testing.T) {
	cfg := Default()
	cfg.MainWindow.Width = 0
	cfg.Widget.Height = -1
	cfg.Bridge.Addr = ""
	cfg.normalize()

	def := Default()
	if cfg.MainWindow != def.MainWindow {
		t.Errorf("MainWindow = %+v, want %+v", cfg.MainWindow, def.MainWindow)
	}
	if cfg.Widget.Height != def.Widget.Height {
		t.Errorf("Widget.Height = %d, want %d", cfg.Widget.Height, def.Widget.Height)
	}
	if cfg.Bridge.Addr != def.Bridge.Addr {
		t.Errorf("Bridge.Addr = %q, want %q", cfg.Bridge.Addr, def.Bridge.Addr)
	}
}

func TestSlogLevelDefault(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "verbose"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("SlogLevel = %v, want info", cfg.SlogLevel())
	}
}
