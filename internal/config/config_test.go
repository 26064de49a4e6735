package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test viewer defaults
	if cfg.Viewer.GizmoMode != "cube" {
		t.Errorf("expected gizmo mode 'cube', got %s", cfg.Viewer.GizmoMode)
	}
	if !cfg.Viewer.SnapEnabled {
		t.Error("expected snapping to be enabled by default")
	}
	if cfg.Viewer.FeatureAngleDeg != 8.0 {
		t.Errorf("expected feature angle 8.0, got %f", cfg.Viewer.FeatureAngleDeg)
	}
	if !cfg.Viewer.ShowHints {
		t.Error("expected hints to be shown by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

viewer:
  gizmo_mode: "axis"
  snap_enabled: false
  feature_angle_deg: 30.0
  show_hints: false

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Viewer.GizmoMode != "axis" {
		t.Errorf("expected gizmo mode 'axis', got %s", cfg.Viewer.GizmoMode)
	}
	if cfg.Viewer.SnapEnabled {
		t.Error("expected snapping to be disabled")
	}
	if cfg.Viewer.FeatureAngleDeg != 30.0 {
		t.Errorf("expected feature angle 30.0, got %f", cfg.Viewer.FeatureAngleDeg)
	}
	if cfg.Viewer.ShowHints {
		t.Error("expected hints to be hidden")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A partial file must override only what it names.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  gizmo_mode: "axis"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.GizmoMode != "axis" {
		t.Errorf("expected gizmo mode 'axis', got %s", cfg.Viewer.GizmoMode)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280 to survive, got %d", cfg.Graphics.Width)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info' to survive, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1600
	cfg.Viewer.SnapEnabled = false

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Graphics.Width != 1600 {
		t.Errorf("expected width 1600 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Viewer.SnapEnabled {
		t.Error("expected snapping to stay disabled after round trip")
	}
}
