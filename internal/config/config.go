// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ViewerConfig holds interaction and display defaults for the viewport.
type ViewerConfig struct {
	// GizmoMode selects the orientation widget: "cube" or "axis".
	GizmoMode string `yaml:"gizmo_mode"`

	// SnapEnabled turns point snapping on for pivot and point picks.
	SnapEnabled bool `yaml:"snap_enabled"`

	// FeatureAngleDeg is the dihedral angle threshold for feature edges.
	FeatureAngleDeg float64 `yaml:"feature_angle_deg"`

	// ShowHints toggles the key-binding hint line.
	ShowHints bool `yaml:"show_hints"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			GizmoMode:       "cube",
			SnapEnabled:     true,
			FeatureAngleDeg: 8.0,
			ShowHints:       true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
