// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Scene       SceneConfig      `yaml:"scene"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

// CameraConfig holds the fly camera defaults.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

// SceneConfig holds scene defaults.
type SceneConfig struct {
	InitialModel   string  `yaml:"initial_model"`    // Loaded (and framed) at startup
	ModelPath      string  `yaml:"model_path"`       // Pre-filled panel path
	ModelScale     float32 `yaml:"model_scale"`      // Shared transform scale before any framing
	MaxPointLights int     `yaml:"max_point_lights"` // Must match the shader array size
	ShowBounds     bool    `yaml:"show_bounds"`
}

// ScreenshotConfig holds viewport capture settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:    "G-Man",
			Width:    1280,
			Height:   720,
			VSync:    true,
			FPSLimit: 0,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 1, 5},
			Speed:       2.5,
			Sensitivity: 0.1,
			FOV:         45,
		},
		Scene: SceneConfig{
			InitialModel:   "",
			ModelPath:      "assets/models/g-man-blacksuit/extracted/scene.gltf",
			ModelScale:     0.01,
			MaxPointLights: 32,
			ShowBounds:     false,
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges that the viewer cannot recover from.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV < 1 || c.Camera.FOV > 45 {
		return fmt.Errorf("%w: camera fov %.1f outside [1, 45]", ErrInvalid, c.Camera.FOV)
	}
	if c.Camera.Speed < 0 {
		return fmt.Errorf("%w: negative camera speed", ErrInvalid)
	}
	if c.Scene.MaxPointLights < 1 {
		return fmt.Errorf("%w: max_point_lights must be at least 1", ErrInvalid)
	}
	return nil
}
