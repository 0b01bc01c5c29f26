// Package config holds the tunable rules of a shapesort session.
// Values are loaded from an optional YAML or JSON file on top of defaults so
// the round duration, shape count and drop tolerance are declared once.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings for a session
type Config struct {
	Game    GameConfig    `json:"game" yaml:"game"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Input   InputConfig   `json:"input" yaml:"input"`
	Gesture GestureConfig `json:"gesture" yaml:"gesture"`
	Window  WindowConfig  `json:"window" yaml:"window"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Audio   AudioConfig   `json:"audio" yaml:"audio"`
}

// GameConfig defines round timing, scoring and drag feel
type GameConfig struct {
	RoundDurationSeconds int     `json:"round_duration_seconds" yaml:"round_duration_seconds"`
	ShapesPerRound       int     `json:"shapes_per_round" yaml:"shapes_per_round"` // also the target score
	MatchTolerance       float64 `json:"match_tolerance" yaml:"match_tolerance"`   // world units, planar
	ParticleBurstCount   int     `json:"particle_burst_count" yaml:"particle_burst_count"`
	PodiumOrder          []int   `json:"podium_order" yaml:"podium_order"`

	GrabRadius      float64 `json:"grab_radius" yaml:"grab_radius"`
	DragSmoothing   float64 `json:"drag_smoothing" yaml:"drag_smoothing"`
	ReturnSmoothing float64 `json:"return_smoothing" yaml:"return_smoothing"`
	LiftHeight      float64 `json:"lift_height" yaml:"lift_height"`
	TiltFactor      float64 `json:"tilt_factor" yaml:"tilt_factor"`
	PulseScale      float64 `json:"pulse_scale" yaml:"pulse_scale"`
	PulseMillis     int     `json:"pulse_millis" yaml:"pulse_millis"`
}

// CameraConfig describes the perspective camera looking at the play plane
type CameraConfig struct {
	FOVDegrees float64 `json:"fov_degrees" yaml:"fov_degrees"`
	Z          float64 `json:"z" yaml:"z"`
	PlaneZ     float64 `json:"plane_z" yaml:"plane_z"`
}

// InputConfig selects the input modality used for the whole session
type InputConfig struct {
	Mode string `json:"mode" yaml:"mode"` // auto, pointer, touch, gesture
}

// GestureConfig tunes hand tracking
type GestureConfig struct {
	Enabled        bool    `json:"enabled" yaml:"enabled"`
	ListenAddr     string  `json:"listen_addr" yaml:"listen_addr"`
	PinchThreshold float64 `json:"pinch_threshold" yaml:"pinch_threshold"` // normalized image units
	Mirror         bool    `json:"mirror" yaml:"mirror"`                   // front-facing camera
}

// WindowConfig defines the game window
type WindowConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
	TPS    int    `json:"tps" yaml:"tps"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// AudioConfig toggles the pop sound
type AudioConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Volume  float64 `json:"volume" yaml:"volume"` // master gain, 0 mutes
}

// Default returns the stock session rules
func Default() *Config {
	return &Config{
		Game: GameConfig{
			RoundDurationSeconds: 60,
			ShapesPerRound:       10,
			MatchTolerance:       1.2,
			ParticleBurstCount:   8,
			PodiumOrder:          []int{1, 0, 2},
			GrabRadius:           0.6,
			DragSmoothing:        0.2,
			ReturnSmoothing:      0.1,
			LiftHeight:           1.0,
			TiltFactor:           2.0,
			PulseScale:           1.1,
			PulseMillis:          150,
		},
		Camera: CameraConfig{
			FOVDegrees: 45,
			Z:          15,
			PlaneZ:     0,
		},
		Input: InputConfig{
			Mode: "auto",
		},
		Gesture: GestureConfig{
			Enabled:        true,
			ListenAddr:     "127.0.0.1:8787",
			PinchThreshold: 0.06,
			Mirror:         true,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Shape Sort",
			TPS:    60,
		},
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  1.0,
		},
	}
}

// Load reads a config file on top of the defaults. YAML is used unless the
// file ends in .json. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the game logic depends on
func (c *Config) Validate() error {
	g := c.Game
	if g.RoundDurationSeconds <= 0 {
		return fmt.Errorf("%w: round_duration_seconds must be positive, got %d", ErrInvalid, g.RoundDurationSeconds)
	}
	if g.ShapesPerRound <= 0 {
		return fmt.Errorf("%w: shapes_per_round must be positive, got %d", ErrInvalid, g.ShapesPerRound)
	}
	if g.MatchTolerance <= 0 {
		return fmt.Errorf("%w: match_tolerance must be positive, got %v", ErrInvalid, g.MatchTolerance)
	}
	if g.DragSmoothing <= 0 || g.DragSmoothing > 1 || g.ReturnSmoothing <= 0 || g.ReturnSmoothing > 1 {
		return fmt.Errorf("%w: smoothing factors must be in (0,1]", ErrInvalid)
	}
	if !isPermutation(g.PodiumOrder) {
		return fmt.Errorf("%w: podium_order %v is not a permutation of 0..%d", ErrInvalid, g.PodiumOrder, len(g.PodiumOrder)-1)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("%w: fov_degrees must be in (0,180), got %v", ErrInvalid, c.Camera.FOVDegrees)
	}
	if c.Camera.Z <= c.Camera.PlaneZ {
		return fmt.Errorf("%w: camera must sit in front of the play plane", ErrInvalid)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalid, c.Window.TPS)
	}
	return nil
}

// TargetScore is the number of matches that completes a round. It is the
// spawn count by definition.
func (g GameConfig) TargetScore() int {
	return g.ShapesPerRound
}

// BurstCount clamps the particle burst into the visible 8..12 range.
func (g GameConfig) BurstCount() int {
	switch {
	case g.ParticleBurstCount < 8:
		return 8
	case g.ParticleBurstCount > 12:
		return 12
	default:
		return g.ParticleBurstCount
	}
}

func isPermutation(order []int) bool {
	if len(order) == 0 {
		return false
	}
	seen := make([]bool, len(order))
	for _, i := range order {
		if i < 0 || i >= len(order) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}
