// Package config holds the tunable settings for the game and the tools.
// Settings start from DefaultConfig, are overlaid by an optional JSON file,
// then by SIGHTLINE_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/kelseyhightower/envconfig"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/player"
	"chosenoffset.com/sightline/internal/core/raycast"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "SIGHTLINE"

// Config holds every setting
type Config struct {
	Display  DisplayConfig  `json:"display" envconfig:"DISPLAY"`
	View     ViewConfig     `json:"view" envconfig:"VIEW"`
	Movement MovementConfig `json:"movement" envconfig:"MOVEMENT"`

	LevelDir string `json:"level_dir" envconfig:"LEVEL_DIR"` // Empty means the built-in levels
	LogLevel string `json:"log_level" envconfig:"LOG_LEVEL"`
}

// DisplayConfig describes the window
type DisplayConfig struct {
	Width           int `json:"width" envconfig:"WIDTH"`
	Height          int `json:"height" envconfig:"HEIGHT"`
	SightlineY      int `json:"sightline_y" envconfig:"SIGHTLINE_Y"`           // Top of the sightline strip
	SightlineHeight int `json:"sightline_height" envconfig:"SIGHTLINE_HEIGHT"` // Strip thickness in pixels
	TPS             int `json:"tps" envconfig:"TPS"`                           // Frame ticks per second
}

// ViewConfig tunes the raycaster
type ViewConfig struct {
	FOV           float64 `json:"fov" envconfig:"FOV"`           // Radians
	Straddle      float64 `json:"straddle" envconfig:"STRADDLE"` // Side ray offset at each vertex
	MaxIterations int     `json:"max_iterations" envconfig:"MAX_ITERATIONS"`
}

// MovementConfig tunes the player
type MovementConfig struct {
	Speed       float64 `json:"speed" envconfig:"SPEED"`             // Units per frame
	Sensitivity float64 `json:"sensitivity" envconfig:"SENSITIVITY"` // Radians per mouse pixel
	Clearance   float64 `json:"clearance" envconfig:"CLEARANCE"`     // Distance kept from walls
}

// DefaultConfig returns the settings the game ships with
func DefaultConfig() *Config {
	moves := player.DefaultSettings()
	return &Config{
		Display: DisplayConfig{
			Width:           500,
			Height:          550,
			SightlineY:      50,
			SightlineHeight: 20,
			TPS:             60,
		},
		View: ViewConfig{
			FOV:           math.Pi * 3 / 5,
			Straddle:      geometry.VertexStraddle,
			MaxIterations: raycast.DefaultMaxIterations,
		},
		Movement: MovementConfig{
			Speed:       moves.Speed,
			Sensitivity: moves.Sensitivity,
			Clearance:   level.DefaultClearance,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a JSON file over the defaults, then applies environment
// overrides. An empty path or a missing file leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("invalid screen size %dx%d", c.Display.Width, c.Display.Height)
	case c.Display.SightlineHeight <= 0:
		return fmt.Errorf("invalid sightline height %d", c.Display.SightlineHeight)
	case c.Display.TPS <= 0:
		return fmt.Errorf("invalid tps %d", c.Display.TPS)
	case c.View.FOV <= 0 || c.View.FOV >= 2*math.Pi:
		return fmt.Errorf("fov %.3f must be between 0 and 2π", c.View.FOV)
	case c.Movement.Speed <= 0:
		return fmt.Errorf("invalid movement speed %.3f", c.Movement.Speed)
	case c.Movement.Clearance < 0:
		return fmt.Errorf("invalid clearance %.3f", c.Movement.Clearance)
	}
	return nil
}

// PlayerSettings returns the movement tuning for player.New
func (c *Config) PlayerSettings() player.Settings {
	return player.Settings{Speed: c.Movement.Speed, Sensitivity: c.Movement.Sensitivity}
}

// RaycastOptions returns the raycaster tuning
func (c *Config) RaycastOptions() raycast.Options {
	return raycast.Options{Straddle: c.View.Straddle, MaxIterations: c.View.MaxIterations}
}
