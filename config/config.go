package config

import (
	"image/color"

	"github.com/automoto/platcore/kinematics"
)

// Config holds general sandbox configuration
type Config struct {
	Width    int
	Height   int
	Title    string
	TPS      int
	TimeStep float64 // Seconds per fixed step
	Scale    float64 // Screen pixels per world unit
}

// CollisionConfig controls the collisions controller.
type CollisionConfig struct {
	// Longest straight segment the resolver sweeps before checking tiles again.
	InterpolationMaxDelta float64 `yaml:"interpolationMaxDelta"`
	// Vertical slack when stepping off a slope onto a lower tile.
	SlopeExitTolerance float64 `yaml:"slopeExitTolerance"`
}

// PlayerConfig contains the sandbox player's tuning values
type PlayerConfig struct {
	// Movement (m/s, m/s²)
	RunAcceleration float64 `yaml:"runAcceleration"`
	RunDeceleration float64 `yaml:"runDeceleration"`
	AirDeceleration float64 `yaml:"airDeceleration"`
	JumpSpeed       float64 `yaml:"jumpSpeed"`
	// Extra acceleration applied while jump is held on the way up.
	JumpHoldAcceleration float64 `yaml:"jumpHoldAcceleration"`

	// Dimensions (world units)
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	ProbeMargin float64 `yaml:"probeMargin"`
}

// MoverConfig is used for tweened movers without their own timing.
type MoverConfig struct {
	Seconds  float64 `yaml:"seconds"`
	Priority int     `yaml:"priority"`
}

// DebugConfig contains debug overlay and command-line options
type DebugConfig struct {
	ShowTiles     bool   `yaml:"showTiles"`
	ShowColliders bool   `yaml:"showColliders"`
	ShowHitPoints bool   `yaml:"showHitPoints"`
	ShowFlags     bool   `yaml:"showFlags"`
	HotReload     bool   `yaml:"hotReload"`
	Level         string `yaml:"level"`
}

// PersistenceConfig names the gdata storage used for saved tuning.
type PersistenceConfig struct {
	AppName   string
	TuningKey string
}

// Global configuration instances
var C *Config
var Kinematics kinematics.Configuration
var Collision CollisionConfig
var Player PlayerConfig
var Mover MoverConfig
var Debug DebugConfig
var Persistence PersistenceConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green       = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Blue        = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Purple      = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Magenta     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue    = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Background  = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	GapOverlay  = color.RGBA{R: 255, G: 0, B: 255, A: 60}
	GroundColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}
)

// Direction constants for player facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:    640,
		Height:   360,
		Title:    "platcore sandbox",
		TPS:      60,
		TimeStep: 1.0 / 60.0,
		Scale:    2,
	}

	Kinematics = kinematics.DefaultConfiguration()

	Collision = CollisionConfig{
		InterpolationMaxDelta: 8,
		SlopeExitTolerance:    2,
	}

	Player = PlayerConfig{
		RunAcceleration:      40,
		RunDeceleration:      30,
		AirDeceleration:      10,
		JumpSpeed:            12,
		JumpHoldAcceleration: 18,

		Width:       12,
		Height:      22,
		ProbeMargin: 2,
	}

	Mover = MoverConfig{
		Seconds:  2,
		Priority: 1,
	}

	Debug = DebugConfig{
		ShowTiles:     true,
		ShowColliders: true,
		ShowHitPoints: false,
		ShowFlags:     true,
		HotReload:     true,
	}

	Persistence = PersistenceConfig{
		AppName:   "platcore",
		TuningKey: "tuning.json",
	}
}
