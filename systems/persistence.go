package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/kinematics"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SavedTuning represents the tuning data stored on disk
type SavedTuning struct {
	Kinematics      kinematics.Configuration `json:"kinematics"`
	RunAcceleration float64                  `json:"runAcceleration"`
	RunDeceleration float64                  `json:"runDeceleration"`
	AirDeceleration float64                  `json:"airDeceleration"`
	JumpSpeed       float64                  `json:"jumpSpeed"`
	JumpHold        float64                  `json:"jumpHoldAcceleration"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for tuning storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: cfg.Persistence.AppName,
	})
	if err != nil {
		log.Printf("[persistence] Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadTuning loads tuning from disk. It returns nil when nothing was saved
// or persistence is unavailable.
func LoadTuning() (*SavedTuning, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(cfg.Persistence.TuningKey)
	if err != nil {
		log.Printf("[persistence] Warning: Could not load tuning: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeTuning(data)
}

func decodeTuning(data []byte) (*SavedTuning, error) {
	var tuning SavedTuning
	if err := json.Unmarshal(data, &tuning); err != nil {
		log.Printf("[persistence] Warning: Could not parse saved tuning: %v", err)
		return nil, err
	}
	return &tuning, nil
}

// SaveTuning saves tuning to disk
func SaveTuning(t *SavedTuning) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		log.Printf("[persistence] Warning: Could not serialize tuning: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(cfg.Persistence.TuningKey, data); err != nil {
		log.Printf("[persistence] Warning: Could not save tuning: %v", err)
		return err
	}
	return nil
}

// CurrentTuning captures the tuning currently in effect
func CurrentTuning() *SavedTuning {
	return &SavedTuning{
		Kinematics:      cfg.Kinematics,
		RunAcceleration: cfg.Player.RunAcceleration,
		RunDeceleration: cfg.Player.RunDeceleration,
		AirDeceleration: cfg.Player.AirDeceleration,
		JumpSpeed:       cfg.Player.JumpSpeed,
		JumpHold:        cfg.Player.JumpHoldAcceleration,
	}
}

// ApplyTuning writes saved tuning to the config globals and to every body
// in the world. e may be nil during startup.
func ApplyTuning(e *ecs.ECS, saved *SavedTuning) {
	if saved == nil {
		return
	}
	if saved.Kinematics.MetersToScreenUnits > 0 {
		cfg.Kinematics = saved.Kinematics
	}
	cfg.Player.RunAcceleration = saved.RunAcceleration
	cfg.Player.RunDeceleration = saved.RunDeceleration
	cfg.Player.AirDeceleration = saved.AirDeceleration
	cfg.Player.JumpSpeed = saved.JumpSpeed
	cfg.Player.JumpHoldAcceleration = saved.JumpHold

	if e == nil {
		return
	}
	components.KinematicsBody.Each(e.World, func(entry *donburi.Entry) {
		body := components.KinematicsBody.Get(entry)
		body.Config = cfg.Kinematics
		body.ResetStates()
	})
}
