package config

import (
	"fmt"
	"os"

	"github.com/automoto/platcore/kinematics"
	"gopkg.in/yaml.v3"
)

// File is the subset of configuration that can be overridden from YAML.
// Sections missing from the document keep their current values.
type File struct {
	Kinematics kinematics.Configuration `yaml:"kinematics"`
	Collision  CollisionConfig          `yaml:"collision"`
	Player     PlayerConfig             `yaml:"player"`
	Mover      MoverConfig              `yaml:"mover"`
	Debug      DebugConfig              `yaml:"debug"`
}

// Snapshot captures the overridable globals.
func Snapshot() File {
	return File{
		Kinematics: Kinematics,
		Collision:  Collision,
		Player:     Player,
		Mover:      Mover,
		Debug:      Debug,
	}
}

// Restore writes a snapshot back to the globals.
func Restore(f File) {
	Kinematics = f.Kinematics
	Collision = f.Collision
	Player = f.Player
	Mover = f.Mover
	Debug = f.Debug
}

// Load overlays the YAML file at path on the current configuration.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Apply(data); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Apply overlays a YAML document on the current configuration. Nothing is
// changed when the document fails to parse or validate.
func Apply(data []byte) error {
	f := Snapshot()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if err := f.validate(); err != nil {
		return err
	}
	Restore(f)
	return nil
}

func (f File) validate() error {
	switch {
	case f.Kinematics.MetersToScreenUnits <= 0:
		return fmt.Errorf("kinematics.metersToScreenUnits must be positive, got %v", f.Kinematics.MetersToScreenUnits)
	case f.Kinematics.MaximumVerticalVelocity < 0, f.Kinematics.MaximumHorizontalVelocity < 0:
		return fmt.Errorf("kinematics maximum velocities must not be negative")
	case f.Collision.InterpolationMaxDelta <= 0:
		return fmt.Errorf("collision.interpolationMaxDelta must be positive, got %v", f.Collision.InterpolationMaxDelta)
	case f.Player.Width < 2*f.Player.ProbeMargin+2, f.Player.Height < 2*f.Player.ProbeMargin+2:
		return fmt.Errorf("player size %vx%v too small for probe margin %v", f.Player.Width, f.Player.Height, f.Player.ProbeMargin)
	}
	return nil
}
