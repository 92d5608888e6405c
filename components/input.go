package components

import (
	cfg "github.com/automoto/platcore/config"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous step's pressed state for all
// actions. JustPressed/JustReleased are computed on demand by comparing
// steps.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

// Advance moves the current state to Previous and records the new one.
func (d *InputData) Advance(current [cfg.ActionCount]bool) {
	d.Previous = d.Current
	d.Current = current
}

func (d *InputData) Pressed(a cfg.ActionID) bool { return d.Current[a] }

func (d *InputData) JustPressed(a cfg.ActionID) bool { return d.Current[a] && !d.Previous[a] }

func (d *InputData) JustReleased(a cfg.ActionID) bool { return !d.Current[a] && d.Previous[a] }

var Input = donburi.NewComponentType[InputData]()
