package components

import (
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// MoverData drives a scripted collider back and forth along X. The tween
// yields the offset from Origin.
type MoverData struct {
	Origin   gamemath.Vec
	Distance float64
	Seconds  float64
	Tween    *gween.Tween
	// Returning is set while the tween runs from Distance back to zero.
	Returning bool
}

var Mover = donburi.NewComponentType[MoverData]()
