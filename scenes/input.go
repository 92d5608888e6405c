package scenes

import (
	cfg "github.com/automoto/platcore/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputBinding represents the keys bound to an action
type InputBinding struct {
	Keys []ebiten.Key
}

// Bindings maps actions to keyboard keys.
var Bindings = map[cfg.ActionID]InputBinding{
	cfg.ActionMoveLeft:    {Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}},
	cfg.ActionMoveRight:   {Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD}},
	cfg.ActionJump:        {Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyX, ebiten.KeyW}},
	cfg.ActionDrop:        {Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS}},
	cfg.ActionToggleDebug: {Keys: []ebiten.Key{ebiten.KeyF1}},
	cfg.ActionSaveTuning:  {Keys: []ebiten.Key{ebiten.KeyF5}},
	cfg.ActionReload:      {Keys: []ebiten.Key{ebiten.KeyF9}},
	cfg.ActionNextLevel:   {Keys: []ebiten.Key{ebiten.KeyF2}},
}

// pollInput reads the pressed state of every bound action.
func pollInput() [cfg.ActionCount]bool {
	var current [cfg.ActionCount]bool
	for action, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				current[action] = true
			}
		}
	}
	return current
}
