// Package render draws the debug overlay of the sandbox: collision tiles,
// collider frames, hit points and contact flags.
package render

import (
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Camera maps world units (y up) to screen pixels (y down).
type Camera struct {
	// Center is the world point drawn at the middle of the screen.
	Center       gamemath.Vec
	Scale        float64
	ScreenWidth  float64
	ScreenHeight float64
}

// ToScreen converts a world point to screen coordinates.
func (c Camera) ToScreen(p gamemath.Vec) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + c.ScreenWidth/2
	y := c.ScreenHeight/2 - (p.Y-c.Center.Y)*c.Scale
	return float32(x), float32(y)
}

// RectToScreen converts a world rect to a screen rect given by its top-left
// corner and size.
func (c Camera) RectToScreen(r gamemath.Rect) (x, y, w, h float32) {
	x, y = c.ToScreen(gamemath.Vec{X: r.MinX(), Y: r.MaxY()})
	return x, y, float32(r.W * c.Scale), float32(r.H * c.Scale)
}

// CameraFor follows the first player, clamped so the map fills the screen
// where it is large enough.
func CameraFor(e *ecs.ECS, screen *ebiten.Image) Camera {
	cam := Camera{
		Scale:        cfg.C.Scale,
		ScreenWidth:  float64(screen.Bounds().Dx()),
		ScreenHeight: float64(screen.Bounds().Dy()),
	}
	if entry, ok := tags.Player.First(e.World); ok {
		cam.Center = components.Transform.Get(entry).Position
	}

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return cam
	}
	level := components.Level.Get(levelEntry)
	if level.Map == nil {
		return cam
	}
	bounds := level.Map.Bounds()
	halfW := cam.ScreenWidth / 2 / cam.Scale
	halfH := cam.ScreenHeight / 2 / cam.Scale
	cam.Center.X = clampCenter(cam.Center.X, bounds.MinX(), bounds.MaxX(), halfW)
	cam.Center.Y = clampCenter(cam.Center.Y, bounds.MinY(), bounds.MaxY(), halfH)
	return cam
}

func clampCenter(v, lo, hi, half float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return gamemath.ClampFloat(v, lo+half, hi-half)
}
