package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font/basicfont"
)

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// DrawColliders outlines every collider frame, colored by its contact
// state, and optionally its hit points.
func DrawColliders(e *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowColliders {
		return
	}
	cam := CameraFor(e, screen)

	components.Collider.Each(e.World, func(entry *donburi.Entry) {
		col := components.Collider.Get(entry)
		pos := components.Transform.Get(entry).Position

		x, y, w, h := cam.RectToScreen(col.Frame(pos))
		vector.StrokeRect(screen, x, y, w, h, 1, colliderColor(col), false)

		if !cfg.Debug.ShowHitPoints {
			return
		}
		hp := col.HitPoints(pos)
		for _, p := range []gamemath.Rect{
			hp.LeftBottom, hp.LeftTop, hp.RightBottom, hp.RightTop,
			hp.TopLeft, hp.TopRight, hp.BottomLeft, hp.BottomRight,
		} {
			px, py, pw, ph := cam.RectToScreen(p)
			vector.FillRect(screen, px, py, pw, ph, cfg.Orange, false)
		}
	})
}

func colliderColor(col *collision.Collider) color.Color {
	f := col.Current
	switch {
	case f.KilledByCollision:
		return cfg.Red
	case f.OnSlope:
		return cfg.LightBlue
	case f.OnGround:
		return cfg.Green
	case f.PushesLeftWall, f.PushesRightWall, f.PushesLeftJumpWall, f.PushesRightJumpWall:
		return cfg.Yellow
	}
	return cfg.White
}

// DrawFlags prints the player's contact flags in the top-left corner.
func DrawFlags(e *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowFlags {
		return
	}
	entry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	pos := components.Transform.Get(entry).Position
	body := components.KinematicsBody.Get(entry)

	lines := []string{
		fmt.Sprintf("pos %.2f, %.2f", pos.X, pos.Y),
		fmt.Sprintf("vel %.2f, %.2f", body.Velocity.X, body.Velocity.Y),
		FlagsLabel(components.Collider.Get(entry).Current),
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(cfg.White)
	op.LineSpacing = 14
	text.Draw(screen, strings.Join(lines, "\n"), labelFace, op)
}

// FlagsLabel lists the raised contact flags.
func FlagsLabel(f collision.ContactFlags) string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(f.OnGround, "ground")
	add(f.OnSlope, "slope")
	add(f.OnGap, "gap")
	add(f.AtCeiling, "ceiling")
	add(f.PushesLeftWall, "wall-l")
	add(f.PushesRightWall, "wall-r")
	add(f.PushesLeftJumpWall, "jumpwall-l")
	add(f.PushesRightJumpWall, "jumpwall-r")
	add(f.PushesDown, "down")
	add(f.OnCornerJump, "corner")
	add(f.KilledByCollision, "killed")
	add(f.OutsideMapBounds, "outside")
	if f.SlopeContext != nil {
		names = append(names, fmt.Sprintf("incl=%d", f.SlopeContext.Inclination))
	}
	if len(names) == 0 {
		return "air"
	}
	return strings.Join(names, " ")
}
