package render

import (
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawTiles draws the collision tiles of the current level.
func DrawTiles(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Background)
	if !cfg.Debug.ShowTiles {
		return
	}
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	m := components.Level.Get(levelEntry).Map
	if m == nil {
		return
	}
	cam := CameraFor(e, screen)

	for col := 0; col < m.Columns(); col++ {
		for row := 0; row < m.Rows(); row++ {
			coords := tilemap.Coordinates{Column: col, Row: row}
			tile := m.TileAt(col, row)
			frame := m.WorldRect(coords)
			if tile == nil {
				if m.IsCornerJump(coords) {
					x, y, w, h := cam.RectToScreen(frame)
					vector.StrokeRect(screen, x, y, w, h, 1, cfg.Magenta, false)
				}
				continue
			}
			drawTile(screen, cam, tile, frame)
		}
	}
}

func drawTile(screen *ebiten.Image, cam Camera, tile *tilemap.Tile, frame gamemath.Rect) {
	x, y, w, h := cam.RectToScreen(frame)
	switch {
	case tile.Kind == tilemap.Ground:
		vector.FillRect(screen, x, y, w, h, cfg.GroundColor, false)
	case tile.Kind == tilemap.OneWay:
		vector.FillRect(screen, x, y, w, 2, cfg.Yellow, false)
	case tile.IsJumpWall():
		vector.FillRect(screen, x, y, w, h, cfg.GroundColor, false)
		edge := x
		if tile.Kind == tilemap.JumpWallRight {
			edge = x + w - 2
		}
		vector.FillRect(screen, edge, y, 2, h, cfg.Purple, false)
	case tile.IsSlope():
		drawSlope(screen, cam, tile, frame)
	}
}

// drawSlope fills one strip per bitmap column up to the slope surface.
func drawSlope(screen *ebiten.Image, cam Camera, tile *tilemap.Tile, frame gamemath.Rect) {
	strip := frame.W / tilemap.SlopeResolution
	for i := 0; i < tilemap.SlopeResolution; i++ {
		localX := float64(i) * strip
		height := gamemath.SlopeSurfaceHeight(tile.Left, tile.Right, localX, frame.W, frame.H, tilemap.SlopeResolution)
		r := gamemath.Rect{X: frame.X + localX, Y: frame.Y, W: strip, H: height}
		x, y, w, h := cam.RectToScreen(r)
		vector.FillRect(screen, x, y, w, h, cfg.DarkBlue, false)
	}
}
