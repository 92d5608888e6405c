package collision

import (
	"sort"

	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
)

const (
	// DefaultMaxDelta is the longest distance moved between two collision
	// checks of a single step.
	DefaultMaxDelta = 8.0
	// DefaultSlopeExitTolerance is how far below a tile top a collider
	// leaving a slope may start and still land on that top.
	DefaultSlopeExitTolerance = 2.0

	maxResolveDepth = 8
)

// TileIntersection is a cell near a collider's movement.
type TileIntersection struct {
	Coordinates tilemap.Coordinates
	// Tile is nil for empty cells.
	Tile  *tilemap.Tile
	Frame gamemath.Rect
	// Intersection is the cell's overlap with the proposed frame. It has no
	// area when they only touch or when the cell is only on the way there.
	Intersection gamemath.Rect
	// Overlaps reports a positive-area overlap with the proposed frame.
	Overlaps bool

	distance float64
}

// Result is the outcome of resolving one movement.
type Result struct {
	Position gamemath.Vec
	Contacts []Contact
}

// Controller resolves collider movement against a tile map. A nil map
// disables tile resolution.
type Controller struct {
	m *tilemap.Map

	MaxDelta           float64
	SlopeExitTolerance float64
}

func NewController(m *tilemap.Map) *Controller {
	return &Controller{
		m:                  m,
		MaxDelta:           DefaultMaxDelta,
		SlopeExitTolerance: DefaultSlopeExitTolerance,
	}
}

// Map returns the tile map, or nil.
func (c *Controller) Map() *tilemap.Map { return c.m }

func kindRank(t *tilemap.Tile) int {
	switch {
	case t == nil:
		return 3
	case t.Kind == tilemap.Ground:
		return 0
	case t.Kind == tilemap.OneWay:
		return 1
	}
	return 2
}

// TileIntersections returns every cell touching the area swept by the
// collider between its current and proposed frames, nearest to the current
// position first. Ground sorts before other tiles at equal distance. Cells
// that only share an edge with the footprint are included so a collider
// resting on a tile keeps meeting it; Overlaps selects the cells that
// strictly overlap the proposed frame.
func (c *Controller) TileIntersections(mv Movement) []TileIntersection {
	if c.m == nil {
		return nil
	}
	prop := mv.ProposedFrame()
	swept := mv.CurrentFrame().Union(prop)
	rng, ok := c.m.TileRange(swept)
	if !ok {
		return nil
	}

	var out []TileIntersection
	for col := rng.Left; col <= rng.Right; col++ {
		for row := rng.Bottom; row <= rng.Top; row++ {
			coords := tilemap.Coordinates{Column: col, Row: row}
			frame := c.m.WorldRect(coords)
			if !frame.Touches(swept) {
				continue
			}
			inter, _ := prop.Intersect(frame)
			out = append(out, TileIntersection{
				Coordinates:  coords,
				Tile:         c.m.TileAt(col, row),
				Frame:        frame,
				Intersection: inter,
				Overlaps:     prop.Intersects(frame),
				distance:     mv.Current.Dist(frame.Center()),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return kindRank(out[i].Tile) < kindRank(out[j].Tile)
	})
	return out
}

// TileContact resolves a movement against one intersected tile. It returns
// nil when the tile does not stop the collider. Jump walls only raise flags.
func (c *Controller) TileContact(mv Movement, ti TileIntersection) *Contact {
	if ti.Tile == nil {
		return nil
	}
	if ti.Tile.IsJumpWall() {
		c.jumpWallContact(mv, ti)
		return nil
	}
	switch ti.Tile.Kind {
	case tilemap.Ground:
		return c.solidContact(mv, ti, false)
	case tilemap.OneWay:
		if mv.Collider.DidPushDown() {
			return nil
		}
		return c.solidContact(mv, ti, true)
	case tilemap.Slope:
		return c.slopeContact(mv, ti)
	}
	return nil
}

func (c *Controller) solidContact(mv Movement, ti TileIntersection, bottomOnly bool) *Contact {
	tolerance := 0.0
	if mv.Collider.WasOnSlope() {
		tolerance = c.SlopeExitTolerance
	}
	sides := solidSides(mv.CurrentHitPoints(), mv.ProposedHitPoints(), ti.Frame, tolerance)
	if bottomOnly {
		sides = sides.only(SideBottom)
	}
	if sides.empty() {
		return nil
	}
	return &Contact{
		Collider:     mv.Collider,
		Other:        ContactedObject{Kind: ObjectTile, Coordinates: ti.Coordinates},
		Blocking:     true,
		Sides:        sides.sides(),
		Intersection: toLocal(ti.Intersection, mv.Proposed),
		Position:     sides.apply(mv.Proposed),
	}
}

// jumpWallContact flags an airborne collider overlapping the outer column
// of a jump wall.
func (c *Controller) jumpWallContact(mv Movement, ti TileIntersection) {
	col := mv.Collider
	if col.IgnoresJumpWalls || col.Current.OnGround {
		return
	}
	strip := gamemath.Rect{X: ti.Frame.MinX(), Y: ti.Frame.MinY(), W: 1, H: ti.Frame.H}
	if ti.Tile.Kind == tilemap.JumpWallRight {
		strip.X = ti.Frame.MaxX() - 1
	}
	if !mv.ProposedFrame().Intersects(strip) {
		return
	}
	if ti.Tile.Kind == tilemap.JumpWallLeft {
		col.Current.PushesLeftJumpWall = true
	} else {
		col.Current.PushesRightJumpWall = true
	}
}

// slopeContact lifts the collider onto the slope surface under its leading
// bottom probe: bottom right for regular slopes, bottom left for inverse.
func (c *Controller) slopeContact(mv Movement, ti TileIntersection) *Contact {
	col := mv.Collider
	if col.Current.OnSlope {
		return nil
	}
	ctx, ok := c.m.SlopeContext(ti.Coordinates)
	if !ok {
		return nil
	}
	hp := mv.ProposedHitPoints()
	corner := hp.BottomRight
	if ti.Tile.IsInverse() {
		corner = hp.BottomLeft
	}
	if !corner.Intersects(ti.Frame) {
		return nil
	}

	localX := corner.MinX() - ti.Frame.MinX()
	surface := ti.Frame.MinY() + gamemath.SlopeSurfaceHeight(
		ti.Tile.Left, ti.Tile.Right, localX, ti.Frame.W, ti.Frame.H, tilemap.SlopeResolution)
	offset := surface - corner.MinY()
	if offset < 0 && mv.VerticalVelocity > 0 {
		return nil
	}

	col.Current.OnSlope = true
	col.Current.SlopeContext = &ctx
	pos := mv.Proposed
	pos.Y += offset
	return &Contact{
		Collider:     col,
		Other:        ContactedObject{Kind: ObjectSlope, Coordinates: ti.Coordinates, Slope: ctx},
		Blocking:     true,
		Sides:        []ContactSide{SideBottom},
		Intersection: toLocal(ti.Intersection, mv.Proposed),
		Position:     pos,
	}
}

// Resolve moves a collider along its movement, stopping at tiles, and
// returns the corrected proposed position with every contact made. The path
// is checked in steps of at most MaxDelta through any intermediary
// waypoints. After a contact that moves the collider, resolution starts over
// from the corrected position.
func (c *Controller) Resolve(mv Movement) Result {
	res := Result{Position: mv.Proposed}
	if c.m == nil {
		return res
	}
	col := mv.Collider
	bounds := c.m.Bounds()
	if !bounds.Touches(mv.CurrentFrame()) && !bounds.Touches(mv.ProposedFrame()) {
		col.Current.OutsideMapBounds = true
		return res
	}

	r := &resolution{mv: mv, recorded: make(map[tilemap.Coordinates]int)}
	points := gamemath.Interpolate(mv.Current, mv.Intermediary, mv.Proposed, c.MaxDelta)
	res.Position = c.resolvePath(r, points, 0)
	res.Contacts = r.contacts

	if col.ShouldBeKilled() {
		col.Current.KilledByCollision = true
		return res
	}

	final := mv
	final.Proposed = res.Position
	final.Intermediary = nil
	c.emptyTilePass(r, final)
	res.Contacts = r.contacts
	return res
}

type resolution struct {
	mv       Movement
	contacts []Contact
	recorded map[tilemap.Coordinates]int
}

// record keeps the latest contact per cell.
func (r *resolution) record(ct Contact) {
	if i, ok := r.recorded[ct.Other.Coordinates]; ok {
		r.contacts[i] = ct
		return
	}
	r.recorded[ct.Other.Coordinates] = len(r.contacts)
	r.contacts = append(r.contacts, ct)
}

func (c *Controller) resolvePath(r *resolution, points []gamemath.Vec, depth int) gamemath.Vec {
	for _, p := range points {
		step := r.mv
		step.Proposed = p
		step.Intermediary = nil
		for _, ti := range c.TileIntersections(step) {
			ct := c.TileContact(step, ti)
			if ct == nil {
				continue
			}
			r.mv.Collider.ApplyContactSides(ct.Sides)
			r.record(*ct)
			// A crushed collider is not resolved any further.
			if r.mv.Collider.ShouldBeKilled() {
				return ct.Position
			}
			if ct.Position == p {
				continue
			}
			if depth >= maxResolveDepth {
				return ct.Position
			}
			return c.resolvePath(r, []gamemath.Vec{ct.Position}, depth+1)
		}
	}
	return points[len(points)-1]
}

// emptyTilePass raises the gap and corner jump flags from the empty cells
// the final frame overlaps.
func (c *Controller) emptyTilePass(r *resolution, mv Movement) {
	col := mv.Collider
	frame := mv.ProposedFrame()
	hp := mv.ProposedHitPoints()
	for _, ti := range c.TileIntersections(mv) {
		if ti.Tile != nil || !ti.Overlaps {
			continue
		}
		if gap, ok := c.m.GapAt(ti.Coordinates); ok && !col.Current.OnGap {
			start := c.m.WorldRect(tilemap.Coordinates{Column: ti.Coordinates.Column, Row: gap.StartRow})
			if start.MinY() < frame.MinY() {
				col.Current.OnGap = true
				r.record(Contact{
					Collider:     col,
					Other:        ContactedObject{Kind: ObjectTile, Coordinates: ti.Coordinates, Empty: true},
					Intersection: toLocal(ti.Intersection, mv.Proposed),
					Position:     mv.Proposed,
				})
			}
		}
		if c.m.IsCornerJump(ti.Coordinates) {
			cornerJump(col, ti, hp)
		}
	}
}

// cornerJump keeps a collider that just walked off a ledge jumpable.
func cornerJump(col *Collider, ti TileIntersection, hp HitPoints) {
	f := &col.Current
	if f.OnCornerJump || f.DiscardsCornerJump {
		return
	}
	if col.Previous.OnCornerJump {
		f.OnCornerJump = true
		return
	}
	if col.WasOnGround() && (hp.BottomLeft.Intersects(ti.Frame) || hp.BottomRight.Intersects(ti.Frame)) {
		f.OnCornerJump = true
		return
	}
	f.DiscardsCornerJump = true
}

// ColliderContact reports the overlap of two colliders' proposed frames.
// Collider contacts never move either collider.
func ColliderContact(a, b Movement) *Contact {
	if !a.Collider.ShouldContact(b.Collider) {
		return nil
	}
	fa, fb := a.ProposedFrame(), b.ProposedFrame()
	if !fa.Intersects(fb) {
		return nil
	}
	inter, _ := fa.Intersect(fb)
	return &Contact{
		Collider:          a.Collider,
		Other:             ContactedObject{Kind: ObjectCollider, Collider: b.Collider},
		Sides:             overlapSides(fa, inter),
		Intersection:      toLocal(inter, a.Proposed),
		OtherSides:        overlapSides(fb, inter),
		OtherIntersection: toLocal(inter, b.Proposed),
		Position:          a.Proposed,
	}
}
