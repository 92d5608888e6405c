// Package collision resolves collider movement against a tile map and
// against other colliders.
package collision

import (
	"fmt"

	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
)

// Margins inset the hit point probes from the corners of a collider.
type Margins struct {
	LeftBottom, LeftTop     float64
	RightBottom, RightTop   float64
	TopLeft, TopRight       float64
	BottomLeft, BottomRight float64
}

// ContactFlags is the contact state produced by one collision pass.
type ContactFlags struct {
	OnGround            bool
	OnSlope             bool
	OnGap               bool
	AtCeiling           bool
	PushesLeftWall      bool
	PushesRightWall     bool
	PushesLeftJumpWall  bool
	PushesRightJumpWall bool
	// PushesDown is set by gameplay code to drop through one-way tiles.
	PushesDown         bool
	OnCornerJump       bool
	DiscardsCornerJump bool
	KilledByCollision  bool
	OutsideMapBounds   bool
	SlopeContext       *tilemap.SlopeContext
}

// Collider is an axis-aligned footprint centred on its owner's position plus
// the contact flags of the current and previous collision pass.
type Collider struct {
	Size    gamemath.Vec
	Offset  gamemath.Vec
	Margins Margins

	IgnoresJumpWalls bool
	// Category is what this collider is; ContactMask selects which
	// categories it reports contacts with.
	Category    uint32
	ContactMask uint32
	// Priority orders resolution between colliders, lowest first.
	Priority int

	Current  ContactFlags
	Previous ContactFlags
}

// NewCollider returns a collider of the given size. It panics when the
// margins leave no room for the probes on any side.
func NewCollider(size, offset gamemath.Vec, margins Margins) *Collider {
	if size.X <= 0 || size.Y <= 0 {
		panic(fmt.Sprintf("collision: invalid collider size %v", size))
	}
	checks := []struct {
		name      string
		a, b, lim float64
	}{
		{"left", margins.LeftBottom, margins.LeftTop, size.Y},
		{"right", margins.RightBottom, margins.RightTop, size.Y},
		{"top", margins.TopLeft, margins.TopRight, size.X},
		{"bottom", margins.BottomLeft, margins.BottomRight, size.X},
	}
	for _, c := range checks {
		if c.a < 0 || c.b < 0 || c.a+c.b+2 > c.lim {
			panic(fmt.Sprintf("collision: %s margins %g+%g do not fit size %g", c.name, c.a, c.b, c.lim))
		}
	}
	return &Collider{Size: size, Offset: offset, Margins: margins}
}

// Frame returns the collider's world rect for an owner at pos.
func (c *Collider) Frame(pos gamemath.Vec) gamemath.Rect {
	return gamemath.Rect{
		X: pos.X - c.Size.X/2 + c.Offset.X,
		Y: pos.Y - c.Size.Y/2 + c.Offset.Y,
		W: c.Size.X,
		H: c.Size.Y,
	}
}

// HitPoints are the 1x1 probes sampled along each side of a collider.
type HitPoints struct {
	LeftBottom, LeftTop     gamemath.Rect
	RightBottom, RightTop   gamemath.Rect
	TopLeft, TopRight       gamemath.Rect
	BottomLeft, BottomRight gamemath.Rect
}

func probe(x, y float64) gamemath.Rect {
	return gamemath.Rect{X: x, Y: y, W: 1, H: 1}
}

// HitPoints returns the probes of the collider for an owner at pos.
func (c *Collider) HitPoints(pos gamemath.Vec) HitPoints {
	f := c.Frame(pos)
	m := c.Margins
	return HitPoints{
		LeftBottom:  probe(f.MinX(), f.MinY()+m.LeftBottom),
		LeftTop:     probe(f.MinX(), f.MaxY()-m.LeftTop-1),
		RightBottom: probe(f.MaxX()-1, f.MinY()+m.RightBottom),
		RightTop:    probe(f.MaxX()-1, f.MaxY()-m.RightTop-1),
		TopLeft:     probe(f.MinX()+m.TopLeft, f.MaxY()-1),
		TopRight:    probe(f.MaxX()-m.TopRight-1, f.MaxY()-1),
		BottomLeft:  probe(f.MinX()+m.BottomLeft, f.MinY()),
		BottomRight: probe(f.MaxX()-m.BottomRight-1, f.MinY()),
	}
}

// ResetStates moves the current flags to Previous and clears Current. It is
// called once per step, right before the collision pass.
func (c *Collider) ResetStates() {
	c.Previous = c.Current
	c.Current = ContactFlags{}
}

// ApplyContactSides raises the flags matching blocked sides.
func (c *Collider) ApplyContactSides(sides []ContactSide) {
	for _, s := range sides {
		switch s {
		case SideTop:
			c.Current.AtCeiling = true
		case SideBottom:
			c.Current.OnGround = true
		case SideLeft:
			c.Current.PushesLeftWall = true
		case SideRight:
			c.Current.PushesRightWall = true
		}
	}
}

// IsOnAir reports whether nothing supports the collider.
func (c *Collider) IsOnAir() bool {
	return !c.Current.OnGround && !c.Current.OnSlope
}

// ShouldBeKilled reports whether the collider is being crushed.
func (c *Collider) ShouldBeKilled() bool {
	f := c.Current
	return (f.AtCeiling && f.OnGround) || (f.PushesLeftWall && f.PushesRightWall)
}

// ShouldContact reports whether c reports contacts with other.
func (c *Collider) ShouldContact(other *Collider) bool {
	return c != other && c.ContactMask&other.Category != 0
}

func (c *Collider) WasOnGround() bool { return c.Previous.OnGround }

func (c *Collider) WasOnSlope() bool { return c.Previous.OnSlope }

func (c *Collider) DidPushDown() bool { return c.Previous.PushesDown }

func (c *Collider) DidPushLeftJumpWall() bool { return c.Previous.PushesLeftJumpWall }

func (c *Collider) DidPushRightJumpWall() bool { return c.Previous.PushesRightJumpWall }
