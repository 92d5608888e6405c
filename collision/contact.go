package collision

import (
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
)

// ContactSide is a side of a collider's footprint.
type ContactSide int

const (
	SideTop ContactSide = iota
	SideBottom
	SideLeft
	SideRight
)

func (s ContactSide) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "unknown"
}

// ObjectKind is the kind of object a contact was made with.
type ObjectKind int

const (
	ObjectCollider ObjectKind = iota
	ObjectTile
	ObjectSlope
)

// ContactedObject identifies what a collider touched.
type ContactedObject struct {
	Kind ObjectKind
	// Collider is set for ObjectCollider.
	Collider *Collider
	// Coordinates and Empty are set for tiles and slopes.
	Coordinates tilemap.Coordinates
	Empty       bool
	// Slope is set for ObjectSlope.
	Slope tilemap.SlopeContext
}

// Contact is one resolved contact of a collider.
type Contact struct {
	Collider *Collider
	Other    ContactedObject
	// Blocking contacts moved the collider or stopped it.
	Blocking bool
	Sides    []ContactSide
	// Intersection is in the collider owner's local space.
	Intersection gamemath.Rect
	// OtherSides and OtherIntersection describe the contact from the other
	// collider's point of view.
	OtherSides        []ContactSide
	OtherIntersection gamemath.Rect
	// Position is the corrected proposed position after this contact.
	Position gamemath.Vec
}

// HasSide reports whether the contact touches side s.
func (c Contact) HasSide(s ContactSide) bool {
	for _, side := range c.Sides {
		if side == s {
			return true
		}
	}
	return false
}

func toLocal(r gamemath.Rect, origin gamemath.Vec) gamemath.Rect {
	return r.Translate(-origin.X, -origin.Y)
}
