package collision

import (
	"math"

	"github.com/automoto/platcore/shared/gamemath"
)

// sideSet keeps the largest correction found for each side.
type sideSet struct {
	found  [4]bool
	offset [4]float64
}

func (s *sideSet) add(side ContactSide, offset float64) {
	if !s.found[side] || math.Abs(offset) > math.Abs(s.offset[side]) {
		s.found[side] = true
		s.offset[side] = offset
	}
}

func (s sideSet) has(side ContactSide) bool { return s.found[side] }

func (s sideSet) empty() bool {
	return !s.found[SideTop] && !s.found[SideBottom] && !s.found[SideLeft] && !s.found[SideRight]
}

func (s sideSet) only(side ContactSide) sideSet {
	var out sideSet
	if s.found[side] {
		out.add(side, s.offset[side])
	}
	return out
}

func (s sideSet) sides() []ContactSide {
	var out []ContactSide
	for side := SideTop; side <= SideRight; side++ {
		if s.found[side] {
			out = append(out, side)
		}
	}
	return out
}

// apply moves pos by the corrections, y for top/bottom and x for left/right.
func (s sideSet) apply(pos gamemath.Vec) gamemath.Vec {
	pos.Y += s.offset[SideTop] + s.offset[SideBottom]
	pos.X += s.offset[SideLeft] + s.offset[SideRight]
	return pos
}

// probeStep is a side probe before and after a step. Side probes nearest a
// blocked top or bottom are suppressed so landing on a corner is not also a
// wall contact.
type probeStep struct {
	cur, prop  gamemath.Rect
	suppressed bool
}

func overlapsX(p, r gamemath.Rect) bool { return p.MinX() < r.MaxX() && p.MaxX() > r.MinX() }

func overlapsY(p, r gamemath.Rect) bool { return p.MinY() < r.MaxY() && p.MaxY() > r.MinY() }

// solidSides compares probes before and after a step against a solid rect.
// Bottom probes block when they start at or above the top and end at or
// below it, so a collider resting on the rect keeps a zero correction. The
// other sides block only when crossed. stepTolerance lets bottom probes that
// start slightly inside the rect still land on top of it.
func solidSides(cur, prop HitPoints, other gamemath.Rect, stepTolerance float64) sideSet {
	var s sideSet
	top := other.MaxY()
	for _, p := range [][2]gamemath.Rect{{cur.BottomLeft, prop.BottomLeft}, {cur.BottomRight, prop.BottomRight}} {
		c, n := p[0], p[1]
		if overlapsX(n, other) && c.MinY() >= top-stepTolerance && n.MinY() <= top {
			s.add(SideBottom, top-n.MinY())
		}
	}
	for _, p := range [][2]gamemath.Rect{{cur.TopLeft, prop.TopLeft}, {cur.TopRight, prop.TopRight}} {
		c, n := p[0], p[1]
		if overlapsX(n, other) && c.MaxY() <= other.MinY() && n.MaxY() > other.MinY() {
			s.add(SideTop, other.MinY()-n.MaxY())
		}
	}

	bottom, ceiling := s.has(SideBottom), s.has(SideTop)
	for _, h := range []probeStep{{cur.LeftBottom, prop.LeftBottom, bottom}, {cur.LeftTop, prop.LeftTop, ceiling}} {
		if !h.suppressed && overlapsY(h.prop, other) && h.cur.MinX() >= other.MaxX() && h.prop.MinX() < other.MaxX() {
			s.add(SideLeft, other.MaxX()-h.prop.MinX())
		}
	}
	for _, h := range []probeStep{{cur.RightBottom, prop.RightBottom, bottom}, {cur.RightTop, prop.RightTop, ceiling}} {
		if !h.suppressed && overlapsY(h.prop, other) && h.cur.MaxX() <= other.MinX() && h.prop.MaxX() > other.MinX() {
			s.add(SideRight, other.MinX()-h.prop.MaxX())
		}
	}
	return s
}

// overlapSides reports which sides of frame an overlap lies on.
func overlapSides(frame, inter gamemath.Rect) []ContactSide {
	c, ic := frame.Center(), inter.Center()
	var out []ContactSide
	if inter.H <= inter.W {
		switch {
		case ic.Y > c.Y:
			out = append(out, SideTop)
		case ic.Y < c.Y:
			out = append(out, SideBottom)
		}
	}
	if inter.W <= inter.H {
		switch {
		case ic.X < c.X:
			out = append(out, SideLeft)
		case ic.X > c.X:
			out = append(out, SideRight)
		}
	}
	return out
}
