package gamemath

import "math"

// Vec is a point or displacement in world space. Y grows upwards.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Lerp returns the point t of the way from v to o.
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Interpolate returns the points visited going from 'from' through every
// waypoint to 'to', with consecutive points at most maxDelta apart. The
// starting point is not included; the last point is always 'to'.
func Interpolate(from Vec, waypoints []Vec, to Vec, maxDelta float64) []Vec {
	var points []Vec
	prev := from
	for _, target := range append(append([]Vec(nil), waypoints...), to) {
		dist := prev.Dist(target)
		steps := 1
		if maxDelta > 0 && dist > maxDelta {
			steps = int(math.Ceil(dist / maxDelta))
		}
		for i := 1; i < steps; i++ {
			points = append(points, prev.Lerp(target, float64(i)/float64(steps)))
		}
		points = append(points, target)
		prev = target
	}
	return points
}
