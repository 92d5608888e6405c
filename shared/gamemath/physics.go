package gamemath

import "math"

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// ClampFloat clamps value to [lo, hi].
func ClampFloat(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// ClampInt clamps value to [lo, hi].
func ClampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// RoundAway rounds v to the next integer away from zero.
func RoundAway(v float64) float64 {
	if v < 0 {
		return math.Floor(v)
	}
	return math.Ceil(v)
}

// SignFlipped reports whether a value went from one side of zero to the other.
func SignFlipped(before, after float64) bool {
	return (before > 0 && after < 0) || (before < 0 && after > 0)
}
