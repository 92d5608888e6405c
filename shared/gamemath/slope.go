package gamemath

import "math"

// SlopeDepth returns the number of empty pixel rows above a slope surface at
// bitmap column x, interpolated between the depths at the left and right
// edges of a tile that is resolution pixels wide.
func SlopeDepth(left, right, x, resolution int) int {
	last := resolution - 1
	if last <= 0 {
		return left
	}
	x = ClampInt(x, 0, last)
	d := float64(left) + float64(right-left)*float64(x)/float64(last)
	return ClampInt(int(math.Round(d)), 0, last)
}

// SlopeSurfaceRow returns the topmost filled bitmap row at column x, counted
// from the bottom of the tile.
func SlopeSurfaceRow(left, right, x, resolution int) int {
	return resolution - 1 - SlopeDepth(left, right, x, resolution)
}

// SlopeSurfaceHeight returns the height of a slope surface above the tile
// bottom at local x, for a tile of the given world size.
func SlopeSurfaceHeight(left, right int, localX, tileW, tileH float64, resolution int) float64 {
	col := int(math.Floor(localX * float64(resolution) / tileW))
	row := SlopeSurfaceRow(left, right, col, resolution)
	return float64(row+1) * tileH / float64(resolution)
}
