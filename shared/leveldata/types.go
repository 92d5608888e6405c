// Package leveldata parses Tiled level exports into plain collision data.
// It has no dependencies on ebitengine, donburi, or resolv, pure data only.
package leveldata

// CollisionData holds all collision-relevant data parsed from a TMX level file.
type CollisionData struct {
	// Columns holds tile type names indexed [column][row], row 0 at the
	// bottom of the map. Empty cells are "".
	Columns     [][]string
	TileWidth   float64
	TileHeight  float64
	SpawnPoints []SpawnPoint
	Movers      []MoverPath
}

// Width returns the map width in world units.
func (d *CollisionData) Width() float64 {
	return float64(len(d.Columns)) * d.TileWidth
}

// Height returns the map height in world units.
func (d *CollisionData) Height() float64 {
	if len(d.Columns) == 0 {
		return 0
	}
	return float64(len(d.Columns[0])) * d.TileHeight
}

// SpawnPoint represents a player spawn location. Y grows upwards.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// MoverPath describes a rectangle that travels back and forth horizontally.
type MoverPath struct {
	X, Y, W, H float64
	Distance   float64
	Seconds    float64
}
