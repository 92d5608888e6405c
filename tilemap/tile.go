// Package tilemap holds the immutable collision grid a level is resolved
// against.
package tilemap

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the collision behaviour of a tile.
type Kind int

const (
	Ground Kind = iota
	OneWay
	JumpWallLeft
	JumpWallRight
	Slope
)

var kindNames = map[Kind]string{
	Ground:        "ground",
	OneWay:        "one_way",
	JumpWallLeft:  "jump_wall_left",
	JumpWallRight: "jump_wall_right",
	Slope:         "slope",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tile is a single collision cell. Left and Right are only meaningful for
// slopes: the number of empty pixel rows above the surface at each edge of a
// tile that is SlopeResolution pixels tall.
type Tile struct {
	Kind  Kind
	Left  int
	Right int
}

// SlopeResolution is the pixel size of the slope bitmap.
const SlopeResolution = 16

const slopePrefix = "slope_"

// ParseTile parses a tile type name as written by the level editor:
// ground, one_way, jump_wall_left, jump_wall_right or slope_<left>_<right>.
func ParseTile(name string) (Tile, error) {
	switch name {
	case "ground":
		return Tile{Kind: Ground}, nil
	case "one_way":
		return Tile{Kind: OneWay}, nil
	case "jump_wall_left":
		return Tile{Kind: JumpWallLeft}, nil
	case "jump_wall_right":
		return Tile{Kind: JumpWallRight}, nil
	}
	if !strings.HasPrefix(name, slopePrefix) {
		return Tile{}, fmt.Errorf("unknown tile type %q", name)
	}
	parts := strings.Split(strings.TrimPrefix(name, slopePrefix), "_")
	if len(parts) != 2 {
		return Tile{}, fmt.Errorf("malformed slope %q", name)
	}
	left, err := strconv.Atoi(parts[0])
	if err != nil {
		return Tile{}, fmt.Errorf("malformed slope %q: %w", name, err)
	}
	right, err := strconv.Atoi(parts[1])
	if err != nil {
		return Tile{}, fmt.Errorf("malformed slope %q: %w", name, err)
	}
	if left < 0 || right < 0 || left >= SlopeResolution || right >= SlopeResolution {
		return Tile{}, fmt.Errorf("slope %q out of range", name)
	}
	return Tile{Kind: Slope, Left: left, Right: right}, nil
}

// NewSlope returns a slope tile with the given edge depths.
func NewSlope(left, right int) *Tile {
	return &Tile{Kind: Slope, Left: left, Right: right}
}

func (t Tile) String() string {
	if t.Kind == Slope {
		return fmt.Sprintf("%s%d_%d", slopePrefix, t.Left, t.Right)
	}
	return t.Kind.String()
}

func (t Tile) IsSlope() bool { return t.Kind == Slope }

func (t Tile) IsGroundOrOneWay() bool { return t.Kind == Ground || t.Kind == OneWay }

func (t Tile) IsJumpWall() bool { return t.Kind == JumpWallLeft || t.Kind == JumpWallRight }

// Inclination returns how many tiles wide a slope is per tile of rise:
// 1, 2 or 4. Flat or unsupported slopes return 0.
func (t Tile) Inclination() int {
	if t.Kind != Slope {
		return 0
	}
	d := t.Right - t.Left
	if d < 0 {
		d = -d
	}
	switch d {
	case 15:
		return 1
	case 7:
		return 2
	case 3:
		return 4
	}
	return 0
}

// IsInverse reports whether the surface rises right-to-left.
func (t Tile) IsInverse() bool {
	return t.Kind == Slope && t.Left < t.Right
}

// startsRun reports whether the tile is the lowest piece of a slope run.
func (t Tile) startsRun() bool {
	if t.IsInverse() {
		return t.Left == 0
	}
	return t.Left == SlopeResolution-1
}
