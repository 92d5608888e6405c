package tilemap

import (
	"fmt"
	"math"
	"sort"

	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
)

// Coordinates address a cell by column and row, row 0 at the bottom.
type Coordinates struct {
	Column, Row int
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// SlopeContext describes the contiguous run of slope tiles a tile belongs to.
type SlopeContext struct {
	Inclination int
	Inverse     bool
	Leftmost    Coordinates
	Rightmost   Coordinates
}

// Range is an inclusive span of columns and rows.
type Range struct {
	Left, Right, Bottom, Top int
}

// Gap is an inclusive vertical run of empty cells in one column.
type Gap struct {
	StartRow, EndRow int
}

// Map is a column-major grid of optional tiles. It is immutable once built
// and safe to share between colliders.
type Map struct {
	tiles    [][]*Tile
	tileSize gamemath.Vec
	columns  int
	rows     int

	slopes      map[Coordinates]SlopeContext
	gaps        [][]Gap
	cornerJumps map[Coordinates]bool
}

// New builds a map from tiles indexed [column][row]. It panics on ragged
// columns or a non-positive tile size.
func New(tiles [][]*Tile, tileSize gamemath.Vec) *Map {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		panic(fmt.Sprintf("tilemap: invalid tile size %v", tileSize))
	}
	m := &Map{
		tiles:    tiles,
		tileSize: tileSize,
		columns:  len(tiles),
	}
	if m.columns > 0 {
		m.rows = len(tiles[0])
	}
	for c, column := range tiles {
		if len(column) != m.rows {
			panic(fmt.Sprintf("tilemap: column %d has %d rows, want %d", c, len(column), m.rows))
		}
	}
	m.slopes = m.buildSlopeContexts()
	m.gaps, m.cornerJumps = m.buildGapsAndCornerJumps()
	return m
}

// FromCollisionData converts parsed level data into a map.
func FromCollisionData(data *leveldata.CollisionData) (*Map, error) {
	tiles := make([][]*Tile, len(data.Columns))
	for c, column := range data.Columns {
		tiles[c] = make([]*Tile, len(column))
		for r, name := range column {
			if name == "" {
				continue
			}
			tile, err := ParseTile(name)
			if err != nil {
				return nil, fmt.Errorf("tile %v: %w", Coordinates{c, r}, err)
			}
			tiles[c][r] = &tile
		}
	}
	for c, column := range tiles {
		if len(column) != len(tiles[0]) {
			return nil, fmt.Errorf("column %d has %d rows, want %d", c, len(column), len(tiles[0]))
		}
	}
	if data.TileWidth <= 0 || data.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile size %gx%g", data.TileWidth, data.TileHeight)
	}
	return New(tiles, gamemath.Vec{X: data.TileWidth, Y: data.TileHeight}), nil
}

func (m *Map) Columns() int { return m.columns }

func (m *Map) Rows() int { return m.rows }

func (m *Map) TileSize() gamemath.Vec { return m.tileSize }

// Bounds returns the world rect covered by the map.
func (m *Map) Bounds() gamemath.Rect {
	return gamemath.Rect{W: float64(m.columns) * m.tileSize.X, H: float64(m.rows) * m.tileSize.Y}
}

// TileAt returns the tile at a cell, or nil for empty and out-of-range cells.
func (m *Map) TileAt(column, row int) *Tile {
	if column < 0 || row < 0 || column >= m.columns || row >= m.rows {
		return nil
	}
	return m.tiles[column][row]
}

// SlopeContext returns the slope run the tile at c belongs to.
func (m *Map) SlopeContext(c Coordinates) (SlopeContext, bool) {
	ctx, ok := m.slopes[c]
	return ctx, ok
}

// WorldRect returns the world rect of a cell.
func (m *Map) WorldRect(c Coordinates) gamemath.Rect {
	return gamemath.Rect{
		X: float64(c.Column) * m.tileSize.X,
		Y: float64(c.Row) * m.tileSize.Y,
		W: m.tileSize.X,
		H: m.tileSize.Y,
	}
}

// CellAt returns the cell containing a world point. The result may be out of
// range.
func (m *Map) CellAt(p gamemath.Vec) Coordinates {
	return Coordinates{
		Column: int(math.Floor(p.X / m.tileSize.X)),
		Row:    int(math.Floor(p.Y / m.tileSize.Y)),
	}
}

// TileRange returns the cells around a world rect, padded by one tile on each
// side and clamped to the map. ok is false for an empty map.
func (m *Map) TileRange(r gamemath.Rect) (Range, bool) {
	if m.columns == 0 || m.rows == 0 {
		return Range{}, false
	}
	lo := m.CellAt(gamemath.Vec{X: r.MinX(), Y: r.MinY()})
	hi := m.CellAt(gamemath.Vec{X: r.MaxX(), Y: r.MaxY()})
	return Range{
		Left:   gamemath.ClampInt(lo.Column-1, 0, m.columns-1),
		Right:  gamemath.ClampInt(hi.Column+1, 0, m.columns-1),
		Bottom: gamemath.ClampInt(lo.Row-1, 0, m.rows-1),
		Top:    gamemath.ClampInt(hi.Row+1, 0, m.rows-1),
	}, true
}

// Gaps returns the vertical runs of empty cells in a column, bottom first.
func (m *Map) Gaps(column int) []Gap {
	if column < 0 || column >= m.columns {
		return nil
	}
	return m.gaps[column]
}

// GapAt returns the gap containing a cell.
func (m *Map) GapAt(c Coordinates) (Gap, bool) {
	for _, g := range m.Gaps(c.Column) {
		if c.Row >= g.StartRow && c.Row <= g.EndRow {
			return g, true
		}
	}
	return Gap{}, false
}

// IsCornerJump reports whether an empty cell sits beside the top of a ledge.
func (m *Map) IsCornerJump(c Coordinates) bool {
	return m.cornerJumps[c]
}

// CornerJumps returns all corner jump cells ordered by column then row.
func (m *Map) CornerJumps() []Coordinates {
	out := make([]Coordinates, 0, len(m.cornerJumps))
	for c := range m.cornerJumps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Row < out[j].Row
	})
	return out
}

func (m *Map) buildSlopeContexts() map[Coordinates]SlopeContext {
	contexts := make(map[Coordinates]SlopeContext)
	for row := 0; row < m.rows; row++ {
		var run []Coordinates
		var first *Tile
		flush := func() {
			if len(run) == 0 {
				return
			}
			ctx := SlopeContext{
				Inclination: first.Inclination(),
				Inverse:     first.IsInverse(),
				Leftmost:    run[0],
				Rightmost:   run[len(run)-1],
			}
			for _, c := range run {
				contexts[c] = ctx
			}
			run, first = nil, nil
		}
		for col := 0; col < m.columns; col++ {
			tile := m.tiles[col][row]
			if tile == nil || !tile.IsSlope() {
				flush()
				continue
			}
			continues := first != nil &&
				tile.Inclination() == first.Inclination() &&
				tile.IsInverse() == first.IsInverse() &&
				!tile.startsRun()
			if !continues {
				flush()
				first = tile
			}
			run = append(run, Coordinates{Column: col, Row: row})
		}
		flush()
	}
	return contexts
}

func (m *Map) buildGapsAndCornerJumps() ([][]Gap, map[Coordinates]bool) {
	gaps := make([][]Gap, m.columns)
	corners := make(map[Coordinates]bool)
	for col := 0; col < m.columns; col++ {
		start := -1
		for row := 0; row < m.rows; row++ {
			tile := m.tiles[col][row]
			if tile != nil && tile.IsGroundOrOneWay() && m.TileAt(col, row+1) == nil && row+1 < m.rows {
				for _, side := range []int{col - 1, col + 1} {
					if side >= 0 && side < m.columns && m.tiles[side][row] == nil {
						corners[Coordinates{Column: side, Row: row}] = true
					}
				}
			}
			if tile == nil {
				if start < 0 {
					start = row
				}
				continue
			}
			if start >= 0 {
				gaps[col] = append(gaps[col], Gap{StartRow: start, EndRow: row - 1})
				start = -1
			}
		}
		if start >= 0 {
			gaps[col] = append(gaps[col], Gap{StartRow: start, EndRow: m.rows - 1})
		}
	}
	return gaps, corners
}
