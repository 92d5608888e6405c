package leveldata

import "fmt"

// DefaultLegend maps layout characters to tile type names.
var DefaultLegend = map[rune]string{
	'.':  "",
	'#':  "ground",
	'=':  "one_way",
	'<':  "jump_wall_left",
	'>':  "jump_wall_right",
	'/':  "slope_15_0",
	'\\': "slope_0_15",
}

// ParseRows builds collision data from a text layout, top row first, as
// written in a level sketch. Every row must have the same width.
func ParseRows(rows []string, legend map[rune]string, tileWidth, tileHeight float64) (*CollisionData, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse rows: empty layout")
	}
	width := len([]rune(rows[0]))
	data := &CollisionData{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Columns:    make([][]string, width),
	}
	for x := range data.Columns {
		data.Columns[x] = make([]string, len(rows))
	}

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("parse rows: row %d has width %d, want %d", y, len(runes), width)
		}
		for x, r := range runes {
			name, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("parse rows: unknown tile %q at %d,%d", r, x, y)
			}
			data.Columns[x][len(rows)-1-y] = name
		}
	}
	return data, nil
}
