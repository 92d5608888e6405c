package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	// CollisionLayer is the tile layer holding collision tiles.
	CollisionLayer = "collision"
	// ColliderProperty names the tile type on a tileset tile.
	ColliderProperty = "collider"

	spawnGroup = "PlayerSpawn"
	moverGroup = "Movers"
)

// Older levels tag ramps with a "slope" property instead of a collider type.
var legacySlopes = map[string]string{
	"45_up_right": "slope_15_0",
	"45_up_left":  "slope_0_15",
}

// LoadCollisionData parses a TMX file and returns its collision tiles, spawn
// points and movers. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &CollisionData{
		TileWidth:  float64(levelMap.TileWidth),
		TileHeight: float64(levelMap.TileHeight),
		Columns:    make([][]string, levelMap.Width),
	}
	for x := range data.Columns {
		data.Columns[x] = make([]string, levelMap.Height)
	}
	mapHeight := float64(levelMap.Height * levelMap.TileHeight)

	found := false
	for _, layer := range levelMap.Layers {
		if layer.Name != CollisionLayer {
			continue
		}
		found = true
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				// Tiled rows run top-down.
				data.Columns[x][levelMap.Height-1-y] = tileType(tile)
			}
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("load TMX %s: no %q layer", tmxPath, CollisionLayer)
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case spawnGroup:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     mapHeight - o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case moverGroup:
			for _, o := range og.Objects {
				data.Movers = append(data.Movers, MoverPath{
					X:        o.X,
					Y:        mapHeight - o.Y - o.Height,
					W:        o.Width,
					H:        o.Height,
					Distance: o.Properties.GetFloat("distance"),
					Seconds:  o.Properties.GetFloat("seconds"),
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data, nil
}

func tileType(tile *tiled.LayerTile) string {
	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil || tilesetTile == nil {
		return "ground"
	}
	if name := tilesetTile.Properties.GetString(ColliderProperty); name != "" {
		return name
	}
	if name, ok := legacySlopes[tilesetTile.Properties.GetString("slope")]; ok {
		return name
	}
	return "ground"
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads collision
// data for each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
