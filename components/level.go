package components

import (
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/tilemap"
	"github.com/yohamta/donburi"
)

// LevelData is the loaded collision level. A level without a map skips tile
// resolution.
type LevelData struct {
	Path       string
	Data       *leveldata.CollisionData
	Map        *tilemap.Map
	Controller *collision.Controller
}

// TileSize returns the map's tile size, or zero without a map.
func (l *LevelData) TileSize() gamemath.Vec {
	if l == nil || l.Map == nil {
		return gamemath.Vec{}
	}
	return l.Map.TileSize()
}

var Level = donburi.NewComponentType[LevelData]()
