package factory

import (
	"fmt"
	"io/fs"
	"log"

	"github.com/automoto/platcore/archetypes"
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/tilemap"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewLevelData builds the level component for parsed collision data. Nil
// data gives a level without a tile map.
func NewLevelData(path string, data *leveldata.CollisionData) (*components.LevelData, error) {
	level := &components.LevelData{Path: path, Data: data}
	if data != nil {
		m, err := tilemap.FromCollisionData(data)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", path, err)
		}
		level.Map = m
	}
	ctrl := collision.NewController(level.Map)
	ctrl.MaxDelta = cfg.Collision.InterpolationMaxDelta
	ctrl.SlopeExitTolerance = cfg.Collision.SlopeExitTolerance
	level.Controller = ctrl
	return level, nil
}

func CreateLevel(ecs *ecs.ECS, path string, data *leveldata.CollisionData) (*donburi.Entry, error) {
	levelData, err := NewLevelData(path, data)
	if err != nil {
		return nil, err
	}

	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, levelData)

	if levelData.Map != nil {
		log.Printf("[level] loaded %s: %dx%d tiles", path, levelData.Map.Columns(), levelData.Map.Rows())
	}
	return level, nil
}

// LoadLevel parses the TMX file at path within fsys and creates its level
// entity.
func LoadLevel(ecs *ecs.ECS, fsys fs.FS, path string) (*donburi.Entry, error) {
	data, err := leveldata.LoadCollisionData(fsys, path)
	if err != nil {
		return nil, err
	}
	return CreateLevel(ecs, path, data)
}
