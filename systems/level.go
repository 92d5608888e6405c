package systems

import (
	"io/fs"
	"log"

	"github.com/automoto/platcore/archetypes"
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/systems/factory"
	"github.com/automoto/platcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// currentLevel returns the world's level, or nil.
func currentLevel(w donburi.World) *components.LevelData {
	entry, ok := components.Level.First(w)
	if !ok {
		return nil
	}
	return components.Level.Get(entry)
}

// SwitchLevel makes next the world's level. The broadphase space is rebuilt
// when the map size changes and movers are respawned from next's data.
// Players and bodies keep their positions.
func SwitchLevel(ecs *ecs.ECS, next *components.LevelData) {
	var prev *leveldata.CollisionData
	entry, ok := components.Level.First(ecs.World)
	if ok {
		prev = components.Level.Get(entry).Data
	} else {
		entry = archetypes.Level.Spawn(ecs)
	}
	components.Level.Set(entry, next)

	if next.Data != nil && !sameDimensions(prev, next.Data) {
		factory.CreateLevelSpace(ecs, next.Data)
	}
	respawnMovers(ecs, next.Data)
}

func sameDimensions(a, b *leveldata.CollisionData) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Width() == b.Width() && a.Height() == b.Height() &&
		a.TileWidth == b.TileWidth && a.TileHeight == b.TileHeight
}

func respawnMovers(ecs *ecs.ECS, data *leveldata.CollisionData) {
	var old []*donburi.Entry
	tags.Mover.Each(ecs.World, func(e *donburi.Entry) {
		old = append(old, e)
	})
	for _, e := range old {
		factory.DestroyCollider(ecs, e)
	}
	if data == nil {
		return
	}
	for _, m := range data.Movers {
		factory.CreateMover(ecs, m)
	}
}

// ReloadLevel re-parses the level's TMX file and swaps in the new map. On
// failure the current map is kept.
func ReloadLevel(ecs *ecs.ECS, fsys fs.FS) error {
	level := currentLevel(ecs.World)
	if level == nil {
		return nil
	}
	path := level.Path

	data, err := leveldata.LoadCollisionData(fsys, path)
	if err != nil {
		log.Printf("[level] reload of %s failed, keeping current map: %v", path, err)
		return err
	}
	next, err := factory.NewLevelData(path, data)
	if err != nil {
		log.Printf("[level] reload of %s failed, keeping current map: %v", path, err)
		return err
	}

	SwitchLevel(ecs, next)
	log.Printf("[level] reloaded %s: %dx%d tiles", next.Path, next.Map.Columns(), next.Map.Rows())
	return nil
}

// NextLevel advances set to its following level and moves the players to
// that level's spawn. On failure the current level stays.
func NextLevel(ecs *ecs.ECS, set *LevelSet) error {
	if level := currentLevel(ecs.World); level != nil && level.Path == set.Path() && level.Data != nil {
		// Keep hot reloads made while the level was active.
		set.store(level.Data)
	}

	name, path, data := set.peekNext()
	next, err := factory.NewLevelData(path, data)
	if err != nil {
		log.Printf("[level] switch to %s failed: %v", name, err)
		return err
	}
	set.advance()

	SwitchLevel(ecs, next)
	respawnPlayers(ecs, factory.SpawnPosition(data))
	log.Printf("[level] switched to %s (%d/%d)", name, set.Index()+1, set.Len())
	return nil
}

// respawnPlayers places every player at pos at rest with cleared contacts.
func respawnPlayers(ecs *ecs.ECS, pos gamemath.Vec) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		*components.Transform.Get(e) = collision.NewTransform(pos)

		col := components.Collider.Get(e)
		col.Current = collision.ContactFlags{}
		col.Previous = collision.ContactFlags{}

		body := components.KinematicsBody.Get(e)
		body.Velocity = gamemath.Vec{}
		body.ResetStates()

		syncObject(e)
	})
}
