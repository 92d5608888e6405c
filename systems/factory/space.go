package factory

import (
	"github.com/automoto/platcore/archetypes"
	"github.com/automoto/platcore/components"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateSpace(ecs *ecs.ECS, width, height, cellWidth, cellHeight int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	spaceData := resolv.NewSpace(width, height, cellWidth, cellHeight)
	components.Space.Set(space, spaceData)
	return space
}

// CreateLevelSpace creates a space covering data's map with one cell per
// tile. An existing space is replaced and its objects are moved across.
func CreateLevelSpace(ecs *ecs.ECS, data *leveldata.CollisionData) *donburi.Entry {
	var objects []*resolv.Object
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		old := components.Space.Get(spaceEntry)
		objects = old.Objects()
		old.Remove(objects...)
		ecs.World.Remove(spaceEntry.Entity())
	}

	space := CreateSpace(ecs, int(data.Width()), int(data.Height()), int(data.TileWidth), int(data.TileHeight))
	components.Space.Get(space).Add(objects...)
	return space
}

// addToSpace registers obj with the world's space, if there is one.
func addToSpace(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}

// DestroyCollider removes e and its broadphase object from the world.
func DestroyCollider(ecs *ecs.ECS, e *donburi.Entry) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok && e.HasComponent(components.Object) {
		if obj := components.Object.Get(e); obj.Object != nil {
			components.Space.Get(spaceEntry).Remove(obj.Object)
		}
	}
	ecs.World.Remove(e.Entity())
}
