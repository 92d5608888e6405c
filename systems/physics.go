package systems

import (
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var bodyQuery = donburi.NewQuery(filter.Contains(components.Transform, components.KinematicsBody))

// UpdateKinematics integrates every body and writes its proposed position.
func UpdateKinematics(ecs *ecs.ECS) {
	tileSize := currentLevel(ecs.World).TileSize()

	bodyQuery.Each(ecs.World, func(e *donburi.Entry) {
		body := components.KinematicsBody.Get(e)
		t := components.Transform.Get(e)

		var col *collision.Collider
		if e.HasComponent(components.Collider) {
			col = components.Collider.Get(e)
		}
		body.Step(cfg.C.TimeStep, t, col, tileSize)
	})
}

// ResetBodies clears per-step accelerations once the step is committed.
func ResetBodies(ecs *ecs.ECS) {
	components.KinematicsBody.Each(ecs.World, func(e *donburi.Entry) {
		components.KinematicsBody.Get(e).ResetStates()
	})
}

// CommitTransforms accepts every proposed position except those of
// colliders killed by the last pass, which stay where they were.
func CommitTransforms(ecs *ecs.ECS) {
	components.Transform.Each(ecs.World, func(e *donburi.Entry) {
		t := components.Transform.Get(e)
		if e.HasComponent(components.Collider) && components.Collider.Get(e).Current.KilledByCollision {
			t.Discard()
			return
		}
		t.Commit()
	})
}
