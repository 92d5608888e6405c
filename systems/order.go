package systems

import "github.com/yohamta/donburi/ecs"

// Order is the fixed per-step system order. Kinematics reads the contact
// flags left by the previous collision pass; the collision pass resets them
// right before resolving.
var Order = []ecs.System{
	UpdatePlayer,
	UpdateMovers,
	UpdateKinematics,
	UpdateCollisions,
	UpdateColliderContacts,
	CommitTransforms,
	ResetBodies,
	ProcessEvents,
}

// AddSystems registers Order on e.
func AddSystems(e *ecs.ECS) {
	for _, s := range Order {
		e.AddSystem(s)
	}
}
