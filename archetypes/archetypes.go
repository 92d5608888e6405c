package archetypes

import (
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Transform,
		components.Collider,
		components.KinematicsBody,
		components.Object,
		components.Input,
	)
	// Body is a simulated collider without input.
	Body = newArchetype(
		components.Transform,
		components.Collider,
		components.KinematicsBody,
		components.Object,
	)
	Mover = newArchetype(
		tags.Mover,
		components.Transform,
		components.Collider,
		components.Object,
		components.Mover,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
