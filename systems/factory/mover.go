package factory

import (
	"github.com/automoto/platcore/archetypes"
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMover spawns a collider that slides Distance units along X and back.
// Movers raise collider contacts but are never resolved against tiles.
func CreateMover(ecs *ecs.ECS, path leveldata.MoverPath) *donburi.Entry {
	mover := archetypes.Mover.Spawn(ecs)

	size := gamemath.Vec{X: path.W, Y: path.H}
	origin := gamemath.Vec{X: path.X + path.W/2, Y: path.Y + path.H/2}

	col := collision.NewCollider(size, gamemath.Vec{}, collision.Margins{})
	col.Category = CategoryMover
	col.ContactMask = CategoryPlayer | CategoryBody
	col.Priority = cfg.Mover.Priority
	setupCollider(ecs, mover, origin, col, tags.ResolvMover)

	seconds := path.Seconds
	if seconds <= 0 {
		seconds = cfg.Mover.Seconds
	}
	components.Mover.SetValue(mover, components.MoverData{
		Origin:   origin,
		Distance: path.Distance,
		Seconds:  seconds,
		Tween:    gween.New(0, float32(path.Distance), float32(seconds), ease.Linear),
	})

	return mover
}
