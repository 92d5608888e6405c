package factory

import (
	"github.com/automoto/platcore/archetypes"
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/kinematics"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/shared/leveldata"
	"github.com/automoto/platcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Collider categories used by the sandbox.
const (
	CategoryPlayer uint32 = 1 << iota
	CategoryBody
	CategoryMover
)

func uniformMargins(m float64) collision.Margins {
	return collision.Margins{
		LeftBottom: m, LeftTop: m,
		RightBottom: m, RightTop: m,
		TopLeft: m, TopRight: m,
		BottomLeft: m, BottomRight: m,
	}
}

// SpawnPosition returns where the player starts on data's map: above the
// leftmost spawn point, or a few tiles in at half height without one.
func SpawnPosition(data *leveldata.CollisionData) gamemath.Vec {
	if len(data.SpawnPoints) > 0 {
		sp := data.SpawnPoints[0]
		return gamemath.Vec{X: sp.X, Y: sp.Y + cfg.Player.Height/2}
	}
	return gamemath.Vec{X: 3 * data.TileWidth, Y: data.Height() / 2}
}

func CreatePlayer(ecs *ecs.ECS, pos gamemath.Vec) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	col := collision.NewCollider(
		gamemath.Vec{X: cfg.Player.Width, Y: cfg.Player.Height},
		gamemath.Vec{},
		uniformMargins(cfg.Player.ProbeMargin),
	)
	col.Category = CategoryPlayer
	col.ContactMask = CategoryBody | CategoryMover
	setupCollider(ecs, player, pos, col, tags.ResolvPlayer)

	components.KinematicsBody.Set(player, kinematics.NewBody(cfg.Kinematics))
	return player
}

// CreateBody spawns a falling box without input.
func CreateBody(ecs *ecs.ECS, pos, size gamemath.Vec) *donburi.Entry {
	body := archetypes.Body.Spawn(ecs)

	col := collision.NewCollider(size, gamemath.Vec{}, collision.Margins{})
	col.Category = CategoryBody
	col.ContactMask = CategoryPlayer | CategoryMover
	setupCollider(ecs, body, pos, col)

	components.KinematicsBody.Set(body, kinematics.NewBody(cfg.Kinematics))
	return body
}

func setupCollider(ecs *ecs.ECS, e *donburi.Entry, pos gamemath.Vec, col *collision.Collider, resolvTags ...string) {
	components.Transform.SetValue(e, collision.NewTransform(pos))
	components.Collider.Set(e, col)

	frame := col.Frame(pos)
	obj := resolv.NewObject(frame.X, frame.Y, frame.W, frame.H, append([]string{tags.ResolvCollider}, resolvTags...)...)
	obj.Data = e
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)
}
