package systems

import (
	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer turns the player's actions into body accelerations. The
// input component is filled by the scene before the step runs.
func UpdatePlayer(ecs *ecs.ECS) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		input := components.Input.Get(e)
		body := components.KinematicsBody.Get(e)
		col := components.Collider.Get(e)

		dir := 0.0
		if input.Pressed(cfg.ActionMoveLeft) {
			dir -= cfg.DirectionRight
		}
		if input.Pressed(cfg.ActionMoveRight) {
			dir += cfg.DirectionRight
		}
		switch {
		case dir != 0:
			body.HorizontalAcceleration = dir * cfg.Player.RunAcceleration
		case col.IsOnAir():
			body.HorizontalDeceleration = cfg.Player.AirDeceleration
		default:
			body.HorizontalDeceleration = cfg.Player.RunDeceleration
		}

		if input.JustPressed(cfg.ActionJump) && !col.IsOnAir() {
			body.Velocity.Y = cfg.Player.JumpSpeed
			// Leaving the ground: slope stepping must not pin the body.
			col.Current.OnGround = false
			col.Current.OnSlope = false
			col.Current.SlopeContext = nil
		} else if input.Pressed(cfg.ActionJump) && body.Velocity.Y > 0 {
			body.VerticalAcceleration = cfg.Player.JumpHoldAcceleration
		}

		col.Current.PushesDown = input.Pressed(cfg.ActionDrop)
	})
}
