// Package kinematics integrates velocity and proposes positions from the
// accelerations gameplay code supplies each step.
package kinematics

import (
	"math"

	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/automoto/platcore/tilemap"
)

// Configuration holds the physical constants of a body. Velocities are in
// meters per second; MetersToScreenUnits converts them to world units.
type Configuration struct {
	Gravity                   float64 `yaml:"gravity"`
	MaximumVerticalVelocity   float64 `yaml:"maximumVerticalVelocity"`
	MaximumHorizontalVelocity float64 `yaml:"maximumHorizontalVelocity"`
	MetersToScreenUnits       float64 `yaml:"metersToScreenUnits"`
}

// DefaultConfiguration returns the stock platformer tuning.
func DefaultConfiguration() Configuration {
	return Configuration{
		Gravity:                   37,
		MaximumVerticalVelocity:   18,
		MaximumHorizontalVelocity: 8,
		MetersToScreenUnits:       27,
	}
}

// slopeStickiness pulls a body into the slope each step so the next
// collision pass keeps it attached.
const slopeStickiness = 1.0

// Body is the kinematic state of an entity.
type Body struct {
	Config Configuration

	Velocity         gamemath.Vec
	PreviousVelocity gamemath.Vec

	GravityInEffect                float64
	CurrentMaximumVerticalVelocity float64

	// Per-step inputs, cleared by ResetStates.
	HorizontalAcceleration float64
	HorizontalDeceleration float64
	VerticalAcceleration   float64
	VerticalDeceleration   float64

	verticalAccelerationInEffect   float64
	horizontalAccelerationInEffect float64
}

func NewBody(cfg Configuration) *Body {
	return &Body{
		Config:                         cfg,
		GravityInEffect:                cfg.Gravity,
		CurrentMaximumVerticalVelocity: cfg.MaximumVerticalVelocity,
	}
}

// Step advances the body by dt seconds and adds the resulting displacement
// to t.Proposed. The collider may be nil; when present its flags from the
// last collision pass constrain the velocity. tileSize is needed to find the
// end of a slope run.
func (b *Body) Step(dt float64, t *collision.Transform, c *collision.Collider, tileSize gamemath.Vec) {
	b.stepVertical(dt, t, c)
	b.stepHorizontal(dt, t, c, tileSize)
}

func (b *Body) stepVertical(dt float64, t *collision.Transform, c *collision.Collider) {
	if c != nil {
		f := c.Current
		if f.OnGround || f.OnSlope {
			b.Velocity.Y = math.Max(0, b.Velocity.Y)
		}
		if f.AtCeiling {
			b.Velocity.Y = math.Min(0, b.Velocity.Y)
		}
		if (!c.DidPushLeftJumpWall() && f.PushesLeftJumpWall) ||
			(!c.DidPushRightJumpWall() && f.PushesRightJumpWall) {
			b.Velocity.Y = math.Max(0, b.Velocity.Y)
		}
		if f.OnSlope {
			return
		}
	}

	accel := b.VerticalAcceleration
	if accel == 0 && b.Velocity.Y != 0 {
		accel = -gamemath.Sign(b.Velocity.Y) * b.VerticalDeceleration
	}
	b.verticalAccelerationInEffect = accel
	total := accel - math.Abs(b.GravityInEffect)

	next := b.Velocity.Y + total*dt
	if b.GravityInEffect == 0 && gamemath.SignFlipped(b.Velocity.Y, next) {
		next = 0
	}
	b.Velocity.Y = gamemath.ClampSpeed(next, math.Abs(b.CurrentMaximumVerticalVelocity))

	dy := b.Velocity.Y*dt + 0.5*total*dt*dt
	t.Proposed.Y += dy * b.Config.MetersToScreenUnits
}

func (b *Body) stepHorizontal(dt float64, t *collision.Transform, c *collision.Collider, tileSize gamemath.Vec) {
	if c != nil {
		if c.Current.PushesLeftWall {
			b.Velocity.X = math.Max(0, b.Velocity.X)
		}
		if c.Current.PushesRightWall {
			b.Velocity.X = math.Min(0, b.Velocity.X)
		}
	}

	accel := b.HorizontalAcceleration
	if accel == 0 && b.Velocity.X != 0 {
		accel = -gamemath.Sign(b.Velocity.X) * b.HorizontalDeceleration
	}
	b.horizontalAccelerationInEffect = accel

	next := b.Velocity.X + accel*dt
	if gamemath.SignFlipped(b.Velocity.X, next) {
		next = 0
	}
	// Capped only in the direction being accelerated.
	if accel < 0 {
		next = math.Max(-b.Config.MaximumHorizontalVelocity, next)
	} else if accel > 0 {
		next = math.Min(b.Config.MaximumHorizontalVelocity, next)
	}
	b.Velocity.X = next

	dx := b.Velocity.X * dt * b.Config.MetersToScreenUnits
	t.Proposed.X += dx

	if c == nil || !c.Current.OnSlope || c.Current.SlopeContext == nil {
		return
	}
	if c.Current.SlopeContext.Inclination == 0 {
		return
	}
	b.moveAlongSlope(dx, t, c, *c.Current.SlopeContext, tileSize)
}

// moveAlongSlope replaces the proposed position with one that follows the
// slope for the same travelled distance. Walking off the top end of the run
// adds the corner as an intermediary waypoint.
func (b *Body) moveAlongSlope(dx float64, t *collision.Transform, c *collision.Collider, ctx tilemap.SlopeContext, tileSize gamemath.Vec) {
	travel := math.Abs(dx)
	incl := float64(ctx.Inclination)
	rise := math.Sqrt(travel * travel / (incl*incl + 1))
	sign := 1.0
	if t.Proposed.X < t.Position.X {
		sign = -1
	}
	dir := 1.0
	if ctx.Inverse {
		dir = -1
	}

	delta := gamemath.Vec{X: rise * incl * sign, Y: rise * sign * dir}
	guess := t.Position.Add(delta)
	guess.Y -= slopeStickiness

	t.Intermediary = nil
	if corner, toCorner, ok := slopeCorner(sign, t.Position, guess, travel, c, ctx, tileSize); ok {
		delta = toCorner
		t.Intermediary = []gamemath.Vec{corner}
	}

	t.Proposed = gamemath.Vec{
		X: t.Position.X + gamemath.RoundAway(delta.X),
		Y: t.Position.Y + gamemath.RoundAway(delta.Y) - slopeStickiness,
	}
}

// slopeCorner finds where a body climbing off the top of a run leaves it.
// It returns the owner position with the leading probe on the run's edge
// and the displacement to use instead of the slope one: up to the corner,
// then flat for the rest of the travel.
func slopeCorner(sign float64, pos, guess gamemath.Vec, travel float64, c *collision.Collider, ctx tilemap.SlopeContext, tileSize gamemath.Vec) (gamemath.Vec, gamemath.Vec, bool) {
	var corner gamemath.Vec
	hp := c.HitPoints(guess)
	lift := c.Size.Y/2 - c.Offset.Y

	switch {
	case sign > 0 && !ctx.Inverse:
		edge := tileRect(ctx.Rightmost, tileSize)
		if hp.BottomRight.MaxX() <= edge.MaxX() {
			return gamemath.Vec{}, gamemath.Vec{}, false
		}
		corner = gamemath.Vec{
			X: edge.MaxX() - (c.Size.X/2 - c.Margins.BottomRight) - c.Offset.X,
			Y: edge.MaxY() + lift,
		}
	case sign < 0 && ctx.Inverse:
		edge := tileRect(ctx.Leftmost, tileSize)
		if hp.BottomLeft.MinX() >= edge.MinX() {
			return gamemath.Vec{}, gamemath.Vec{}, false
		}
		corner = gamemath.Vec{
			X: edge.MinX() + (c.Size.X/2 - c.Margins.BottomLeft) - c.Offset.X,
			Y: edge.MaxY() + lift,
		}
	default:
		return gamemath.Vec{}, gamemath.Vec{}, false
	}

	toCorner := corner.Sub(pos)
	left := travel - toCorner.Len()
	if left < 0 {
		return gamemath.Vec{}, gamemath.Vec{}, false
	}
	return corner, gamemath.Vec{X: toCorner.X + left*sign, Y: toCorner.Y}, true
}

func tileRect(c tilemap.Coordinates, tileSize gamemath.Vec) gamemath.Rect {
	return gamemath.Rect{
		X: float64(c.Column) * tileSize.X,
		Y: float64(c.Row) * tileSize.Y,
		W: tileSize.X,
		H: tileSize.Y,
	}
}

// AccelerationInEffect returns the accelerations applied by the last Step,
// deceleration included and gravity excluded.
func (b *Body) AccelerationInEffect() gamemath.Vec {
	return gamemath.Vec{X: b.horizontalAccelerationInEffect, Y: b.verticalAccelerationInEffect}
}

// ResetStates clears the per-step inputs. Call it once at the end of every
// step.
func (b *Body) ResetStates() {
	b.PreviousVelocity = b.Velocity
	b.GravityInEffect = b.Config.Gravity
	b.CurrentMaximumVerticalVelocity = b.Config.MaximumVerticalVelocity
	b.HorizontalAcceleration = 0
	b.HorizontalDeceleration = 0
	b.VerticalAcceleration = 0
	b.VerticalDeceleration = 0
	b.horizontalAccelerationInEffect = 0
	b.verticalAccelerationInEffect = 0
}
