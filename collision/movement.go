package collision

import "github.com/automoto/platcore/shared/gamemath"

// Transform is an owner's committed position and the position proposed for
// the step being simulated.
type Transform struct {
	Position gamemath.Vec
	Proposed gamemath.Vec
	// Intermediary waypoints are visited between Position and Proposed.
	Intermediary []gamemath.Vec
}

// NewTransform returns a transform resting at pos.
func NewTransform(pos gamemath.Vec) Transform {
	return Transform{Position: pos, Proposed: pos}
}

// Commit accepts the proposed position.
func (t *Transform) Commit() {
	t.Position = t.Proposed
	t.Intermediary = nil
}

// Discard drops the proposed position.
func (t *Transform) Discard() {
	t.Proposed = t.Position
	t.Intermediary = nil
}

// Movement is one collider's pending motion for a single step.
type Movement struct {
	Collider     *Collider
	Current      gamemath.Vec
	Proposed     gamemath.Vec
	Intermediary []gamemath.Vec
	// VerticalVelocity is used to reject slope contacts when moving up.
	VerticalVelocity float64
}

// NewMovement builds the movement of a collider owned by t.
func NewMovement(c *Collider, t *Transform, verticalVelocity float64) Movement {
	return Movement{
		Collider:         c,
		Current:          t.Position,
		Proposed:         t.Proposed,
		Intermediary:     t.Intermediary,
		VerticalVelocity: verticalVelocity,
	}
}

func (m Movement) CurrentFrame() gamemath.Rect { return m.Collider.Frame(m.Current) }

func (m Movement) ProposedFrame() gamemath.Rect { return m.Collider.Frame(m.Proposed) }

func (m Movement) CurrentHitPoints() HitPoints { return m.Collider.HitPoints(m.Current) }

func (m Movement) ProposedHitPoints() HitPoints { return m.Collider.HitPoints(m.Proposed) }
