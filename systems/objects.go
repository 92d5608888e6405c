package systems

import (
	"sort"

	"github.com/automoto/platcore/components"
	cfg "github.com/automoto/platcore/config"
	"github.com/automoto/platcore/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMovers advances each mover's tween and proposes its new position.
// A finished tween is replaced by one running the other way.
func UpdateMovers(ecs *ecs.ECS) {
	dt := float32(cfg.C.TimeStep)

	components.Mover.Each(ecs.World, func(e *donburi.Entry) {
		mover := components.Mover.Get(e)
		t := components.Transform.Get(e)

		offset, done := mover.Tween.Update(dt)
		t.Proposed = gamemath.Vec{X: mover.Origin.X + float64(offset), Y: mover.Origin.Y}

		if done {
			mover.Returning = !mover.Returning
			from, to := float32(0), float32(mover.Distance)
			if mover.Returning {
				from, to = to, from
			}
			mover.Tween = gween.New(from, to, float32(mover.Seconds), ease.Linear)
		}
	})
}

// syncObject moves an entity's broadphase proxy onto its proposed frame.
func syncObject(e *donburi.Entry) {
	if !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e)
	if obj.Object == nil {
		return
	}
	frame := components.Collider.Get(e).Frame(components.Transform.Get(e).Proposed)
	obj.X, obj.Y, obj.W, obj.H = frame.X, frame.Y, frame.W, frame.H
	obj.Update()
}

// broadphaseEntries maps the objects sharing cells with e back to their
// entities, without duplicates and by entity id.
func broadphaseEntries(e *donburi.Entry, objects []*resolv.Object) []*donburi.Entry {
	seen := make(map[donburi.Entity]bool, len(objects))
	var out []*donburi.Entry
	for _, o := range objects {
		other, ok := o.Data.(*donburi.Entry)
		if !ok || other.Entity() == e.Entity() || seen[other.Entity()] || !other.Valid() {
			continue
		}
		if !other.HasComponent(components.Collider) {
			continue
		}
		seen[other.Entity()] = true
		out = append(out, other)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Entity().Id() < out[j].Entity().Id()
	})
	return out
}
