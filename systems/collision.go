package systems

import (
	"sort"

	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/components"
	"github.com/automoto/platcore/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var colliderQuery = donburi.NewQuery(filter.Contains(components.Transform, components.Collider))

// collidersInOrder returns every collider entity by ascending priority, ties
// broken by entity id so runs are repeatable.
func collidersInOrder(w donburi.World) []*donburi.Entry {
	var entries []*donburi.Entry
	colliderQuery.Each(w, func(e *donburi.Entry) {
		entries = append(entries, e)
	})
	sort.SliceStable(entries, func(i, j int) bool {
		pi := components.Collider.Get(entries[i]).Priority
		pj := components.Collider.Get(entries[j]).Priority
		if pi != pj {
			return pi < pj
		}
		return entries[i].Entity().Id() < entries[j].Entity().Id()
	})
	return entries
}

func movementOf(e *donburi.Entry) collision.Movement {
	vy := 0.0
	if e.HasComponent(components.KinematicsBody) {
		vy = components.KinematicsBody.Get(e).Velocity.Y
	}
	return collision.NewMovement(components.Collider.Get(e), components.Transform.Get(e), vy)
}

// UpdateCollisions resets every collider's contact flags and resolves the
// proposed positions against the tile map. Movers are scripted and only
// have their flags reset. Without a tile map nothing is resolved.
func UpdateCollisions(ecs *ecs.ECS) {
	level := currentLevel(ecs.World)

	for _, e := range collidersInOrder(ecs.World) {
		components.Collider.Get(e).ResetStates()

		if e.HasComponent(tags.Mover) || level == nil || level.Map == nil {
			continue
		}

		res := level.Controller.Resolve(movementOf(e))
		t := components.Transform.Get(e)
		t.Proposed = res.Position
		t.Intermediary = nil

		for _, ct := range res.Contacts {
			ContactEvents.Publish(ecs.World, ContactEvent{Entry: e, Contact: ct})
		}
	}
}

// UpdateColliderContacts finds overlapping colliders through the resolv
// broadphase and publishes a contact for each side of every overlapping
// pair. Collider contacts never move anything.
func UpdateColliderContacts(ecs *ecs.ECS) {
	entries := collidersInOrder(ecs.World)
	for _, e := range entries {
		syncObject(e)
	}

	for _, e := range entries {
		if !e.HasComponent(components.Object) {
			continue
		}
		obj := components.Object.Get(e)
		if obj.Object == nil || obj.Space == nil {
			continue
		}
		check := obj.Check(0, 0, tags.ResolvCollider)
		if check == nil {
			continue
		}

		mv := movementOf(e)
		for _, other := range broadphaseEntries(e, check.Objects) {
			ct := collision.ColliderContact(mv, movementOf(other))
			if ct == nil {
				continue
			}
			ContactEvents.Publish(ecs.World, ContactEvent{Entry: e, Other: other, Contact: *ct})
		}
	}
}
