package systems

import (
	"github.com/automoto/platcore/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// ContactEvent is published for every contact a collider made during a step.
// Other is nil for tile and slope contacts.
type ContactEvent struct {
	Entry   *donburi.Entry
	Other   *donburi.Entry
	Contact collision.Contact
}

// ContactEvents is consumed with Subscribe; queued events are delivered by
// ProcessEvents at the end of the step.
var ContactEvents = events.NewEventType[ContactEvent]()

func ProcessEvents(ecs *ecs.ECS) {
	ContactEvents.ProcessEvents(ecs.World)
}
