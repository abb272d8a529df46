// Package ecs provides ECS adapters for globe.
package ecs

import (
	"github.com/phanxgames/globe"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NavigationEventType is the Donburi event type for globe navigation events.
// Subscribe to this in your ECS systems to learn when camera moves start,
// finish, are replaced, or name an unknown location.
var NavigationEventType = events.NewEventType[globe.NavigationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Navigation
// events are published to NavigationEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) globe.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitNavigation(event globe.NavigationEvent) {
	NavigationEventType.Publish(s.world, event)
}
