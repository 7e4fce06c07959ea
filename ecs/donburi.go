package ecs

import (
	"github.com/phanxgames/joystick"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MoveEventType is the Donburi event type for joystick direction events.
var MoveEventType = events.NewEventType[joystick.MoveEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on MoveEventType and delivered by ProcessEvents, so
// systems see them on the goroutine that processes the world.
func NewDonburiSink(world donburi.World) joystick.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitMove(event joystick.MoveEvent) {
	MoveEventType.Publish(s.world, event)
}
