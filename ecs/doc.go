// Package ecs provides ECS adapters for joystick direction events.
//
// The primary adapter is [NewDonburiSink], which bridges every
// [joystick.MoveEvent] (touch changes and hold repeats) into a [Donburi]
// world as a typed event. Subscribe to [MoveEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	stick.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
