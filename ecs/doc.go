// Package ecs provides ECS adapters for globe's navigation events.
//
// The primary adapter is [NewDonburiSink], which bridges globe navigation
// events (started, completed, superseded, unresolved) into a [Donburi] world
// as typed events. Subscribe to [NavigationEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	g.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
