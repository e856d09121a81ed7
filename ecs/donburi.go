package ecs

import (
	"github.com/phanxgames/sway"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EntityLink is a sway.LinkObject that stays valid while Entity exists in
// World.
type EntityLink struct {
	World  donburi.World
	Entity donburi.Entity
}

var _ sway.LinkObject = EntityLink{}

// CheckValidityOnce lets the scheduler cache the answer for one tick.
func (l EntityLink) CheckValidityOnce() bool { return true }

// IsValid reports whether the entity is still alive.
func (l EntityLink) IsValid() bool {
	return l.World != nil && l.World.Valid(l.Entity)
}

// LinkEntity links c to entity and applies action while it is gone.
func LinkEntity[T any](c *sway.Context[T], world donburi.World, entity donburi.Entity, action sway.TickSuspendAction) *sway.Context[T] {
	return c.SetLinkObject(EntityLink{World: world, Entity: entity}, action)
}

// TweenEventKind identifies the hook a TweenEvent came from.
type TweenEventKind uint8

const (
	TweenPlayed TweenEventKind = iota
	TweenStarted
	TweenLoopRepeated
	TweenPaused
	TweenEnded
	TweenStopped
)

func (k TweenEventKind) String() string {
	switch k {
	case TweenPlayed:
		return "played"
	case TweenStarted:
		return "started"
	case TweenLoopRepeated:
		return "loop repeated"
	case TweenPaused:
		return "paused"
	case TweenEnded:
		return "ended"
	case TweenStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TweenEvent is published to TweenEventType for every lifecycle hook of a
// published tween.
type TweenEvent struct {
	Kind  TweenEventKind
	Tag   string
	Tween *sway.Tween
	// Entity is set when the tween is linked through an EntityLink.
	Entity donburi.Entity
}

// TweenEventType is the Donburi event type for tween lifecycle events.
// Events are queued; consume them with Subscribe and ProcessEvents.
var TweenEventType = events.NewEventType[TweenEvent]()

// Publish forwards the lifecycle hooks of t to TweenEventType on world. The
// returned func stops forwarding.
func Publish(world donburi.World, t *sway.Tween) func() {
	emit := func(kind TweenEventKind) func() {
		return func() {
			ev := TweenEvent{Kind: kind, Tag: t.Tag(), Tween: t}
			if l, ok := t.LinkObject().(EntityLink); ok {
				ev.Entity = l.Entity
			}
			TweenEventType.Publish(world, ev)
		}
	}
	type binding struct {
		hook *sway.Hook
		a    *sway.Action
	}
	bindings := []binding{
		{&t.OnPlay, t.OnPlay.Add(emit(TweenPlayed))},
		{&t.OnStart, t.OnStart.Add(emit(TweenStarted))},
		{&t.OnLoopRepeat, t.OnLoopRepeat.Add(emit(TweenLoopRepeated))},
		{&t.OnPause, t.OnPause.Add(emit(TweenPaused))},
		{&t.OnEnd, t.OnEnd.Add(emit(TweenEnded))},
		{&t.OnStop, t.OnStop.Add(emit(TweenStopped))},
	}
	return func() {
		for _, b := range bindings {
			b.hook.Remove(b.a)
		}
	}
}
