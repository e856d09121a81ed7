// Package ecs connects sway tweens to a [Donburi] world.
//
// [EntityLink] ties a tween's lifetime to an entity: once the entity is
// removed from its world, the tween pauses or stops on its next tick.
// [Publish] forwards a tween's lifecycle hooks to [TweenEventType] so ECS
// systems can react to them.
//
// Usage:
//
//	fade := sway.NewFloat64(engine).Setup(1, 0, 0.5, setAlpha)
//	ecs.LinkEntity(fade, world, entity, sway.SuspendStop)
//	ecs.Publish(world, &fade.Tween)
//	fade.Play()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
