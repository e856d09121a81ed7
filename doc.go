// Package sway is a per-frame tween scheduler for [Ebitengine] games and any
// other host with a frame loop.
//
// A tween interpolates a value from a start to an end over a duration,
// handing every intermediate value to a setter. Tweens live on a [Loop],
// which supplies delta times, a time scale and the tick events an [Engine]
// subscribes to. Each tick the engine drains the delta into every playing
// tween, crossing delays and loop boundaries as often as the delta allows.
//
// # Quick start
//
// With Ebitengine, [Run] creates a window and an update loop for you:
//
//	loop := sway.NewEbitenLoop(sway.EbitenLoopConfig{})
//	engine := sway.NewEngine(sway.EngineConfig{})
//	engine.Attach(loop)
//
//	x := 0.0
//	sway.NewFloat64(engine).
//		Setup(0, 320, 1.5, func(v float64) { x = v }).
//		SetEase(sway.EaseBounceOut).
//		Play()
//
//	sway.Run(loop, sway.RunConfig{Title: "Tweens", Width: 640, Height: 480})
//
// Hosts with their own loop use a [ManualLoop] and call [ManualLoop.Tick]
// once per frame with the frame's delta in seconds.
//
// # Tweens
//
// [Context] is the typed tween; it embeds the [Tween] state machine, whose
// Play, Pause and Stop methods and lifecycle hooks (OnPlay, OnStart, OnTick,
// OnPause, OnLoopRepeat, OnEnd, OnStop) are used directly. Constructors exist
// for float64, float32, int, [Vec2], [Vec3], [Color], [Quat] and [Mat4];
// [NewContext] takes any [LerpFunc]. [TweenFloat64], [TweenVec2] and
// friends animate plain Go values through a pointer.
//
// Loops repeat LoopCount extra times (negative loops forever), either
// restarting or, with [LoopYoyo], swapping start and end. Speed scales a
// single tween; the loop's time scale scales every tween that does not
// ignore it. A link object ties a tween to the lifetime of another object;
// see [LinkObject] and [EngineConfig.AlivePredicate].
//
// # Deferred operations
//
// PlayDelayed, PauseDelayed and StopDelayed run on the owner's next tick
// through its [Deferrer], which callers can also use directly.
//
// # Loop scopes
//
// Tweens created without an explicit owner belong to [Engine.CurrentLoop]:
// the innermost [Engine.UseLoop] scope of the calling goroutine, or the
// global loop.
//
// Callbacks run synchronously on the goroutine ticking the loop. A panic in
// a callback is recovered and logged; a panicking setter stops the tween and
// sets [Tween.LastRunFailed].
//
// [Ebitengine]: https://ebitengine.org
package sway
