package sway

import (
	"fmt"
	"math"
	"strings"
)

// maxRemovalIters bounds the removal retry of Stop when
// EngineConfig.EnsureRemovalOnStop is set.
const maxRemovalIters = 128

// tweenImpl is implemented by the typed layer on top of a Tween.
type tweenImpl interface {
	// evaluate sets the value for normalized time t. It may panic with a
	// setter fault.
	evaluate(t float64)
	valid() bool
	// beforePlay applies the default play flags. It reports false when
	// playing must be aborted.
	beforePlay() bool
	describe(sb *strings.Builder)
}

// Tween is the state machine shared by every tween: timing parameters, loop
// and delay bookkeeping, lifecycle hooks and the play/pause/stop
// transitions. It is created through a typed Context and identified by
// pointer.
//
// A Tween is owned by one Loop and must only be used from the goroutine
// that ticks it.
type Tween struct {
	engine *Engine
	owner  Loop
	impl   tweenImpl

	// Settings.
	duration          float64
	delay             float64
	loopCount         int
	loopType          LoopType
	waitDelayOnLoop   bool
	ease              EaseType
	curve             Curve
	useCurve          bool
	speed             float64
	clampEasing       bool
	tickType          TickType
	ignoreTimeScale   bool
	tag               string
	linkObject        any
	linkInvalidAction TickSuspendAction

	// Hooks, fired in the order play, start, tick, loop repeat, end, stop.
	OnPlay       Hook
	OnStart      Hook
	OnTick       Hook
	OnPause      Hook
	OnLoopRepeat Hook
	OnEnd        Hook
	OnStop       Hook
	// TickCondition is consulted once per tick before the tween advances.
	TickCondition ConditionHook

	// Run state.
	delayElapsed     float64
	currentElapsed   float64
	loopsElapsed     int
	playing          bool
	lastRunFailed    bool
	swapTargetValues bool
	hasPlayedOnce    bool
	// runRefs counts occurrences in the owner's running collection.
	runRefs int
	// runID changes on every successful play.
	runID uint64

	startingDuration  float64
	startingDelay     float64
	startingLoopCount int
}

func (t *Tween) init(e *Engine, impl tweenImpl) {
	if e == nil {
		panic("sway: tween created with nil Engine")
	}
	t.engine = e
	t.impl = impl
	t.loopType = LoopYoyo
	t.waitDelayOnLoop = true
	t.ease = EaseQuadInOut
	t.speed = 1
}

// Owner returns the loop that runs the tween. An unset owner resolves to the
// engine's current loop on first use; Owner panics when there is none.
func (t *Tween) Owner() Loop {
	if t.owner == nil {
		t.owner = t.engine.CurrentLoop()
	}
	if t.owner == nil {
		panic("sway: tween has no owner loop; attach a loop to the engine or call SetOwner")
	}
	return t.owner
}

// SetOwner moves the tween to loop. The tween is stopped and its deferred
// operations are cancelled on the previous owner first.
func (t *Tween) SetOwner(loop Loop) {
	if loop == nil {
		panic("sway: SetOwner with nil loop")
	}
	if t.owner == loop {
		return
	}
	if t.owner != nil {
		if t.IsValid() {
			t.Stop()
		} else {
			t.halt(t.owner.Running())
		}
		t.CancelDelayed()
	}
	t.owner = loop
}

// Engine returns the engine the tween was created with.
func (t *Tween) Engine() *Engine { return t.engine }

func (t *Tween) logger() Logger {
	return t.Owner().Logger()
}

// Duration is the length of one loop iteration in seconds.
func (t *Tween) Duration() float64 { return t.duration }

// Delay is the wait before the first iteration, in seconds.
func (t *Tween) Delay() float64 { return t.delay }

// LoopCount is the number of repeats after the first iteration. Negative
// values loop forever.
func (t *Tween) LoopCount() int { return t.loopCount }

func (t *Tween) LoopType() LoopType     { return t.loopType }
func (t *Tween) WaitDelayOnLoop() bool  { return t.waitDelayOnLoop }
func (t *Tween) EaseType() EaseType     { return t.ease }
func (t *Tween) EaseCurve() Curve       { return t.curve }
func (t *Tween) UseEaseCurve() bool     { return t.useCurve && t.curve != nil }
func (t *Tween) Speed() float64         { return t.speed }
func (t *Tween) ClampEasing() bool      { return t.clampEasing }
func (t *Tween) TickType() TickType     { return t.tickType }
func (t *Tween) IgnoreTimeScale() bool  { return t.ignoreTimeScale }
func (t *Tween) Tag() string            { return t.tag }
func (t *Tween) LinkObject() any        { return t.linkObject }
func (t *Tween) SwapTargetValues() bool { return t.swapTargetValues }
func (t *Tween) HasPlayedOnce() bool    { return t.hasPlayedOnce }

// LinkInvalidAction is applied while the link object is invalid.
func (t *Tween) LinkInvalidAction() TickSuspendAction { return t.linkInvalidAction }

// ActualTickType is the tick domain the tween runs in: fixed only when the
// owner supports fixed ticks.
func (t *Tween) ActualTickType() TickType {
	if t.owner != nil && !t.owner.SupportsFixedTick() {
		return TickVariable
	}
	return t.tickType
}

// IsInstant reports whether the tween completes on its first tick.
func (t *Tween) IsInstant() bool { return t.duration <= 0 && !t.IsDelayed() }

// IsDelayed reports whether the tween has a positive delay.
func (t *Tween) IsDelayed() bool { return t.delay > 0 }

// IsLoopable reports whether the tween repeats.
func (t *Tween) IsLoopable() bool { return t.loopCount != 0 }

// EvaluateEasing maps normalized time through the curve or easing table,
// clamped to [0, 1] when ClampEasing is set.
func (t *Tween) EvaluateEasing(x float64) float64 {
	var v float64
	if t.UseEaseCurve() {
		v = t.curve.Evaluate(x)
	} else {
		v = EasedValue(x, t.ease)
	}
	if t.clampEasing {
		v = min(max(v, 0), 1)
	}
	return v
}

// DelayElapsed is the normalized progress of the delay.
func (t *Tween) DelayElapsed() float64 { return t.delayElapsed }

// CurrentElapsed is the normalized progress of the current iteration.
func (t *Tween) CurrentElapsed() float64 { return t.currentElapsed }

// LoopsElapsed is the number of completed iterations of this run.
func (t *Tween) LoopsElapsed() int { return t.loopsElapsed }

// LoopsElapsedEven reports whether LoopsElapsed is even.
func (t *Tween) LoopsElapsedEven() bool { return t.loopsElapsed&1 == 0 }

// TotalElapsed is the normalized progress across all iterations of a
// finite run. For non-looping or infinite tweens it equals CurrentElapsed.
func (t *Tween) TotalElapsed() float64 {
	v := t.currentElapsed
	if t.startingLoopCount > 0 {
		slice := 1 / float64(t.startingLoopCount+1)
		v = v*slice + slice*float64(t.loopsElapsed)
	}
	return v
}

// IsPlaying reports whether the tween is in its owner's running collection.
func (t *Tween) IsPlaying() bool { return t.playing }

// IsPaused reports whether the tween is stopped mid-run.
func (t *Tween) IsPaused() bool {
	return !t.playing && (t.delayElapsed > 0 || t.currentElapsed > 0 || t.loopsElapsed > 0)
}

// IsComplete reports whether the tween is idle with no progress.
func (t *Tween) IsComplete() bool {
	return !t.playing && t.delayElapsed <= 0 && t.currentElapsed <= 0 && t.loopsElapsed <= 0
}

// LastRunFailed reports whether the last run was aborted by an invalid
// state, a getter or setter fault, or a missing link object.
func (t *Tween) LastRunFailed() bool { return t.lastRunFailed }

// IsValid reports whether the tween has what it needs to run.
func (t *Tween) IsValid() bool { return t.impl != nil && t.impl.valid() }

// StartingDuration is the duration captured when the current run started.
func (t *Tween) StartingDuration() float64 { return t.startingDuration }

// StartingDelay is the delay captured when the current run started.
func (t *Tween) StartingDelay() float64 { return t.startingDelay }

// StartingLoopCount is the loop count captured when the current run started.
func (t *Tween) StartingLoopCount() int { return t.startingLoopCount }

// ClearAllActions removes every hook and tick condition.
func (t *Tween) ClearAllActions() {
	t.OnPlay.Clear()
	t.OnStart.Clear()
	t.OnTick.Clear()
	t.OnPause.Clear()
	t.OnLoopRepeat.Clear()
	t.OnEnd.Clear()
	t.OnStop.Clear()
	t.TickCondition.Clear()
}

// Play starts the tween, or resumes it when paused. A playing tween is
// stopped and restarted. Duration, delay and loop count are captured for the
// run unless resuming. An invalid tween, or a panicking play hook, sets
// LastRunFailed and leaves the tween idle.
func (t *Tween) Play() {
	if !t.IsValid() {
		t.failInvalid("Play")
		return
	}
	t.lastRunFailed = false
	if !t.impl.beforePlay() {
		return
	}
	t.play()
}

func (t *Tween) play() {
	owner := t.Owner()
	if !t.IsValid() {
		t.failInvalid("Play")
		return
	}
	t.lastRunFailed = false

	if t.playing {
		t.Stop()
	}
	if !t.IsPaused() {
		t.startingDuration = t.duration
		t.startingDelay = t.delay
		t.startingLoopCount = t.loopCount
	}

	if err := safeCall("play", t.OnPlay.fire); err != nil {
		owner.Logger().Exception("Play: play hook of "+t.String(), err)
		t.lastRunFailed = true
		return
	}

	t.playing = true
	t.runID++
	running := owner.Running()
	if !running.Contains(t) {
		running.Add(t)
	}
	t.hasPlayedOnce = true
}

func (t *Tween) failInvalid(op string) {
	t.lastRunFailed = true
	t.logger().Error(fmt.Sprintf("%s: %v: %s", op, ErrInvalidTween, t))
}

// PlayFrom plays the tween and moves it to the given iteration progress and
// completed loop count. Both are clamped to the run's range.
func (t *Tween) PlayFrom(currentElapsed float64, loopsElapsed int) {
	t.Play()
	if !t.playing {
		return
	}
	t.setElapsed(currentElapsed, loopsElapsed)
}

func (t *Tween) setElapsed(currentElapsed float64, loopsElapsed int) {
	t.currentElapsed = min(max(currentElapsed, 0), 1)
	maxLoops := t.startingLoopCount
	if maxLoops < 0 {
		maxLoops = math.MaxInt - 1
	}
	t.loopsElapsed = min(max(loopsElapsed, 0), maxLoops)
}

// SplitTotalElapsed decomposes a total progress into completed loops and the
// remainder, using slices of width 1/(loopCount+1). Infinite loop counts use
// a single slice.
func SplitTotalElapsed(totalElapsed float64, loopCount int) (currentElapsed float64, loopsElapsed int) {
	slice := 1 / float64(max(0, loopCount)+1)
	loopsElapsed = int(math.Floor(totalElapsed / slice))
	currentElapsed = totalElapsed - float64(loopsElapsed)*slice
	return currentElapsed, loopsElapsed
}

// PlayFromTotal plays the tween from a total progress across all iterations.
func (t *Tween) PlayFromTotal(totalElapsed float64) {
	loopCount := t.loopCount
	if t.IsPaused() {
		loopCount = t.startingLoopCount
	}
	current, loops := SplitTotalElapsed(totalElapsed, loopCount)
	t.PlayFrom(current, loops)
}

// Pause removes a playing tween from its loop and keeps its progress. It is a
// no-op for invalid or idle tweens.
func (t *Tween) Pause() {
	if !t.IsValid() {
		t.logger().Error(fmt.Sprintf("Pause: %v: %s", ErrInvalidTween, t))
		return
	}
	if !t.playing {
		return
	}
	owner := t.Owner()
	t.playing = false
	owner.Running().Remove(t)
	if err := safeCall("pause", t.OnPause.fire); err != nil {
		owner.Logger().Exception("Pause: pause hook of "+t.String(), err)
	}
}

// Stop removes the tween from its loop, fires the stop hook and resets all
// progress. It is a no-op for invalid tweens.
func (t *Tween) Stop() {
	if !t.IsValid() {
		t.logger().Error(fmt.Sprintf("Stop: %v: %s", ErrInvalidTween, t))
		return
	}
	owner := t.Owner()
	t.playing = false
	removed := owner.Running().Remove(t)
	if t.engine.cfg.EnsureRemovalOnStop {
		for i := 0; i < maxRemovalIters && removed; i++ {
			removed = owner.Running().Remove(t)
		}
		if removed {
			owner.Logger().Warn("Stop: tween is still present in the running collection: " + t.String())
		}
	}
	if err := safeCall("stop", t.OnStop.fire); err != nil {
		owner.Logger().Exception("Stop: stop hook of "+t.String(), err)
	}
	t.Reset()
}

// halt takes an invalid tween out of its loop without firing hooks.
func (t *Tween) halt(running *Collection) {
	t.playing = false
	for running.Remove(t) {
	}
	t.Reset()
}

// Reset clears all progress, including completed loops and the yoyo swap.
func (t *Tween) Reset() {
	t.currentElapsed = 0
	t.delayElapsed = 0
	t.swapTargetValues = false
	t.loopsElapsed = 0
}

// ResetPreserveLoop clears the progress of the current iteration but keeps
// the loop count and the yoyo swap. The delay is skipped on repeats unless
// WaitDelayOnLoop is set.
func (t *Tween) ResetPreserveLoop() {
	t.currentElapsed = 0
	t.delayElapsed = 0
	if !t.waitDelayOnLoop {
		t.delayElapsed = 1
	}
}

// PlayDelayed plays the tween on the owner's next tick.
func (t *Tween) PlayDelayed() {
	t.Owner().Deferrer().ScheduleAfter(t, t.Play, 1)
}

// PlayFromDelayed calls PlayFrom on the owner's next tick.
func (t *Tween) PlayFromDelayed(currentElapsed float64, loopsElapsed int) {
	t.Owner().Deferrer().ScheduleAfter(t, func() { t.PlayFrom(currentElapsed, loopsElapsed) }, 1)
}

// PlayFromTotalDelayed calls PlayFromTotal on the owner's next tick.
func (t *Tween) PlayFromTotalDelayed(totalElapsed float64) {
	t.Owner().Deferrer().ScheduleAfter(t, func() { t.PlayFromTotal(totalElapsed) }, 1)
}

// PauseDelayed pauses the tween on the owner's next tick.
func (t *Tween) PauseDelayed() {
	t.Owner().Deferrer().ScheduleAfter(t, t.Pause, 1)
}

// StopDelayed stops the tween on the owner's next tick.
func (t *Tween) StopDelayed() {
	t.Owner().Deferrer().ScheduleAfter(t, t.Stop, 1)
}

// CancelDelayed cancels every pending deferred operation of the tween.
func (t *Tween) CancelDelayed() {
	if t.owner == nil {
		return
	}
	t.owner.Deferrer().Cancel(t, false)
}

// IsScheduled reports whether a deferred operation of the tween is pending.
func (t *Tween) IsScheduled() bool {
	return t.owner != nil && t.owner.Deferrer().IsScheduled(t)
}

// CopyFrom copies the settings and hooks of o. Run state, owner and typed
// values are not copied.
func (t *Tween) CopyFrom(o *Tween) {
	t.duration = o.duration
	t.delay = o.delay
	t.loopCount = o.loopCount
	t.loopType = o.loopType
	t.waitDelayOnLoop = o.waitDelayOnLoop
	t.ease = o.ease
	t.curve = o.curve
	t.useCurve = o.useCurve
	t.speed = o.speed
	t.clampEasing = o.clampEasing
	t.tickType = o.tickType
	t.ignoreTimeScale = o.ignoreTimeScale
	t.tag = o.tag
	t.linkObject = o.linkObject
	t.linkInvalidAction = o.linkInvalidAction

	t.OnPlay.copyFrom(&o.OnPlay)
	t.OnStart.copyFrom(&o.OnStart)
	t.OnTick.copyFrom(&o.OnTick)
	t.OnPause.copyFrom(&o.OnPause)
	t.OnLoopRepeat.copyFrom(&o.OnLoopRepeat)
	t.OnEnd.copyFrom(&o.OnEnd)
	t.OnStop.copyFrom(&o.OnStop)
	t.TickCondition.copyFrom(&o.TickCondition)
}

// SettingsEqual reports whether t and o have the same settings and hooks.
func (t *Tween) SettingsEqual(o *Tween) bool {
	if o == nil {
		return false
	}
	return t.duration == o.duration &&
		t.delay == o.delay &&
		t.loopCount == o.loopCount &&
		t.loopType == o.loopType &&
		t.waitDelayOnLoop == o.waitDelayOnLoop &&
		t.ease == o.ease &&
		sameRef(t.curve, o.curve) &&
		t.useCurve == o.useCurve &&
		t.speed == o.speed &&
		t.clampEasing == o.clampEasing &&
		t.tickType == o.tickType &&
		t.ignoreTimeScale == o.ignoreTimeScale &&
		t.tag == o.tag &&
		sameRef(t.linkObject, o.linkObject) &&
		t.linkInvalidAction == o.linkInvalidAction &&
		sameActions(t.OnPlay.actions, o.OnPlay.actions) &&
		sameActions(t.OnStart.actions, o.OnStart.actions) &&
		sameActions(t.OnTick.actions, o.OnTick.actions) &&
		sameActions(t.OnPause.actions, o.OnPause.actions) &&
		sameActions(t.OnLoopRepeat.actions, o.OnLoopRepeat.actions) &&
		sameActions(t.OnEnd.actions, o.OnEnd.actions) &&
		sameActions(t.OnStop.actions, o.OnStop.actions) &&
		t.TickCondition.Len() == o.TickCondition.Len()
}

func sameActions(a, b []*Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns a one-line summary of the tween.
func (t *Tween) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tween(play=%t) duration=%g delay=%g loops=%d speed=%g ease=%s tag=%q",
		t.playing, t.duration, t.delay, t.loopCount, t.speed, t.ease, t.tag)
	if t.linkObject == nil {
		sb.WriteString(" link=<nil>")
	} else {
		fmt.Fprintf(&sb, " link=%T", t.linkObject)
	}
	if t.impl != nil {
		t.impl.describe(&sb)
	}
	return sb.String()
}
