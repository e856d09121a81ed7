package sway

import "slices"

// Loop is the host-side tick provider a tween is owned by. It holds the
// running collection and the deferrer, supplies delta times and the time
// scale, and fires the tick, fixed tick and exit events the Engine
// subscribes to. All of its methods are called from the thread that ticks
// it.
type Loop interface {
	// Running is the mutable collection of playing tweens.
	Running() *Collection
	// Deferrer runs one-tick-deferred operations.
	Deferrer() *Deferrer
	Logger() Logger

	ElapsedTickCount() int
	// UnscaledDeltaTime is the delta of the current variable tick, in seconds.
	UnscaledDeltaTime() float64
	SupportsFixedTick() bool
	// FixedUnscaledDeltaTime is the delta of the current fixed tick.
	FixedUnscaledDeltaTime() float64
	// TimeScale multiplies every delta of tweens that do not ignore it.
	TimeScale() float64

	Events() *LoopEvents
	// Kill fires the exit event with cleanup false, then releases the loop.
	Kill()
}

type tickHandler struct {
	id uint64
	fn func(Loop)
}

type exitHandler struct {
	id uint64
	fn func(l Loop, cleanup bool)
}

// LoopEvents holds the subscribers of a Loop's tick, fixed tick and exit
// events. Loop implementations fire them; the Engine subscribes.
// Unsubscribing while an event fires does not disturb the firing.
type LoopEvents struct {
	tick      []tickHandler
	fixedTick []tickHandler
	exit      []exitHandler
	nextID    uint64
}

// OnTick subscribes fn to the variable tick. The returned func unsubscribes.
func (e *LoopEvents) OnTick(fn func(Loop)) func() {
	e.nextID++
	id := e.nextID
	e.tick = append(e.tick, tickHandler{id: id, fn: fn})
	return func() { e.tick = removeTickHandler(e.tick, id) }
}

// OnFixedTick subscribes fn to the fixed tick.
func (e *LoopEvents) OnFixedTick(fn func(Loop)) func() {
	e.nextID++
	id := e.nextID
	e.fixedTick = append(e.fixedTick, tickHandler{id: id, fn: fn})
	return func() { e.fixedTick = removeTickHandler(e.fixedTick, id) }
}

// OnExit subscribes fn to the exit event. cleanup is true when the host
// application is quitting rather than the loop being killed.
func (e *LoopEvents) OnExit(fn func(l Loop, cleanup bool)) func() {
	e.nextID++
	id := e.nextID
	e.exit = append(e.exit, exitHandler{id: id, fn: fn})
	return func() {
		for i, h := range e.exit {
			if h.id == id {
				e.exit = slices.Concat(e.exit[:i], e.exit[i+1:])
				return
			}
		}
	}
}

// FireTick calls every tick subscriber.
func (e *LoopEvents) FireTick(l Loop) {
	for _, h := range e.tick {
		h.fn(l)
	}
}

// FireFixedTick calls every fixed tick subscriber.
func (e *LoopEvents) FireFixedTick(l Loop) {
	for _, h := range e.fixedTick {
		h.fn(l)
	}
}

// FireExit calls every exit subscriber.
func (e *LoopEvents) FireExit(l Loop, cleanup bool) {
	for _, h := range e.exit {
		h.fn(l, cleanup)
	}
}

// Reset drops every subscriber.
func (e *LoopEvents) Reset() {
	e.tick = nil
	e.fixedTick = nil
	e.exit = nil
}

func removeTickHandler(hs []tickHandler, id uint64) []tickHandler {
	for i, h := range hs {
		if h.id == id {
			return slices.Concat(hs[:i], hs[i+1:])
		}
	}
	return hs
}

const defaultRunningCap = 1024

// loopState is the bookkeeping shared by the Loop implementations of this
// package.
type loopState struct {
	running  *Collection
	deferrer *Deferrer
	logger   Logger
	events   LoopEvents

	tickCount  int
	delta      float64
	fixedDelta float64
	timeScale  float64
	fixed      bool
	killed     bool
}

func newLoopState(logger Logger, fixed bool, capacity int) loopState {
	if logger == nil {
		logger = NewStdLogger(nil, VerbosityWarn)
	}
	if capacity <= 0 {
		capacity = defaultRunningCap
	}
	return loopState{
		running:   newRunningCollection(capacity),
		deferrer:  NewDeferrer(),
		logger:    logger,
		timeScale: 1,
		fixed:     fixed,
	}
}

func (s *loopState) Running() *Collection            { return s.running }
func (s *loopState) Deferrer() *Deferrer             { return s.deferrer }
func (s *loopState) Logger() Logger                  { return s.logger }
func (s *loopState) ElapsedTickCount() int           { return s.tickCount }
func (s *loopState) UnscaledDeltaTime() float64      { return s.delta }
func (s *loopState) SupportsFixedTick() bool         { return s.fixed }
func (s *loopState) FixedUnscaledDeltaTime() float64 { return s.fixedDelta }
func (s *loopState) TimeScale() float64              { return s.timeScale }
func (s *loopState) Events() *LoopEvents             { return &s.events }

// SetTimeScale changes the time scale. Negative values are treated as 0.
func (s *loopState) SetTimeScale(scale float64) {
	s.timeScale = max(0, scale)
}

// Killed reports whether the loop has been killed.
func (s *loopState) Killed() bool {
	return s.killed
}

// release fires the exit event and drops every tween, deferred entry and
// subscriber. self is the outer Loop passed to subscribers.
func (s *loopState) release(self Loop, cleanup bool) {
	if s.killed {
		return
	}
	s.events.FireExit(self, cleanup)
	s.killed = true
	for _, t := range s.running.items {
		t.playing = false
	}
	s.running.Clear()
	s.deferrer.CancelAll(false)
	s.events.Reset()
}

// ManualLoopConfig configures a ManualLoop. The zero value is usable.
type ManualLoopConfig struct {
	// Logger receives scheduler diagnostics. Nil logs warnings and above to
	// stderr.
	Logger Logger
	// FixedTick enables the fixed tick domain.
	FixedTick bool
	// Capacity pre-sizes the running collection.
	Capacity int
}

// ManualLoop is a Loop driven explicitly by the host: every call to Tick or
// FixedTick advances simulation time. It suits servers, tests and any host
// with its own frame loop.
type ManualLoop struct {
	loopState
}

var _ Loop = (*ManualLoop)(nil)

// NewManualLoop creates a ManualLoop.
func NewManualLoop(cfg ManualLoopConfig) *ManualLoop {
	return &ManualLoop{loopState: newLoopState(cfg.Logger, cfg.FixedTick, cfg.Capacity)}
}

// Tick fires a variable tick with the given unscaled delta in seconds. It is
// a no-op after Kill.
func (l *ManualLoop) Tick(dt float64) {
	if l.killed {
		return
	}
	l.tickCount++
	l.delta = dt
	l.events.FireTick(l)
}

// FixedTick fires a fixed tick with the given unscaled delta. It is a no-op
// when the loop has no fixed tick domain or has been killed.
func (l *ManualLoop) FixedTick(dt float64) {
	if l.killed || !l.fixed {
		return
	}
	l.fixedDelta = dt
	l.events.FireFixedTick(l)
}

// Kill fires the exit event without cleanup and releases the loop.
func (l *ManualLoop) Kill() {
	l.release(l, false)
}

// Quit fires the exit event with cleanup, as a host does when the
// application closes, and releases the loop.
func (l *ManualLoop) Quit() {
	l.release(l, true)
}
