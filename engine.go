package sway

import (
	"sync"

	"github.com/petermattis/goid"
)

// EngineConfig configures an Engine. The zero value is usable.
type EngineConfig struct {
	// Logger receives engine-level diagnostics such as debug stats. Nil
	// logs to stderr at Verbosity.
	Logger Logger
	// Verbosity applies when Logger is nil.
	Verbosity Verbosity
	// EnsureRemovalOnStop makes Stop retry removal from the running
	// collection until no occurrence remains.
	EnsureRemovalOnStop bool
	// AlivePredicate decides whether a link object is alive. Nil uses
	// DefaultAlive.
	AlivePredicate AlivePredicate
	// Debug collects per-tick stats and logs them at info level.
	Debug bool
}

// attachment is the engine's per-loop state.
type attachment struct {
	loop    Loop
	scratch []*Tween
	stats   TickStats
	unsub   []func()
}

// Engine drives tweens on the loops attached to it and resolves the loop a
// new tween belongs to. Loops are ticked from their own goroutine; the loop
// scope stack is the only state shared across goroutines.
type Engine struct {
	cfg    EngineConfig
	logger Logger
	alive  AlivePredicate

	attached map[Loop]*attachment
	global   Loop

	mu     sync.Mutex
	scopes map[int64]Loop
}

// NewEngine creates an Engine.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		cfg:      cfg,
		logger:   cfg.Logger,
		alive:    cfg.AlivePredicate,
		attached: make(map[Loop]*attachment),
		scopes:   make(map[int64]Loop),
	}
	if e.logger == nil {
		e.logger = NewStdLogger(nil, cfg.Verbosity)
	}
	if e.alive == nil {
		e.alive = DefaultAlive
	}
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns a process-wide Engine created on first use with
// VerbosityWarn. Libraries should take an *Engine instead.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(EngineConfig{Verbosity: VerbosityWarn})
	})
	return defaultEngine
}

// Logger returns the engine-level logger.
func (e *Engine) Logger() Logger { return e.logger }

// Attach subscribes the engine to loop's events. The first attached loop
// becomes the global loop. Attaching twice is a no-op.
func (e *Engine) Attach(loop Loop) {
	if loop == nil {
		panic("sway: Attach with nil loop")
	}
	if _, ok := e.attached[loop]; ok {
		return
	}
	a := &attachment{loop: loop}
	ev := loop.Events()
	a.unsub = append(a.unsub,
		ev.OnTick(func(l Loop) { e.onTick(a) }),
		ev.OnFixedTick(func(l Loop) { e.onFixedTick(a) }),
		ev.OnExit(func(l Loop, cleanup bool) { e.onExit(a, cleanup) }),
	)
	e.attached[loop] = a
	if e.global == nil {
		e.global = loop
	}
}

// Detach unsubscribes the engine from loop. Tweens already playing on it
// stay in its running collection but no longer advance.
func (e *Engine) Detach(loop Loop) {
	a, ok := e.attached[loop]
	if !ok {
		return
	}
	for _, fn := range a.unsub {
		fn()
	}
	delete(e.attached, loop)
	if e.global == loop {
		e.global = nil
	}
}

// Attached reports whether loop is attached.
func (e *Engine) Attached(loop Loop) bool {
	_, ok := e.attached[loop]
	return ok
}

// GlobalLoop returns the loop used when no scope is active.
func (e *Engine) GlobalLoop() Loop { return e.global }

// SetGlobalLoop replaces the global loop and attaches it.
func (e *Engine) SetGlobalLoop(loop Loop) {
	if loop != nil {
		e.Attach(loop)
	}
	e.global = loop
}

// CurrentLoop returns the loop of the innermost open scope on the calling
// goroutine, or the global loop.
func (e *Engine) CurrentLoop() Loop {
	gid := goid.Get()
	e.mu.Lock()
	l, ok := e.scopes[gid]
	e.mu.Unlock()
	if ok {
		return l
	}
	return e.global
}

// LoopScope makes a loop current on one goroutine until closed.
type LoopScope struct {
	e      *Engine
	gid    int64
	prev   Loop
	hadOld bool
	closed bool
}

// UseLoop makes loop the current loop of the calling goroutine until the
// returned scope is closed. Scopes nest:
//
//	s := engine.UseLoop(menuLoop)
//	defer s.Close()
func (e *Engine) UseLoop(loop Loop) *LoopScope {
	if loop == nil {
		panic("sway: UseLoop with nil loop")
	}
	gid := goid.Get()
	e.mu.Lock()
	prev, had := e.scopes[gid]
	e.scopes[gid] = loop
	e.mu.Unlock()
	return &LoopScope{e: e, gid: gid, prev: prev, hadOld: had}
}

// Close restores the loop that was current when the scope was opened.
// Closing twice panics.
func (s *LoopScope) Close() {
	if s.closed {
		panic("sway: LoopScope closed twice")
	}
	s.closed = true
	s.e.mu.Lock()
	if s.hadOld {
		s.e.scopes[s.gid] = s.prev
	} else {
		delete(s.e.scopes, s.gid)
	}
	s.e.mu.Unlock()
}

// FindByTag returns the playing tweens of loop with the given tag, latest
// started first.
func (e *Engine) FindByTag(loop Loop, tag string) *Collection {
	items := loop.Running().items
	out := NewCollection(tag, 0)
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].tag == tag {
			out.Add(items[i])
		}
	}
	return out
}

// StopAll stops every tween playing on loop. Tweens restarted by a stop hook
// keep playing.
func (e *Engine) StopAll(loop Loop) {
	running := loop.Running()
	stopping := running.snapshot(nil)
	for _, t := range stopping {
		if !running.Contains(t) {
			continue
		}
		if t.IsValid() {
			t.Stop()
		} else {
			t.halt(running)
		}
	}
	for _, t := range stopping {
		if !t.playing && running.Contains(t) {
			t.halt(running)
		}
	}
}

// Clear stops every tween on loop, then kills it.
func (e *Engine) Clear(loop Loop) {
	e.StopAll(loop)
	loop.Kill()
}
