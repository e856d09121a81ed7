package sway

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_FirstAttachedLoopIsGlobal(t *testing.T) {
	e := NewEngine(EngineConfig{Logger: Discard})
	assert.Nil(t, e.CurrentLoop())

	a := NewManualLoop(ManualLoopConfig{Logger: Discard})
	b := NewManualLoop(ManualLoopConfig{Logger: Discard})
	e.Attach(a)
	e.Attach(b)
	e.Attach(a)

	assert.Same(t, a, e.GlobalLoop())
	assert.Same(t, a, e.CurrentLoop())
	assert.True(t, e.Attached(b))

	e.SetGlobalLoop(b)
	assert.Same(t, b, e.CurrentLoop())

	assert.Panics(t, func() { e.Attach(nil) })
}

func TestEngine_DetachStopsAdvancing(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := newFloat(e, l, 1, &v)
	c.Play()
	l.Tick(0.25)

	e.Detach(l)
	assert.False(t, e.Attached(l))
	assert.Nil(t, e.GlobalLoop())

	l.Tick(0.25)
	assert.InDelta(t, 0.25, c.CurrentElapsed(), 1e-9)
	assert.True(t, c.IsPlaying(), "detaching leaves tweens in place")

	e.Attach(l)
	l.Tick(0.25)
	assert.InDelta(t, 0.5, c.CurrentElapsed(), 1e-9)
}

func TestEngine_UseLoopNests(t *testing.T) {
	e, global := newTestLoop(t)
	menu := NewManualLoop(ManualLoopConfig{Logger: Discard})
	hud := NewManualLoop(ManualLoopConfig{Logger: Discard})

	outer := e.UseLoop(menu)
	assert.Same(t, menu, e.CurrentLoop())

	inner := e.UseLoop(hud)
	assert.Same(t, hud, NewFloat64(e).Owner())

	inner.Close()
	assert.Same(t, menu, e.CurrentLoop())
	assert.Same(t, menu, NewFloat64(e).Owner())

	outer.Close()
	assert.Same(t, global, e.CurrentLoop())

	assert.Panics(t, func() { outer.Close() })
	assert.Panics(t, func() { e.UseLoop(nil) })
}

func TestEngine_UseLoopIsPerGoroutine(t *testing.T) {
	e, global := newTestLoop(t)
	menu := NewManualLoop(ManualLoopConfig{Logger: Discard})

	s := e.UseLoop(menu)
	defer s.Close()

	var (
		wg  sync.WaitGroup
		got Loop
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		got = e.CurrentLoop()
	}()
	wg.Wait()

	assert.Same(t, global, got)
	assert.Same(t, menu, e.CurrentLoop())
}

func TestEngine_ConcurrentScopes(t *testing.T) {
	e, _ := newTestLoop(t)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := NewManualLoop(ManualLoopConfig{Logger: Discard})
			for range 100 {
				s := e.UseLoop(l)
				if e.CurrentLoop() != l {
					t.Error("scope leaked across goroutines")
				}
				s.Close()
			}
		}()
	}
	wg.Wait()
}

func TestEngine_FindByTagLatestFirst(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	a := newFloat(e, l, 1, &v).SetTag("ui")
	b := newFloat(e, l, 1, &v).SetTag("fx")
	c := newFloat(e, l, 1, &v).SetTag("ui")
	a.Play()
	b.Play()
	c.Play()

	found := e.FindByTag(l, "ui")
	require.Equal(t, 2, found.Len())
	assert.Same(t, &c.Tween, found.At(0))
	assert.Same(t, &a.Tween, found.At(1))

	a.Pause()
	assert.Equal(t, 1, e.FindByTag(l, "ui").Len(), "only playing tweens are found")
	assert.Zero(t, e.FindByTag(l, "none").Len())
}

func TestEngine_StopAll(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	a := newFloat(e, l, 1, &v)
	b := newFloat(e, l, 1, &v)
	a.Play()
	b.Play()

	stops := 0
	a.OnStop.Add(func() { stops++ })
	b.OnStop.Add(func() { stops++ })
	// An invalid tween is taken out without hooks.
	b.SetSetter(nil)

	e.StopAll(l)
	assert.Equal(t, 1, stops)
	assert.Zero(t, l.Running().Len())
	assert.False(t, a.IsPlaying())
	assert.False(t, b.IsPlaying())
}

func TestEngine_StopAllKeepsTweensRestartedByHooks(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	a := newFloat(e, l, 1, &v)
	b := newFloat(e, l, 1, &v)
	restarted := false
	a.OnStop.Add(func() {
		if !restarted {
			restarted = true
			a.Play()
		}
	})
	bStops := 0
	b.OnStop.Add(func() { bStops++ })
	a.OnStop.Add(func() { b.Stop() })
	a.Play()
	b.Play()

	e.StopAll(l)
	assert.True(t, a.IsPlaying())
	assert.True(t, l.Running().Contains(&a.Tween))
	assert.Equal(t, 1, l.Running().Len())
	assert.False(t, b.IsPlaying())
	assert.Equal(t, 1, bStops, "a tween stopped by another's hook is not stopped twice")

	l.Tick(0.5)
	assert.InDelta(t, 0.5, a.CurrentElapsed(), 1e-9)
}

func TestEngine_ClearKillsLoop(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := newFloat(e, l, 1, &v)
	c.Play()
	c.PauseDelayed()

	e.Clear(l)
	assert.True(t, l.Killed())
	assert.False(t, c.IsPlaying())
	assert.Zero(t, l.Deferrer().Len())
	assert.False(t, e.Attached(l))

	l.Tick(1)
	assert.Zero(t, l.ElapsedTickCount(), "a killed loop ignores ticks")
}

func TestEngine_KillDoesNotFireStopHooks(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := newFloat(e, l, 1, &v)
	stopped := false
	c.OnStop.Add(func() { stopped = true })
	c.Play()

	l.Kill()
	assert.False(t, stopped)
	assert.False(t, c.IsPlaying())
	assert.False(t, e.Attached(l))
}

func TestEngine_QuitStopsTweens(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := newFloat(e, l, 1, &v)
	stopped := false
	c.OnStop.Add(func() { stopped = true })
	c.Play()

	l.Quit()
	assert.True(t, stopped)
	assert.False(t, e.Attached(l))
}

func TestEngine_MultipleLoopsAdvanceIndependently(t *testing.T) {
	e, a := newTestLoop(t)
	b := NewManualLoop(ManualLoopConfig{Logger: Discard})
	e.Attach(b)

	var va, vb float64
	newFloat(e, a, 1, &va).Play()
	newFloat(e, b, 1, &vb).Play()

	a.Tick(1)
	assert.Equal(t, 1.0, va)
	assert.Zero(t, vb)
	b.Tick(0.5)
	b.Tick(0.5)
	assert.Equal(t, 1.0, vb)
}

func TestDefaultEngine(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.NotNil(t, Default().Logger())
}
