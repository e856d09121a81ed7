package sway

import (
	"fmt"
	"math"
	"time"
)

func (e *Engine) onTick(a *attachment) {
	l := a.loop
	a.stats = TickStats{}
	var start time.Time
	if e.cfg.Debug {
		start = time.Now()
	}
	e.runDomain(a, TickVariable, l.UnscaledDeltaTime())
	if err := l.Deferrer().Tick(); err != nil {
		l.Logger().Exception("deferred operation", err)
	}
	if e.cfg.Debug {
		a.stats.Elapsed = time.Since(start)
		e.debugLog(l, a.stats)
	}
}

func (e *Engine) onFixedTick(a *attachment) {
	a.stats = TickStats{Fixed: true}
	if e.cfg.Debug {
		start := time.Now()
		defer func() {
			a.stats.Elapsed = time.Since(start)
			e.debugLog(a.loop, a.stats)
		}()
	}
	e.runDomain(a, TickFixed, a.loop.FixedUnscaledDeltaTime())
}

func (e *Engine) onExit(a *attachment, cleanup bool) {
	if cleanup {
		e.StopAll(a.loop)
	}
	e.Detach(a.loop)
}

// runDomain advances every tween of one tick domain. It iterates a snapshot
// so callbacks may play, pause or stop any tween; tweens that left the
// running collection earlier in the tick are skipped, and tweens that joined
// it start on the next tick.
func (e *Engine) runDomain(a *attachment, domain TickType, delta float64) {
	running := a.loop.Running()
	a.scratch = running.snapshot(a.scratch)
	for _, t := range a.scratch {
		if t.runRefs == 0 || t.owner != a.loop {
			continue
		}
		if t.ActualTickType() != domain {
			continue
		}
		e.runTween(a, t, delta)
		a.stats.Tweens++
	}
	clear(a.scratch)
}

// runTween advances one tween by the raw delta of its domain.
func (e *Engine) runTween(a *attachment, t *Tween, rawDelta float64) {
	l := a.loop
	logger := l.Logger()
	running := l.Running()

	if !t.IsValid() {
		logger.Error(fmt.Sprintf("tick: %v, removing: %s", ErrInvalidTween, t))
		t.lastRunFailed = true
		t.halt(running)
		return
	}
	if !t.playing {
		running.Remove(t)
		logger.Warn("tick: tween in running collection but not playing, removing: " + t.String())
		return
	}

	if t.IsInstant() {
		if enabled(logger, VerbosityInfo) {
			logger.Info("tick: instant tween: " + t.String())
		}
		if err := safeCall("start", t.OnStart.fire); err != nil {
			logger.Exception("start hook of "+t.String(), err)
		}
		if !t.playing {
			return
		}
		if err := safeCall("setter", func() { t.impl.evaluate(1) }); err != nil {
			logger.Exception("evaluate of "+t.String(), err)
			t.Stop()
			t.lastRunFailed = true
			return
		}
		t.Stop()
		return
	}

	if t.TickCondition.Len() > 0 {
		var action TickSuspendAction
		if err := safeCall("tick condition", func() { action = t.TickCondition.evaluate() }); err != nil {
			logger.Exception("tick condition of "+t.String(), err)
			action = SuspendStop
		}
		switch action {
		case SuspendTick:
			return
		case SuspendPause:
			t.Pause()
			return
		case SuspendStop:
			t.Stop()
			return
		}
	}

	remaining := rawDelta * t.speedFactor(l)
	if remaining < tweenDrainEpsilon {
		return
	}

	linkState := linkUnchecked
	for remaining > 0 && t.playing {
		a.stats.Steps++
		isFirstRun := t.loopsElapsed == 0
		consumed := false

		if t.speedFactor(l) <= tweenDrainEpsilon {
			break
		}

		if t.linkInvalidAction != SuspendNone && !e.linkAlive(l, t, &linkState) {
			if enabled(logger, VerbosityInfo) {
				logger.Info(fmt.Sprintf("tick: link invalid, action %s: %s", t.linkInvalidAction, t))
			}
			switch t.linkInvalidAction {
			case SuspendPause:
				t.Pause()
				t.lastRunFailed = true
			case SuspendStop:
				t.Stop()
				t.lastRunFailed = true
			}
			break
		}

		if t.delayElapsed < 1 {
			if t.startingDelay <= 0 {
				t.delayElapsed = 1
			} else {
				left := (1 - t.delayElapsed) * t.startingDelay
				if remaining+tweenDrainEpsilon >= left {
					remaining = drained(remaining, left)
					t.delayElapsed = 1
				} else {
					t.delayElapsed += remaining / t.startingDelay
					remaining = 0
				}
				consumed = true
			}
			if t.delayElapsed >= 1 && isFirstRun {
				if err := safeCall("start", t.OnStart.fire); err != nil {
					logger.Exception("start hook of "+t.String(), err)
				}
				if !t.playing {
					break
				}
			}
		}

		if remaining <= 0 {
			break
		}

		if t.currentElapsed < 1 {
			if err := safeCall("setter", func() { t.impl.evaluate(t.currentElapsed) }); err != nil {
				logger.Exception("evaluate of "+t.String(), err)
				t.Stop()
				t.lastRunFailed = true
				break
			}
			if t.startingDuration <= 0 {
				t.currentElapsed = 1
			} else {
				left := (1 - t.currentElapsed) * t.startingDuration
				if remaining+tweenDrainEpsilon >= left {
					remaining = drained(remaining, left)
					t.currentElapsed = 1
				} else {
					t.currentElapsed += remaining / t.startingDuration
					remaining = 0
				}
				consumed = true
			}
			if err := safeCall("tick", t.OnTick.fire); err != nil {
				logger.Exception("tick hook of "+t.String(), err)
				t.Stop()
				t.lastRunFailed = true
				break
			}
			if !t.playing {
				break
			}
		}

		if t.currentElapsed >= 1 {
			if err := safeCall("setter", func() { t.impl.evaluate(1) }); err != nil {
				logger.Exception("evaluate of "+t.String(), err)
				t.Stop()
				t.lastRunFailed = true
				break
			}
			if loopsRemain(t.startingLoopCount, t.loopsElapsed) {
				if t.loopsElapsed < math.MaxInt {
					t.loopsElapsed++
				}
				a.stats.Loops++
				run := t.runID
				if err := safeCall("loop repeat", t.OnLoopRepeat.fire); err != nil {
					logger.Exception("loop repeat hook of "+t.String(), err)
				}
				// A pause from the hook keeps the run; the next iteration
				// must still be set up for the resume.
				if t.runID == run && (t.playing || t.IsPaused()) {
					t.ResetPreserveLoop()
					if t.loopType == LoopYoyo {
						t.swapTargetValues = !t.swapTargetValues
					}
				}
				if !t.playing {
					break
				}
				if !consumed {
					// A zero-length iteration; carry on next tick.
					break
				}
				continue
			}
			run := t.runID
			if err := safeCall("end", t.OnEnd.fire); err != nil {
				logger.Exception("end hook of "+t.String(), err)
			}
			// Skip the stop when the end hook stopped or restarted the tween.
			if t.playing && t.runID == run {
				t.Stop()
			}
			break
		}
	}
}

// drained subtracts left from remaining, snapping leftovers below the drain
// epsilon to zero.
func drained(remaining, left float64) float64 {
	remaining -= left
	if remaining < tweenDrainEpsilon {
		return 0
	}
	return remaining
}

// speedFactor is the multiplier applied to raw deltas of t on loop l.
func (t *Tween) speedFactor(l Loop) float64 {
	scale := 1.0
	if !t.ignoreTimeScale {
		scale = l.TimeScale()
	}
	return scale * t.speed
}
