package sway

import (
	"fmt"
	"time"
)

// TickStats holds per-tick timing and drain metrics of one loop. The counts
// are kept for every tick; Elapsed is measured and the stats are logged only
// when EngineConfig.Debug is true.
type TickStats struct {
	Fixed   bool
	Elapsed time.Duration
	// Tweens is the number of tweens advanced.
	Tweens int
	// Steps counts drain iterations across all tweens.
	Steps int
	// Loops counts loop boundaries crossed.
	Loops int
}

// Stats returns the stats of the last tick of loop. The zero value is
// returned for unattached loops.
func (e *Engine) Stats(loop Loop) TickStats {
	if a, ok := e.attached[loop]; ok {
		return a.stats
	}
	return TickStats{}
}

// debugLog writes timing and drain stats to the engine logger.
func (e *Engine) debugLog(l Loop, s TickStats) {
	if !e.cfg.Debug || !enabled(e.logger, VerbosityInfo) {
		return
	}
	domain := "tick"
	if s.Fixed {
		domain = "fixed"
	}
	e.logger.Info(fmt.Sprintf("%s %d: %v | tweens: %d | steps: %d | loops: %d | running: %d | deferred: %d",
		domain, l.ElapsedTickCount(), s.Elapsed, s.Tweens, s.Steps, s.Loops,
		l.Running().Len(), l.Deferrer().Len()))
	if s.Steps > debugMaxStepsPerTween*max(1, s.Tweens) {
		e.logger.Warn(fmt.Sprintf("%s %d: %d drain steps for %d tweens; short looping tweens under a large delta?",
			domain, l.ElapsedTickCount(), s.Steps, s.Tweens))
	}
}

// debugMaxStepsPerTween is the average drain step count per tween above
// which debug mode warns.
const debugMaxStepsPerTween = 64
