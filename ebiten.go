package sway

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// EbitenLoopConfig configures an EbitenLoop. The zero value is usable.
type EbitenLoopConfig struct {
	// Logger receives scheduler diagnostics. Nil logs warnings and above to
	// stderr.
	Logger Logger
	// FixedTick enables the fixed tick domain, fired once per Update with a
	// delta of 1/TPS.
	FixedTick bool
	// MaxDelta caps the variable delta after a stall. Zero means 0.25s.
	MaxDelta time.Duration
	// Now replaces the wall clock. Nil uses time.Now.
	Now func() time.Time
	// Capacity pre-sizes the running collection.
	Capacity int
}

// EbitenLoop is a Loop driven by Ebitengine: call Update from
// ebiten.Game.Update, or let Game and Run do it. The variable delta is
// measured on the wall clock; the fixed delta follows ebiten.TPS.
type EbitenLoop struct {
	loopState
	now      func() time.Time
	maxDelta float64
	last     time.Time
}

var _ Loop = (*EbitenLoop)(nil)

// NewEbitenLoop creates an EbitenLoop.
func NewEbitenLoop(cfg EbitenLoopConfig) *EbitenLoop {
	l := &EbitenLoop{
		loopState: newLoopState(cfg.Logger, cfg.FixedTick, cfg.Capacity),
		now:       cfg.Now,
		maxDelta:  cfg.MaxDelta.Seconds(),
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.maxDelta <= 0 {
		l.maxDelta = 0.25
	}
	return l
}

// tpsDelta is the duration of one Ebitengine update.
func tpsDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 1.0 / ebiten.DefaultTPS
	}
	return 1.0 / float64(tps)
}

// Update fires the fixed tick, when enabled, then the variable tick. The
// first Update after creation uses the TPS delta.
func (l *EbitenLoop) Update() {
	if l.killed {
		return
	}
	now := l.now()
	dt := tpsDelta()
	if !l.last.IsZero() {
		dt = min(max(0, now.Sub(l.last).Seconds()), l.maxDelta)
	}
	l.last = now

	if l.fixed {
		l.fixedDelta = tpsDelta()
		l.events.FireFixedTick(l)
	}
	l.tickCount++
	l.delta = dt
	l.events.FireTick(l)
}

// Kill fires the exit event without cleanup and releases the loop.
func (l *EbitenLoop) Kill() {
	l.release(l, false)
}

// Quit fires the exit event with cleanup and releases the loop.
func (l *EbitenLoop) Quit() {
	l.release(l, true)
}

// Game adapts an EbitenLoop to ebiten.Game. The loop is advanced before
// UpdateFunc on every update.
type Game struct {
	Loop       *EbitenLoop
	UpdateFunc func() error
	DrawFunc   func(screen *ebiten.Image)
	// Width and Height fix the logical screen size. Zero follows the
	// window.
	Width, Height int
	ShowFPS       bool
}

var _ ebiten.Game = (*Game)(nil)

func (g *Game) Update() error {
	g.Loop.Update()
	if g.UpdateFunc != nil {
		return g.UpdateFunc()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawFunc != nil {
		g.DrawFunc(screen)
	}
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ntweens: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.Loop.Running().Len()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Width > 0 && g.Height > 0 {
		return g.Width, g.Height
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	Update        func() error
	Draw          func(screen *ebiten.Image)
}

// Run opens a window and drives loop until the game ends, then quits the
// loop with cleanup.
func Run(loop *EbitenLoop, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	err := ebiten.RunGame(&Game{
		Loop:       loop,
		UpdateFunc: cfg.Update,
		DrawFunc:   cfg.Draw,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFPS:    cfg.ShowFPS,
	})
	loop.Quit()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
