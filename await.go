package sway

import "context"

// finished reports whether t is idle with nothing pending.
func finished(t *Tween, waitWhilePaused bool) bool {
	if t.IsPlaying() || t.IsScheduled() {
		return false
	}
	return !waitWhilePaused || !t.IsPaused()
}

// Done returns a channel closed once t is neither playing nor scheduled,
// checked one tick after each stop or pause so that restarts do not count.
// When waitWhilePaused is set a paused tween is still waited for. The
// channel is also closed when t's owner loop exits, since nothing will run
// t afterwards. Done must be called from the goroutine that ticks t's owner.
func Done(t *Tween, waitWhilePaused bool) <-chan struct{} {
	ch := make(chan struct{})
	if finished(t, waitWhilePaused) {
		close(ch)
		return ch
	}
	owner := t.Owner()
	var (
		stopA, pauseA *Action
		unsubscribe   func()
		closed        bool
	)
	finish := func() {
		if closed {
			return
		}
		closed = true
		t.OnStop.Remove(stopA)
		t.OnPause.Remove(pauseA)
		unsubscribe()
		close(ch)
	}
	check := func() {
		if finished(t, waitWhilePaused) {
			finish()
		}
	}
	later := func() {
		t.Owner().Deferrer().ScheduleAfter(ch, check, 1)
	}
	stopA = t.OnStop.Add(later)
	pauseA = t.OnPause.Add(later)
	unsubscribe = owner.Events().OnExit(func(Loop, bool) { finish() })
	return ch
}

// Await blocks until done is closed or ctx ends, returning ctx.Err() in the
// latter case. It must not be called from the goroutine ticking the loop.
//
//	done := sway.Done(&fade.Tween, false)
//	go func() { _ = sway.Await(ctx, done); next() }()
func Await(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
