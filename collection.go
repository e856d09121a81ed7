package sway

// Collection is an ordered list of tweens. Every Loop keeps its playing
// tweens in one; FindByTag returns one as a query result, and the batch
// methods apply an operation to every member.
type Collection struct {
	// Tag is the tag a query collection was built for. Running collections
	// leave it empty.
	Tag   string
	items []*Tween
	// running marks a Loop's running collection: members are unique and
	// tracked through Tween.runRefs.
	running bool
}

// NewCollection creates an empty collection with the given tag and capacity.
func NewCollection(tag string, capacity int) *Collection {
	return &Collection{Tag: tag, items: make([]*Tween, 0, max(0, capacity))}
}

func newRunningCollection(capacity int) *Collection {
	c := NewCollection("", capacity)
	c.running = true
	return c
}

// Len returns the number of tweens.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the tween at index i.
func (c *Collection) At(i int) *Tween {
	return c.items[i]
}

// Items returns the backing slice. It MUST NOT be mutated and is only valid
// until the collection changes.
func (c *Collection) Items() []*Tween {
	return c.items
}

// Add appends t. A loop's running collection ignores tweens it already
// holds.
func (c *Collection) Add(t *Tween) {
	if c.running {
		if t.runRefs > 0 {
			return
		}
		t.runRefs++
	}
	c.items = append(c.items, t)
}

// IndexOf returns the index of the first occurrence of t, or -1.
func (c *Collection) IndexOf(t *Tween) int {
	for i, cur := range c.items {
		if cur == t {
			return i
		}
	}
	return -1
}

// Contains reports whether t is a member.
func (c *Collection) Contains(t *Tween) bool {
	if c.running && t.runRefs == 0 {
		return false
	}
	return c.IndexOf(t) >= 0
}

// Remove removes the first occurrence of t and reports whether one existed.
// Order of the remaining tweens is preserved.
func (c *Collection) Remove(t *Tween) bool {
	if c.running && t.runRefs == 0 {
		return false
	}
	i := c.IndexOf(t)
	if i < 0 {
		return false
	}
	c.RemoveAt(i)
	return true
}

// RemoveAt removes the tween at index i.
func (c *Collection) RemoveAt(i int) {
	if c.running {
		c.items[i].runRefs--
	}
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
}

// Clear removes every tween.
func (c *Collection) Clear() {
	if c.running {
		for _, t := range c.items {
			t.runRefs--
		}
	}
	clear(c.items)
	c.items = c.items[:0]
}

// snapshot copies the members into buf so callers can iterate while the
// collection changes.
func (c *Collection) snapshot(buf []*Tween) []*Tween {
	return append(buf[:0], c.items...)
}

// AnyPlaying reports whether at least one tween is playing.
func (c *Collection) AnyPlaying() bool {
	for _, t := range c.items {
		if t.IsPlaying() {
			return true
		}
	}
	return false
}

// AllPlaying reports whether every tween is playing. It is false for an
// empty collection.
func (c *Collection) AllPlaying() bool {
	if len(c.items) == 0 {
		return false
	}
	for _, t := range c.items {
		if !t.IsPlaying() {
			return false
		}
	}
	return true
}

// AnyPaused reports whether at least one tween is paused.
func (c *Collection) AnyPaused() bool {
	for _, t := range c.items {
		if t.IsPaused() {
			return true
		}
	}
	return false
}

// AllPaused reports whether every tween is paused. It is false for an empty
// collection.
func (c *Collection) AllPaused() bool {
	if len(c.items) == 0 {
		return false
	}
	for _, t := range c.items {
		if !t.IsPaused() {
			return false
		}
	}
	return true
}

// each calls fn for every member of a snapshot.
func (c *Collection) each(fn func(t *Tween)) {
	for _, t := range c.snapshot(nil) {
		fn(t)
	}
}

// Play plays every tween.
func (c *Collection) Play() { c.each((*Tween).Play) }

// PlayFrom plays every tween from the given position.
func (c *Collection) PlayFrom(currentElapsed float64, loopsElapsed int) {
	c.each(func(t *Tween) { t.PlayFrom(currentElapsed, loopsElapsed) })
}

// PlayFromTotal plays every tween from the given total position.
func (c *Collection) PlayFromTotal(totalElapsed float64) {
	c.each(func(t *Tween) { t.PlayFromTotal(totalElapsed) })
}

// Pause pauses every tween.
func (c *Collection) Pause() { c.each((*Tween).Pause) }

// Stop stops every tween.
func (c *Collection) Stop() { c.each((*Tween).Stop) }

// Reset resets the elapsed state of every tween.
func (c *Collection) Reset() { c.each((*Tween).Reset) }

// PlayDelayed plays every tween on the next tick.
func (c *Collection) PlayDelayed() { c.each((*Tween).PlayDelayed) }

// PauseDelayed pauses every tween on the next tick.
func (c *Collection) PauseDelayed() { c.each((*Tween).PauseDelayed) }

// StopDelayed stops every tween on the next tick.
func (c *Collection) StopDelayed() { c.each((*Tween).StopDelayed) }

// CancelDelayed cancels the deferred operations of every tween.
func (c *Collection) CancelDelayed() { c.each((*Tween).CancelDelayed) }

// ClearAllActions clears every hook of every tween.
func (c *Collection) ClearAllActions() { c.each((*Tween).ClearAllActions) }

// SetEndAction applies a to the end hook of every tween.
func (c *Collection) SetEndAction(a *Action, mode ValueSetMode) {
	c.each(func(t *Tween) { t.OnEnd.Apply(mode, a) })
}

// SetStopAction applies a to the stop hook of every tween.
func (c *Collection) SetStopAction(a *Action, mode ValueSetMode) {
	c.each(func(t *Tween) { t.OnStop.Apply(mode, a) })
}
