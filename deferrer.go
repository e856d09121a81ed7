package sway

import "errors"

// deferredEntry is one callback waiting for ticksLeft more ticks.
type deferredEntry struct {
	subject   any
	action    *Action
	ticksLeft int
}

// Deferrer runs callbacks a number of ticks after they were scheduled. Each
// Loop owns one and ticks it once per variable tick, after tweens have been
// advanced. It is not safe for concurrent use.
type Deferrer struct {
	entries []deferredEntry
	// cursor is the index Tick is visiting, or -1 outside Tick.
	cursor int
}

// NewDeferrer creates an empty Deferrer.
func NewDeferrer() *Deferrer {
	return &Deferrer{cursor: -1}
}

// ScheduleAfter runs fn after the given number of ticks on behalf of subject.
// A tick count of 1 fires on the next Tick, never during the tick it was
// scheduled from. The returned Action identifies the entry for CancelAction.
func (d *Deferrer) ScheduleAfter(subject any, fn func(), ticks int) *Action {
	a := NewAction(fn)
	d.entries = append(d.entries, deferredEntry{subject: subject, action: a, ticksLeft: ticks})
	return a
}

// Tick decrements every entry and fires those that reached zero. Entries are
// visited newest first so removal does not disturb the remaining indices.
// Entries scheduled by a firing callback are not visited in the same Tick.
// A panicking callback does not stop the pass; the recovered panics are
// returned joined.
func (d *Deferrer) Tick() error {
	defer func() { d.cursor = -1 }()
	var errs []error
	for d.cursor = len(d.entries) - 1; d.cursor >= 0; d.cursor-- {
		e := &d.entries[d.cursor]
		e.ticksLeft--
		if e.ticksLeft > 0 {
			continue
		}
		a := e.action
		d.removeAt(d.cursor)
		if err := safeCall("deferred", a.fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsScheduled reports whether subject has any pending entry.
func (d *Deferrer) IsScheduled(subject any) bool {
	for i := range d.entries {
		if d.entries[i].subject == subject {
			return true
		}
	}
	return false
}

// Len returns the number of pending entries.
func (d *Deferrer) Len() int {
	return len(d.entries)
}

// Cancel removes every entry of subject. When invoke is true the removed
// callbacks are still called, in scheduling order, after removal.
func (d *Deferrer) Cancel(subject any, invoke bool) {
	d.cancelMatching(func(e *deferredEntry) bool { return e.subject == subject }, invoke)
}

// CancelAction removes the entry of subject identified by a.
func (d *Deferrer) CancelAction(subject any, a *Action, invoke bool) {
	d.cancelMatching(func(e *deferredEntry) bool { return e.subject == subject && e.action == a }, invoke)
}

// CancelAll removes every entry.
func (d *Deferrer) CancelAll(invoke bool) {
	var actions []*Action
	if invoke {
		actions = make([]*Action, 0, len(d.entries))
		for i := range d.entries {
			actions = append(actions, d.entries[i].action)
		}
	}
	clear(d.entries)
	d.entries = d.entries[:0]
	if d.cursor >= 0 {
		d.cursor = 0
	}
	for _, a := range actions {
		a.fn()
	}
}

func (d *Deferrer) cancelMatching(match func(*deferredEntry) bool, invoke bool) {
	var actions []*Action
	for i := 0; i < len(d.entries); {
		if !match(&d.entries[i]) {
			i++
			continue
		}
		if invoke {
			actions = append(actions, d.entries[i].action)
		}
		d.removeAt(i)
		// While Tick runs a callback, entries [0, cursor) are still unvisited.
		// Removing one of them shifts the rest down by one.
		if i < d.cursor {
			d.cursor--
		}
	}
	for _, a := range actions {
		a.fn()
	}
}

func (d *Deferrer) removeAt(i int) {
	copy(d.entries[i:], d.entries[i+1:])
	d.entries[len(d.entries)-1] = deferredEntry{}
	d.entries = d.entries[:len(d.entries)-1]
}
