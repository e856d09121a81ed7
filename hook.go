package sway

import "slices"

// Action is a registered callback. Hooks and the deferrer identify callbacks
// by their *Action so the same function can be added, removed or cancelled
// without comparing func values.
type Action struct {
	fn func()
}

// NewAction wraps fn. fn must not be nil.
func NewAction(fn func()) *Action {
	if fn == nil {
		panic("sway: NewAction with nil func")
	}
	return &Action{fn: fn}
}

// Invoke calls the wrapped function.
func (a *Action) Invoke() {
	a.fn()
}

// Hook is an ordered list of callbacks fired together. Callbacks may change
// the hook while it fires; removals and replacements never touch the slice
// being iterated.
type Hook struct {
	actions []*Action
}

// Set replaces every callback with fn and returns its Action.
func (h *Hook) Set(fn func()) *Action {
	a := NewAction(fn)
	h.Apply(SetEquals, a)
	return a
}

// Add appends fn and returns its Action.
func (h *Hook) Add(fn func()) *Action {
	a := NewAction(fn)
	h.actions = append(h.actions, a)
	return a
}

// Remove removes a. It reports whether a was registered.
func (h *Hook) Remove(a *Action) bool {
	for i, cur := range h.actions {
		if cur == a {
			h.actions = slices.Concat(h.actions[:i], h.actions[i+1:])
			return true
		}
	}
	return false
}

// Apply sets, adds or removes a depending on mode. SetEquals with a nil
// action clears the hook.
func (h *Hook) Apply(mode ValueSetMode, a *Action) {
	switch mode {
	case SetRemove:
		if a != nil {
			h.Remove(a)
		}
	case SetAdd:
		if a != nil {
			h.actions = append(h.actions, a)
		}
	default:
		h.actions = nil
		if a != nil {
			h.actions = []*Action{a}
		}
	}
}

// Clear removes every callback.
func (h *Hook) Clear() {
	h.actions = nil
}

// Len returns the number of registered callbacks.
func (h *Hook) Len() int {
	return len(h.actions)
}

// fire invokes the callbacks in registration order. A panic in one callback
// aborts the rest, like a multicast delegate.
func (h *Hook) fire() {
	if len(h.actions) == 0 {
		return
	}
	for _, a := range h.actions {
		a.fn()
	}
}

func (h *Hook) copyFrom(o *Hook) {
	h.actions = slices.Clone(o.actions)
}

// Condition is a tick condition callback.
type Condition struct {
	fn func() TickSuspendAction
}

// NewCondition wraps fn. fn must not be nil.
func NewCondition(fn func() TickSuspendAction) *Condition {
	if fn == nil {
		panic("sway: NewCondition with nil func")
	}
	return &Condition{fn: fn}
}

// ConditionHook is the list of tick conditions of a tween. When several
// conditions are registered, the strongest request wins in the order
// SuspendStop, SuspendPause, SuspendTick, SuspendNone.
type ConditionHook struct {
	conds []*Condition
}

// Set replaces every condition with fn.
func (h *ConditionHook) Set(fn func() TickSuspendAction) *Condition {
	c := NewCondition(fn)
	h.Apply(SetEquals, c)
	return c
}

// Add appends fn.
func (h *ConditionHook) Add(fn func() TickSuspendAction) *Condition {
	c := NewCondition(fn)
	h.conds = append(h.conds, c)
	return c
}

// Remove removes c. It reports whether c was registered.
func (h *ConditionHook) Remove(c *Condition) bool {
	for i, cur := range h.conds {
		if cur == c {
			h.conds = slices.Concat(h.conds[:i], h.conds[i+1:])
			return true
		}
	}
	return false
}

// Apply sets, adds or removes c depending on mode.
func (h *ConditionHook) Apply(mode ValueSetMode, c *Condition) {
	switch mode {
	case SetRemove:
		if c != nil {
			h.Remove(c)
		}
	case SetAdd:
		if c != nil {
			h.conds = append(h.conds, c)
		}
	default:
		h.conds = nil
		if c != nil {
			h.conds = []*Condition{c}
		}
	}
}

// Clear removes every condition.
func (h *ConditionHook) Clear() {
	h.conds = nil
}

// Len returns the number of registered conditions.
func (h *ConditionHook) Len() int {
	return len(h.conds)
}

func (h *ConditionHook) evaluate() TickSuspendAction {
	result := SuspendNone
	for _, c := range h.conds {
		if r := c.fn(); r > result {
			result = r
		}
	}
	return result
}

func (h *ConditionHook) copyFrom(o *ConditionHook) {
	h.conds = slices.Clone(o.conds)
}
