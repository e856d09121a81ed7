package sway

// LinkObject lets a link report its own validity. The engine's
// AlivePredicate is still applied to links that report themselves valid.
type LinkObject interface {
	// CheckValidityOnce reports whether IsValid may be cached for the rest
	// of a tick.
	CheckValidityOnce() bool
	IsValid() bool
}

// Disposable is implemented by links that can be torn down by their host.
type Disposable interface {
	IsDisposed() bool
}

// AlivePredicate reports whether a link object is still alive.
type AlivePredicate func(link any) bool

// DefaultAlive treats nil, disposed and nil-reporting links as dead and
// anything else as alive.
func DefaultAlive(link any) bool {
	if link == nil {
		return false
	}
	switch l := link.(type) {
	case Disposable:
		return !l.IsDisposed()
	case Nillable:
		return !l.IsNil()
	}
	return true
}

const (
	linkUnchecked = iota
	linkInvalid
	linkValid
)

// linkAlive checks the tween's link. state caches a LinkObject answer
// across drain iterations when the link allows it.
func (e *Engine) linkAlive(l Loop, t *Tween, state *int) bool {
	switch *state {
	case linkValid:
		return true
	case linkInvalid:
		return false
	}
	alive := false
	err := safeCall("link", func() {
		if lo, ok := t.linkObject.(LinkObject); ok {
			alive = lo.IsValid() && e.alive(t.linkObject)
			if lo.CheckValidityOnce() {
				*state = linkInvalid
				if alive {
					*state = linkValid
				}
			}
			return
		}
		alive = e.alive(t.linkObject)
	})
	if err != nil {
		l.Logger().Exception("link check of "+t.String(), err)
		return false
	}
	return alive
}
