package sway

import "fmt"

// LoopType selects what happens to the start and end values when a tween
// repeats.
type LoopType uint8

const (
	LoopYoyo  LoopType = iota // swap start and end values on every repeat
	LoopReset                 // restart from the original start value
)

// LoopPingPong is an alias of LoopYoyo.
const LoopPingPong = LoopYoyo

func (l LoopType) String() string {
	switch l {
	case LoopYoyo:
		return "yoyo"
	case LoopReset:
		return "reset"
	default:
		return fmt.Sprintf("LoopType(%d)", uint8(l))
	}
}

// TickType selects which tick signal of a Loop advances a tween.
type TickType uint8

const (
	TickVariable TickType = iota // advanced on every frame tick
	TickFixed                    // advanced on fixed ticks, when the loop supports them
)

func (t TickType) String() string {
	switch t {
	case TickVariable:
		return "variable"
	case TickFixed:
		return "fixed"
	default:
		return fmt.Sprintf("TickType(%d)", uint8(t))
	}
}

// TickSuspendAction is returned by tick conditions and configured as the
// link-invalid policy of a tween.
type TickSuspendAction uint8

const (
	SuspendNone  TickSuspendAction = iota // keep ticking and tweening
	SuspendTick                           // keep the tween playing without advancing it
	SuspendPause                          // pause the tween
	SuspendStop                           // stop the tween
)

func (a TickSuspendAction) String() string {
	switch a {
	case SuspendNone:
		return "none"
	case SuspendTick:
		return "tick"
	case SuspendPause:
		return "pause"
	case SuspendStop:
		return "stop"
	default:
		return fmt.Sprintf("TickSuspendAction(%d)", uint8(a))
	}
}

// ValueSetMode controls how a value is applied to an existing setting: it
// replaces it, is added to it, or is removed from it.
type ValueSetMode uint8

const (
	SetEquals ValueSetMode = iota // replace the current value
	SetRemove                     // remove the value
	SetAdd                        // add the value
)

// PlayFlags are applied by Context.PlayWith before the tween starts.
type PlayFlags uint32

const (
	PlayNone             PlayFlags = 0
	PlaySetStartValue    PlayFlags = 1 << 0  // re-sample the start value from the getter
	PlayClearStopActions PlayFlags = 1 << 29 // clear the stop hook
	PlayClearEndActions  PlayFlags = 1 << 30 // clear the end hook
	PlayClearAllActions  PlayFlags = 1 << 31 // clear every hook and the tick condition
)

// Has reports whether all bits of flag are set in f.
func (f PlayFlags) Has(flag PlayFlags) bool {
	return f&flag == flag
}

// apply combines f with other according to mode.
func (f PlayFlags) apply(other PlayFlags, mode ValueSetMode) PlayFlags {
	switch mode {
	case SetRemove:
		return f &^ other
	case SetAdd:
		return f | other
	default:
		return other
	}
}

// tweenDrainEpsilon is the smallest effective delta or speed factor the
// drain loop will advance by.
const tweenDrainEpsilon = 1e-8

// loopsRemain reports whether more loop iterations remain after loopsElapsed
// completed ones. A negative loopCount loops forever.
func loopsRemain(loopCount, loopsElapsed int) bool {
	return loopCount < 0 || loopsElapsed < loopCount
}
