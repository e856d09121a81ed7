package sway

import (
	"fmt"
	"strings"
)

// Context is a typed tween: it interpolates between StartValue and EndValue
// with a LerpFunc and hands every value to a setter. It embeds the Tween
// state machine, so Play, Pause, Stop and the hooks are used directly:
//
//	x := 0.0
//	c := sway.NewFloat64(engine).
//		Setup(0, 100, 0.5, func(v float64) { x = v }).
//		SetEase(sway.EaseCubicOut)
//	c.Play()
//
// Setters return the receiver for chaining.
type Context[T any] struct {
	Tween

	startValue   T
	endValue     T
	currentValue T
	getter       func() T
	setter       func(T)
	lerp         LerpFunc[T]
	playFlags    PlayFlags
}

var _ tweenImpl = (*Context[float64])(nil)

// NewContext creates a Context interpolating with lerp. It panics when e or
// lerp is nil. The owner loop is resolved from e on first use.
func NewContext[T any](e *Engine, lerp LerpFunc[T]) *Context[T] {
	if lerp == nil {
		panic("sway: NewContext with nil LerpFunc")
	}
	c := &Context[T]{lerp: lerp}
	c.Tween.init(e, c)
	return c
}

// NewContextOn creates a Context owned by loop.
func NewContextOn[T any](e *Engine, loop Loop, lerp LerpFunc[T]) *Context[T] {
	c := NewContext(e, lerp)
	c.SetOwner(loop)
	return c
}

// NewFloat64 creates a float64 Context.
func NewFloat64(e *Engine) *Context[float64] { return NewContext(e, LerpFloat64) }

// NewFloat32 creates a float32 Context.
func NewFloat32(e *Engine) *Context[float32] { return NewContext(e, LerpFloat32) }

// NewInt creates an int Context. Values are rounded to the nearest integer.
func NewInt(e *Engine) *Context[int] { return NewContext(e, LerpInt) }

// NewVec2 creates a Vec2 Context.
func NewVec2(e *Engine) *Context[Vec2] { return NewContext(e, LerpVec2) }

// NewVec3 creates a Vec3 Context.
func NewVec3(e *Engine) *Context[Vec3] { return NewContext(e, LerpVec3) }

// NewColor creates a Color Context.
func NewColor(e *Engine) *Context[Color] { return NewContext(e, LerpColor) }

// NewQuat creates a Quat Context. slerp selects spherical interpolation over
// normalized linear interpolation.
func NewQuat(e *Engine, slerp bool) *Context[Quat] {
	if slerp {
		return NewContext(e, SlerpQuat)
	}
	return NewContext(e, LerpQuat)
}

// NewMat4 creates a Mat4 Context with component-wise interpolation.
func NewMat4(e *Engine) *Context[Mat4] { return NewContext(e, LerpMat4) }

// StartValue is the value at normalized time 0.
func (c *Context[T]) StartValue() T { return c.startValue }

// EndValue is the value at normalized time 1.
func (c *Context[T]) EndValue() T { return c.endValue }

// CurrentValue is the last value passed to the setter, or the start value
// while idle.
func (c *Context[T]) CurrentValue() T { return c.currentValue }

// Getter returns the getter, which may be nil.
func (c *Context[T]) Getter() func() T { return c.getter }

// Setter returns the setter.
func (c *Context[T]) Setter() func(T) { return c.setter }

// PlayFlags returns the flags applied by Play.
func (c *Context[T]) PlayFlags() PlayFlags { return c.playFlags }

func (c *Context[T]) valid() bool {
	return c.setter != nil && !isNilValue(c.startValue) && !isNilValue(c.endValue)
}

// evaluate implements tweenImpl.
func (c *Context[T]) evaluate(t float64) {
	c.Evaluate(t)
}

// Evaluate computes the value at normalized time t, swapping start and end
// on yoyo repeats, and passes it to the setter.
func (c *Context[T]) Evaluate(t float64) {
	a, b := c.startValue, c.endValue
	if c.swapTargetValues {
		a, b = b, a
	}
	c.currentValue = c.lerp(a, b, c.EvaluateEasing(t))
	c.setter(c.currentValue)
}

// ValueAt returns the value at normalized time t without calling the setter
// or honouring the yoyo swap.
func (c *Context[T]) ValueAt(t float64) T {
	return c.lerp(c.startValue, c.endValue, c.EvaluateEasing(t))
}

func (c *Context[T]) beforePlay() bool {
	return c.applyPlayFlags(c.playFlags)
}

func (c *Context[T]) applyPlayFlags(flags PlayFlags) bool {
	if flags.Has(PlaySetStartValue) {
		if err := c.sampleStart(); err != nil {
			c.lastRunFailed = true
			c.logger().Exception("Play: getter of "+c.String(), err)
			return false
		}
	}
	if flags.Has(PlayClearAllActions) {
		c.ClearAllActions()
	} else {
		if flags.Has(PlayClearEndActions) {
			c.OnEnd.Clear()
		}
		if flags.Has(PlayClearStopActions) {
			c.OnStop.Clear()
		}
	}
	return true
}

func (c *Context[T]) sampleStart() error {
	if c.getter == nil {
		return fmt.Errorf("sway: no getter to sample the start value")
	}
	var v T
	if err := safeCall("getter", func() { v = c.getter() }); err != nil {
		return err
	}
	c.SetStartValue(v)
	return nil
}

// PlayWith plays the tween with flags instead of the configured play flags.
func (c *Context[T]) PlayWith(flags PlayFlags) {
	if !c.IsValid() {
		c.failInvalid("Play")
		return
	}
	c.lastRunFailed = false
	if !c.applyPlayFlags(flags) {
		return
	}
	c.play()
}

// Setup sets the start and end values, duration and setter.
func (c *Context[T]) Setup(start, end T, duration float64, setter func(T)) *Context[T] {
	c.SetSetter(setter)
	c.SetStartValue(start)
	c.SetEndValue(end)
	return c.SetDuration(duration)
}

// SetupFromGetter sets the getter and samples the start value from it on
// every Play.
func (c *Context[T]) SetupFromGetter(getter func() T, end T, duration float64, setter func(T)) *Context[T] {
	c.SetGetter(getter)
	c.SetSetter(setter)
	c.SetEndValue(end)
	c.playFlags |= PlaySetStartValue
	if !c.playing {
		if err := c.sampleStart(); err != nil && c.owner != nil {
			c.owner.Logger().Exception("SetupFromGetter: getter", err)
		}
	}
	return c.SetDuration(duration)
}

// SetStartValue sets the value at normalized time 0. While idle the
// current value follows it.
func (c *Context[T]) SetStartValue(v T) *Context[T] {
	c.startValue = v
	if !c.playing {
		c.currentValue = v
	}
	return c
}

// SetStartValueFromGetter samples the getter into the start value.
func (c *Context[T]) SetStartValueFromGetter() *Context[T] {
	if err := c.sampleStart(); err != nil {
		c.lastRunFailed = true
		c.logger().Exception("SetStartValueFromGetter", err)
	}
	return c
}

// SetEndValue sets the value at normalized time 1.
func (c *Context[T]) SetEndValue(v T) *Context[T] {
	c.endValue = v
	if !c.playing && !c.IsPaused() {
		c.currentValue = c.startValue
	}
	return c
}

// SetGetter sets the function sampled by PlaySetStartValue.
func (c *Context[T]) SetGetter(fn func() T) *Context[T] {
	c.getter = fn
	return c
}

// SetSetter sets the function receiving every interpolated value.
func (c *Context[T]) SetSetter(fn func(T)) *Context[T] {
	c.setter = fn
	return c
}

// SetDuration sets the length of one iteration. Negative values are treated
// as 0. A running tween picks it up on its next run.
func (c *Context[T]) SetDuration(d float64) *Context[T] {
	c.duration = max(0, d)
	return c
}

// SetDelay sets the delay. While the delay of a playing tween is running,
// its progress is re-proportioned to the new length.
func (c *Context[T]) SetDelay(d float64) *Context[T] {
	d = max(0, d)
	if c.playing && c.delayElapsed < 1 {
		if d <= 1e-6 {
			c.delayElapsed = 1
		} else if c.startingDelay > 0 {
			c.delayElapsed = min(1, c.delayElapsed*c.startingDelay/d)
		}
		c.startingDelay = d
	}
	c.delay = d
	return c
}

// SetLoopCount sets the number of repeats. Negative values loop forever.
func (c *Context[T]) SetLoopCount(n int) *Context[T] {
	c.loopCount = n
	return c
}

func (c *Context[T]) SetLoopType(lt LoopType) *Context[T] {
	c.loopType = lt
	return c
}

func (c *Context[T]) SetWaitDelayOnLoop(wait bool) *Context[T] {
	c.waitDelayOnLoop = wait
	return c
}

// SetEase selects an easing from the table and stops using a curve.
func (c *Context[T]) SetEase(e EaseType) *Context[T] {
	c.ease = e
	c.useCurve = false
	return c
}

// SetEaseCurve eases through cv instead of the table. A nil curve reverts
// to the table.
func (c *Context[T]) SetEaseCurve(cv Curve) *Context[T] {
	c.curve = cv
	c.useCurve = cv != nil
	return c
}

// SetSpeed sets the speed multiplier. Negative values are treated as 0.
func (c *Context[T]) SetSpeed(s float64) *Context[T] {
	c.speed = max(0, s)
	return c
}

// SetClampEasing clamps eased values to [0, 1], cutting overshoot.
func (c *Context[T]) SetClampEasing(clamp bool) *Context[T] {
	c.clampEasing = clamp
	return c
}

// SetTickType selects the tick domain. A playing tween switches on its next
// tick.
func (c *Context[T]) SetTickType(tt TickType) *Context[T] {
	c.tickType = tt
	return c
}

func (c *Context[T]) SetIgnoreTimeScale(ignore bool) *Context[T] {
	c.ignoreTimeScale = ignore
	return c
}

// SetTag sets the tag used by Engine.FindByTag.
func (c *Context[T]) SetTag(tag string) *Context[T] {
	c.tag = tag
	return c
}

// SetLinkObject ties the tween to link: while link is not alive the tween
// applies action on every tick.
func (c *Context[T]) SetLinkObject(link any, action TickSuspendAction) *Context[T] {
	if link == nil && action == SuspendStop && c.owner != nil {
		c.owner.Logger().Warn("SetLinkObject: nil link with SuspendStop stops the tween on its next tick: " + c.String())
	}
	c.linkObject = link
	c.linkInvalidAction = action
	return c
}

// ClearLinkObject removes the link object.
func (c *Context[T]) ClearLinkObject() *Context[T] {
	c.linkObject = nil
	c.linkInvalidAction = SuspendNone
	return c
}

// SetPlayFlags combines flags into the flags applied by Play.
func (c *Context[T]) SetPlayFlags(flags PlayFlags, mode ValueSetMode) *Context[T] {
	c.playFlags = c.playFlags.apply(flags, mode)
	return c
}

// SetOwnerLoop moves the tween to loop. See Tween.SetOwner.
func (c *Context[T]) SetOwnerLoop(loop Loop) *Context[T] {
	c.SetOwner(loop)
	return c
}

func (c *Context[T]) SetPlayAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnPlay.Apply(mode, a)
	return c
}

func (c *Context[T]) SetStartAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnStart.Apply(mode, a)
	return c
}

func (c *Context[T]) SetTickAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnTick.Apply(mode, a)
	return c
}

func (c *Context[T]) SetPauseAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnPause.Apply(mode, a)
	return c
}

func (c *Context[T]) SetLoopRepeatAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnLoopRepeat.Apply(mode, a)
	return c
}

func (c *Context[T]) SetEndAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnEnd.Apply(mode, a)
	return c
}

func (c *Context[T]) SetStopAction(a *Action, mode ValueSetMode) *Context[T] {
	c.OnStop.Apply(mode, a)
	return c
}

// SetTickCondition applies cond to the tick condition hook.
func (c *Context[T]) SetTickCondition(cond *Condition, mode ValueSetMode) *Context[T] {
	c.TickCondition.Apply(mode, cond)
	return c
}

// CopyFrom copies settings, hooks and typed values of o.
func (c *Context[T]) CopyFrom(o *Context[T]) *Context[T] {
	c.Tween.CopyFrom(&o.Tween)
	c.getter = o.getter
	c.setter = o.setter
	c.lerp = o.lerp
	c.playFlags = o.playFlags
	c.SetStartValue(o.startValue)
	c.SetEndValue(o.endValue)
	return c
}

// Clone returns a stopped copy of c owned by the same loop.
func (c *Context[T]) Clone() *Context[T] {
	n := NewContext(c.engine, c.lerp)
	n.owner = c.owner
	return n.CopyFrom(c)
}

// SettingsEqual reports whether c and o share settings, hooks and values.
func (c *Context[T]) SettingsEqual(o *Context[T]) bool {
	if o == nil || !c.Tween.SettingsEqual(&o.Tween) {
		return false
	}
	return c.playFlags == o.playFlags &&
		valuesEqual(c.startValue, o.startValue) &&
		valuesEqual(c.endValue, o.endValue)
}

func (c *Context[T]) describe(sb *strings.Builder) {
	fmt.Fprintf(sb, " start=%v end=%v current=%v", c.startValue, c.endValue, c.currentValue)
}
