package sway

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenPtr creates a Context that animates *p from its value at Play time to
// the given target. The start value is re-sampled from *p on every Play.
// The tween is returned idle; call Play to start it.
func TweenPtr[T any](e *Engine, p *T, to T, duration float64, lerp LerpFunc[T]) *Context[T] {
	if p == nil {
		panic("sway: TweenPtr with nil pointer")
	}
	c := NewContext(e, lerp)
	c.SetupFromGetter(func() T { return *p }, to, duration, func(v T) { *p = v })
	return c
}

// TweenFloat64 animates *p to the target value with the given easing.
func TweenFloat64(e *Engine, p *float64, to, duration float64, et EaseType) *Context[float64] {
	return TweenPtr(e, p, to, duration, LerpFloat64).SetEase(et)
}

// TweenVec2 animates both components of *p to the target.
func TweenVec2(e *Engine, p *Vec2, to Vec2, duration float64, et EaseType) *Context[Vec2] {
	return TweenPtr(e, p, to, duration, LerpVec2).SetEase(et)
}

// TweenVec3 animates all three components of *p to the target.
func TweenVec3(e *Engine, p *Vec3, to Vec3, duration float64, et EaseType) *Context[Vec3] {
	return TweenPtr(e, p, to, duration, LerpVec3).SetEase(et)
}

// TweenColor animates all four components of *p (R, G, B, A) to the target
// color.
func TweenColor(e *Engine, p *Color, to Color, duration float64, et EaseType) *Context[Color] {
	return TweenPtr(e, p, to, duration, LerpColor).SetEase(et)
}

// TweenRotation animates *p along the shortest arc to the target using
// spherical interpolation.
func TweenRotation(e *Engine, p *Quat, to Quat, duration float64, et EaseType) *Context[Quat] {
	return TweenPtr(e, p, to, duration, SlerpQuat).SetEase(et)
}

// GweenTween runs a github.com/tanema/gween tween on a sway loop, for code
// that already builds gween tweens. The context is linear over the elapsed
// seconds of the iteration; set receives gween's value. Yoyo loops are not
// supported, so the loop type is fixed to LoopReset.
func GweenTween(e *Engine, begin, end, duration float32, fn ease.TweenFunc, set func(float32)) *Context[float64] {
	if set == nil {
		panic("sway: GweenTween with nil setter")
	}
	var (
		tw   *gween.Tween
		last float32
	)
	restart := func() {
		tw = gween.New(begin, end, duration, fn)
		last = 0
	}
	restart()
	c := NewFloat64(e)
	c.Setup(0, float64(duration), float64(duration), func(elapsed float64) {
		now := float32(elapsed)
		if now < last {
			restart()
		}
		v, _ := tw.Update(now - last)
		last = now
		set(v)
	})
	c.SetEase(EaseLinear).SetLoopType(LoopReset)
	c.OnPlay.Add(restart)
	c.OnLoopRepeat.Add(restart)
	return c
}
