package sway

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// EaseType selects an easing function from the built-in table.
type EaseType uint8

// The order of the table below follows this enum; append new kinds at the end.
const (
	EaseLinear EaseType = iota
	EaseQuadIn
	EaseQuadOut
	EaseQuadInOut
	EaseCubicIn
	EaseCubicOut
	EaseCubicInOut
	EaseQuartIn
	EaseQuartOut
	EaseQuartInOut
	EaseQuintIn
	EaseQuintOut
	EaseQuintInOut
	EaseBounceIn
	EaseBounceOut
	EaseBounceInOut
	EaseElasticIn
	EaseElasticOut
	EaseElasticInOut
	EaseCircularIn
	EaseCircularOut
	EaseCircularInOut
	EaseSinusIn
	EaseSinusOut
	EaseSinusInOut
	EaseExponentialIn
	EaseExponentialOut
	EaseExponentialInOut
	EaseBackIn
	EaseBackOut
	EaseBackInOut
)

var easeNames = [...]string{
	"Linear",
	"QuadIn", "QuadOut", "QuadInOut",
	"CubicIn", "CubicOut", "CubicInOut",
	"QuartIn", "QuartOut", "QuartInOut",
	"QuintIn", "QuintOut", "QuintInOut",
	"BounceIn", "BounceOut", "BounceInOut",
	"ElasticIn", "ElasticOut", "ElasticInOut",
	"CircularIn", "CircularOut", "CircularInOut",
	"SinusIn", "SinusOut", "SinusInOut",
	"ExponentialIn", "ExponentialOut", "ExponentialInOut",
	"BackIn", "BackOut", "BackInOut",
}

func (e EaseType) String() string {
	if int(e) < len(easeNames) {
		return easeNames[e]
	}
	return fmt.Sprintf("EaseType(%d)", uint8(e))
}

// Overshoots reports whether the easing leaves [0, 1] between its endpoints.
func (e EaseType) Overshoots() bool {
	switch e {
	case EaseElasticIn, EaseElasticOut, EaseElasticInOut,
		EaseBackIn, EaseBackOut, EaseBackInOut:
		return true
	}
	return false
}

// EaseFunc maps normalized time to an eased value. Results are unclamped.
type EaseFunc func(t float64) float64

// easeTable is indexed by EaseType. Each entry is a gween easing evaluated
// over the unit range with pinned endpoints.
var easeTable = [...]EaseFunc{
	EaseLinear:           unitEase(ease.Linear),
	EaseQuadIn:           unitEase(ease.InQuad),
	EaseQuadOut:          unitEase(ease.OutQuad),
	EaseQuadInOut:        unitEase(ease.InOutQuad),
	EaseCubicIn:          unitEase(ease.InCubic),
	EaseCubicOut:         unitEase(ease.OutCubic),
	EaseCubicInOut:       unitEase(ease.InOutCubic),
	EaseQuartIn:          unitEase(ease.InQuart),
	EaseQuartOut:         unitEase(ease.OutQuart),
	EaseQuartInOut:       unitEase(ease.InOutQuart),
	EaseQuintIn:          unitEase(ease.InQuint),
	EaseQuintOut:         unitEase(ease.OutQuint),
	EaseQuintInOut:       unitEase(ease.InOutQuint),
	EaseBounceIn:         unitEase(ease.InBounce),
	EaseBounceOut:        unitEase(ease.OutBounce),
	EaseBounceInOut:      unitEase(ease.InOutBounce),
	EaseElasticIn:        unitEase(ease.InElastic),
	EaseElasticOut:       unitEase(ease.OutElastic),
	EaseElasticInOut:     unitEase(ease.InOutElastic),
	EaseCircularIn:       unitEase(ease.InCirc),
	EaseCircularOut:      unitEase(ease.OutCirc),
	EaseCircularInOut:    unitEase(ease.InOutCirc),
	EaseSinusIn:          unitEase(ease.InSine),
	EaseSinusOut:         unitEase(ease.OutSine),
	EaseSinusInOut:       unitEase(ease.InOutSine),
	EaseExponentialIn:    unitEase(ease.InExpo),
	EaseExponentialOut:   unitEase(ease.OutExpo),
	EaseExponentialInOut: unitEase(ease.InOutExpo),
	EaseBackIn:           unitEase(ease.InBack),
	EaseBackOut:          unitEase(ease.OutBack),
	EaseBackInOut:        unitEase(ease.InOutBack),
}

// EaseCount is the number of built-in easing kinds.
const EaseCount = len(easeTable)

// unitEase adapts a gween easing (begin, change, duration form) to the unit
// range. t == 0 and t == 1 return exactly 0 and 1; gween's exponential
// easings are offset by a thousandth at the endpoints otherwise.
func unitEase(fn ease.TweenFunc) EaseFunc {
	return func(t float64) float64 {
		switch t {
		case 0:
			return 0
		case 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Ease returns the easing function for e. Unknown kinds fall back to linear.
func Ease(e EaseType) EaseFunc {
	if int(e) < len(easeTable) {
		return easeTable[e]
	}
	return easeTable[EaseLinear]
}

// EasedValue evaluates the easing e at t.
func EasedValue(t float64, e EaseType) float64 {
	return Ease(e)(t)
}

// Curve is a custom easing curve, evaluated instead of the table when set
// on a tween.
type Curve interface {
	Evaluate(t float64) float64
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(t float64) float64

// Evaluate calls f(t).
func (f CurveFunc) Evaluate(t float64) float64 {
	return f(t)
}

// GweenCurve adapts any gween easing function to a Curve over the unit range.
func GweenCurve(fn ease.TweenFunc) Curve {
	return CurveFunc(func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	})
}
