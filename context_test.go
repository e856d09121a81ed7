package sway

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestContext_EvaluateHonoursYoyoSwap(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := NewContextOn(e, l, LerpFloat64).
		Setup(0, 10, 1, func(x float64) { v = x }).
		SetEase(EaseLinear)

	c.Evaluate(0.25)
	assert.InDelta(t, 2.5, v, 1e-9)
	assert.InDelta(t, 2.5, c.CurrentValue(), 1e-9)

	c.swapTargetValues = true
	c.Evaluate(0.25)
	assert.InDelta(t, 7.5, v, 1e-9)
	assert.InDelta(t, 2.5, c.ValueAt(0.25), 1e-9, "ValueAt ignores the swap")
}

func TestContext_ClampEasing(t *testing.T) {
	e, l := newTestLoop(t)
	c := NewContextOn(e, l, LerpFloat64).SetEase(EaseBackIn)

	require.Less(t, c.EvaluateEasing(0.2), 0.0, "back easing overshoots below 0")
	c.SetClampEasing(true)
	assert.Equal(t, 0.0, c.EvaluateEasing(0.2))
	assert.Equal(t, 1.0, c.EvaluateEasing(1))
}

func TestContext_EaseCurve(t *testing.T) {
	e, l := newTestLoop(t)
	c := NewContextOn(e, l, LerpFloat64).SetEase(EaseLinear)

	c.SetEaseCurve(CurveFunc(func(x float64) float64 { return x * x }))
	assert.True(t, c.UseEaseCurve())
	assert.InDelta(t, 0.25, c.EvaluateEasing(0.5), 1e-9)

	c.SetEaseCurve(GweenCurve(ease.Linear))
	assert.InDelta(t, 0.5, c.EvaluateEasing(0.5), 1e-6)

	c.SetEaseCurve(nil)
	assert.False(t, c.UseEaseCurve())
	assert.InDelta(t, 0.5, c.EvaluateEasing(0.5), 1e-9)

	c.SetEaseCurve(CurveFunc(func(x float64) float64 { return 1 - x }))
	c.SetEase(EaseLinear)
	assert.False(t, c.UseEaseCurve(), "selecting a table easing drops the curve")
}

func TestContext_SetupFromGetterSamplesOnEveryPlay(t *testing.T) {
	e, l := newTestLoop(t)
	src := 3.0
	var v float64
	c := NewContextOn(e, l, LerpFloat64).
		SetupFromGetter(func() float64 { return src }, 10, 1, func(x float64) { v = x })

	assert.Equal(t, 3.0, c.StartValue())
	assert.True(t, c.PlayFlags().Has(PlaySetStartValue))

	src = 5
	c.Play()
	assert.Equal(t, 5.0, c.StartValue())
	l.Tick(0.5)
	assert.Equal(t, 5.0, v)
}

func TestContext_PlayWithFlags(t *testing.T) {
	e, l := newTestLoop(t)
	src := 1.0
	c := NewContextOn(e, l, LerpFloat64).Setup(0, 10, 1, func(float64) {})
	c.SetGetter(func() float64 { return src })

	c.PlayWith(PlayNone)
	assert.Equal(t, 0.0, c.StartValue())

	c.PlayWith(PlaySetStartValue)
	assert.Equal(t, 1.0, c.StartValue())

	c.OnEnd.Add(func() {})
	c.OnStop.Add(func() {})
	c.PlayWith(PlayClearEndActions)
	assert.Zero(t, c.OnEnd.Len())
	assert.Equal(t, 1, c.OnStop.Len())

	c.OnPlay.Add(func() {})
	c.TickCondition.Add(func() TickSuspendAction { return SuspendNone })
	c.PlayWith(PlayClearAllActions | PlayClearStopActions)
	assert.Zero(t, c.OnStop.Len())
	assert.Zero(t, c.OnPlay.Len())
	assert.Zero(t, c.TickCondition.Len())
	assert.True(t, c.IsPlaying())
}

func TestContext_GetterFaultFailsPlay(t *testing.T) {
	e, l, buf := newLoggedLoop(t, false)
	c := NewContextOn(e, l, LerpFloat64).Setup(0, 1, 1, func(float64) {})
	c.SetPlayFlags(PlaySetStartValue, SetAdd)

	c.Play()
	assert.False(t, c.IsPlaying(), "no getter")
	assert.True(t, c.LastRunFailed())

	c.SetGetter(func() float64 { panic("gone") })
	c.Play()
	assert.False(t, c.IsPlaying())
	assert.True(t, c.LastRunFailed())
	assert.Contains(t, buf.String(), "getter callback panicked: gone")

	c.SetPlayFlags(PlaySetStartValue, SetRemove)
	c.Play()
	assert.True(t, c.IsPlaying())
	assert.False(t, c.LastRunFailed())
}

func TestContext_SetPlayFlagsModes(t *testing.T) {
	e, l := newTestLoop(t)
	c := NewContextOn(e, l, LerpFloat64)

	c.SetPlayFlags(PlayClearEndActions, SetAdd)
	c.SetPlayFlags(PlayClearStopActions, SetAdd)
	assert.Equal(t, PlayClearEndActions|PlayClearStopActions, c.PlayFlags())

	c.SetPlayFlags(PlayClearEndActions, SetRemove)
	assert.Equal(t, PlayClearStopActions, c.PlayFlags())

	c.SetPlayFlags(PlayNone, SetEquals)
	assert.Equal(t, PlayNone, c.PlayFlags())
}

func TestContext_SetDelayReproportionsRunningDelay(t *testing.T) {
	e, l := newTestLoop(t)
	var v float64
	c := newFloat(e, l, 1, &v).SetDelay(1)
	c.Play()
	l.Tick(0.5)
	require.InDelta(t, 0.5, c.DelayElapsed(), 1e-9)

	c.SetDelay(2)
	assert.InDelta(t, 0.25, c.DelayElapsed(), 1e-9)
	assert.Equal(t, 2.0, c.StartingDelay())

	l.Tick(1.5)
	assert.Equal(t, 1.0, c.DelayElapsed())
	assert.Zero(t, c.CurrentElapsed())

	c.Stop()
	c.Play()
	l.Tick(0.5)
	c.SetDelay(0)
	assert.Equal(t, 1.0, c.DelayElapsed(), "a zero delay ends the running delay")
}

func TestContext_SettersClamp(t *testing.T) {
	e, l := newTestLoop(t)
	c := NewContextOn(e, l, LerpFloat64).
		SetDuration(-1).
		SetDelay(-1).
		SetSpeed(-2)

	assert.Zero(t, c.Duration())
	assert.Zero(t, c.Delay())
	assert.Zero(t, c.Speed())
}

func TestContext_SetStartValueFollowsWhileIdle(t *testing.T) {
	e, l := newTestLoop(t)
	c := NewContextOn(e, l, LerpFloat64).Setup(2, 4, 1, func(float64) {})
	assert.Equal(t, 2.0, c.CurrentValue())

	c.SetStartValue(3)
	assert.Equal(t, 3.0, c.CurrentValue())

	c.SetEndValue(8)
	assert.Equal(t, 3.0, c.CurrentValue())
	assert.Equal(t, 8.0, c.EndValue())
}

func TestContext_NilValuesAreInvalid(t *testing.T) {
	e, l := newTestLoop(t)
	lerpPtr := func(a, b *float64, t float64) *float64 {
		v := LerpFloat64(*a, *b, t)
		return &v
	}
	end := 1.0
	c := NewContextOn(e, l, lerpPtr).Setup(nil, &end, 1, func(*float64) {})
	assert.False(t, c.IsValid())

	start := 0.0
	c.SetStartValue(&start)
	assert.True(t, c.IsValid())
}

type handle struct{ dead bool }

func (h handle) IsNil() bool { return h.dead }

func TestContext_NillableValuesAreInvalid(t *testing.T) {
	e, l := newTestLoop(t)
	keep := func(a, b handle, t float64) handle { return b }
	c := NewContextOn(e, l, keep).Setup(handle{}, handle{dead: true}, 1, func(handle) {})
	assert.False(t, c.IsValid())

	c.SetEndValue(handle{})
	assert.True(t, c.IsValid())
}

func TestContext_ValueTypes(t *testing.T) {
	e, l := newTestLoop(t)

	i := NewInt(e).SetOwnerLoop(l).Setup(0, 10, 1, func(int) {}).SetEase(EaseLinear)
	assert.Equal(t, 3, i.ValueAt(0.26))

	f32 := NewFloat32(e).Setup(0, 2, 1, func(float32) {}).SetEase(EaseLinear)
	assert.InDelta(t, 1.0, f32.ValueAt(0.5), 1e-6)

	v3 := NewVec3(e).Setup(Vec3{}, Vec3{X: 2, Y: 4, Z: 6}, 1, func(Vec3) {}).SetEase(EaseLinear)
	assert.Equal(t, Vec3{X: 1, Y: 2, Z: 3}, v3.ValueAt(0.5))

	col := NewColor(e).Setup(Color{}, ColorWhite, 1, func(Color) {}).SetEase(EaseLinear)
	assert.Equal(t, Color{0.5, 0.5, 0.5, 0.5}, col.ValueAt(0.5))

	m := NewMat4(e).Setup(Mat4Identity, Mat4{}, 1, func(Mat4) {}).SetEase(EaseLinear)
	got := m.ValueAt(0.5)
	assert.Equal(t, 0.5, got[0])
	assert.Equal(t, 0.0, got[1])
	assert.Equal(t, 0.5, got[15])
}

func TestContext_QuatInterpolation(t *testing.T) {
	e, _ := newTestLoop(t)
	target := QuatFromAxisAngle(Vec3{Z: 2}, math.Pi/2)
	half := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/4)

	for _, slerp := range []bool{true, false} {
		q := NewQuat(e, slerp).Setup(QuatIdentity, target, 1, func(Quat) {}).SetEase(EaseLinear)
		got := q.ValueAt(0.5)
		assert.InDelta(t, 1, math.Abs(got.Dot(half)), 1e-9, "slerp=%v", slerp)
		assert.InDelta(t, 1, got.Dot(got), 1e-9, "slerp=%v: unit length", slerp)
	}
}

func TestLerpQuat_ShortestArc(t *testing.T) {
	a := QuatIdentity
	b := Quat{W: -1}
	got := SlerpQuat(a, b, 0.5)
	assert.InDelta(t, 1, math.Abs(got.W), 1e-9, "q and -q are the same rotation")
	assert.Equal(t, QuatIdentity, QuatFromAxisAngle(Vec3{}, 1))
	assert.Equal(t, Quat{}, Quat{}.Normalize())
}

func TestLerpInt_Rounds(t *testing.T) {
	assert.Equal(t, 1, LerpInt(0, 2, 0.5))
	assert.Equal(t, -1, LerpInt(0, -2, 0.5))
	assert.Equal(t, 12, LerpInt(0, 10, 1.2), "unclamped")
}
