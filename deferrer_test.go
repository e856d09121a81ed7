package sway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferrer_FiresAfterTicks(t *testing.T) {
	d := NewDeferrer()
	var got []string
	d.ScheduleAfter("a", func() { got = append(got, "a") }, 1)
	d.ScheduleAfter("b", func() { got = append(got, "b") }, 2)

	assert.True(t, d.IsScheduled("a"))
	assert.Equal(t, 2, d.Len())

	d.Tick()
	assert.Equal(t, []string{"a"}, got)
	assert.False(t, d.IsScheduled("a"))

	d.Tick()
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Zero(t, d.Len())
}

func TestDeferrer_ScheduledDuringTickWaitsForNextTick(t *testing.T) {
	d := NewDeferrer()
	fired := 0
	d.ScheduleAfter("outer", func() {
		d.ScheduleAfter("inner", func() { fired++ }, 1)
	}, 1)

	d.Tick()
	assert.Zero(t, fired)
	assert.True(t, d.IsScheduled("inner"))

	d.Tick()
	assert.Equal(t, 1, fired)
}

func TestDeferrer_Cancel(t *testing.T) {
	d := NewDeferrer()
	fired := 0
	d.ScheduleAfter("x", func() { fired++ }, 1)
	d.ScheduleAfter("x", func() { fired++ }, 3)
	keep := d.ScheduleAfter("y", func() { fired += 10 }, 1)

	d.Cancel("x", false)
	assert.False(t, d.IsScheduled("x"))
	d.Tick()
	assert.Equal(t, 10, fired)

	d.ScheduleAfter("y", func() { fired += 100 }, 1)
	d.CancelAction("y", keep, false)
	assert.True(t, d.IsScheduled("y"), "only the matching action is cancelled")
}

func TestDeferrer_CancelInvokes(t *testing.T) {
	d := NewDeferrer()
	var got []int
	d.ScheduleAfter("x", func() { got = append(got, 1) }, 5)
	d.ScheduleAfter("x", func() { got = append(got, 2) }, 5)

	d.Cancel("x", true)
	assert.Equal(t, []int{1, 2}, got)
	assert.Zero(t, d.Len())
}

func TestDeferrer_CancelFromCallbackKeepsCursor(t *testing.T) {
	d := NewDeferrer()
	var got []string
	d.ScheduleAfter("a", func() { got = append(got, "a") }, 1)
	d.ScheduleAfter("b", func() { got = append(got, "b") }, 1)
	d.ScheduleAfter("c", func() {
		got = append(got, "c")
		d.Cancel("a", false)
	}, 1)

	d.Tick()
	assert.Equal(t, []string{"c", "b"}, got)
	assert.Zero(t, d.Len())
}

func TestDeferrer_CancelAll(t *testing.T) {
	d := NewDeferrer()
	fired := 0
	d.ScheduleAfter("a", func() { fired++ }, 1)
	d.ScheduleAfter("b", func() {
		fired += 10
		d.CancelAll(false)
	}, 1)

	d.Tick()
	assert.Equal(t, 10, fired)
	assert.Zero(t, d.Len())

	d.ScheduleAfter("a", func() { fired++ }, 4)
	d.CancelAll(true)
	assert.Equal(t, 11, fired)
}

func TestDeferrer_PanicDoesNotStopPass(t *testing.T) {
	d := NewDeferrer()
	fired := 0
	d.ScheduleAfter("a", func() { fired++ }, 1)
	d.ScheduleAfter("b", func() { panic("boom") }, 1)
	d.ScheduleAfter("c", func() { fired++ }, 2)

	err := d.Tick()
	require.Error(t, err)
	var cbErr *CallbackError
	require.True(t, errors.As(err, &cbErr))
	assert.Equal(t, "boom", cbErr.Value)
	assert.Equal(t, 1, fired, "entries older than the panicking one still fire")
	assert.Equal(t, 1, d.Len())

	assert.NoError(t, d.Tick())
	assert.Equal(t, 2, fired)
}

func TestDeferrer_PanicIsLoggedByLoop(t *testing.T) {
	_, l, buf := newLoggedLoop(t, false)
	fired := 0
	l.Deferrer().ScheduleAfter("a", func() { fired++ }, 1)
	l.Deferrer().ScheduleAfter("b", func() { panic("boom") }, 1)

	l.Tick(0.1)
	assert.Equal(t, 1, fired)
	assert.Zero(t, l.Deferrer().Len())
	assert.Contains(t, buf.String(), "deferred callback panicked: boom")
}
