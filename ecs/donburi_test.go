package ecs

import (
	"testing"

	"github.com/phanxgames/sway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type healthData struct {
	HP int
}

var health = donburi.NewComponentType[healthData]()

func newLoop(t *testing.T) (*sway.Engine, *sway.ManualLoop) {
	t.Helper()
	engine := sway.NewEngine(sway.EngineConfig{Logger: sway.Discard})
	loop := sway.NewManualLoop(sway.ManualLoopConfig{Logger: sway.Discard})
	engine.Attach(loop)
	return engine, loop
}

func TestEntityLink_Valid(t *testing.T) {
	world := donburi.NewWorld()
	e := world.Create(health)

	link := EntityLink{World: world, Entity: e}
	assert.True(t, link.IsValid())
	assert.True(t, link.CheckValidityOnce())

	world.Remove(e)
	assert.False(t, link.IsValid())
	assert.False(t, EntityLink{}.IsValid())
}

func TestLinkEntity_StopsWhenEntityRemoved(t *testing.T) {
	engine, loop := newLoop(t)
	world := donburi.NewWorld()
	e := world.Create(health)

	var v float64
	c := sway.NewFloat64(engine).Setup(0, 1, 1, func(x float64) { v = x })
	LinkEntity(c, world, e, sway.SuspendStop)
	c.Play()

	loop.Tick(0.25)
	require.True(t, c.IsPlaying())
	assert.Equal(t, 0.0, v)

	world.Remove(e)
	loop.Tick(0.25)
	assert.False(t, c.IsPlaying())
	assert.True(t, c.LastRunFailed())
	assert.Equal(t, 0, loop.Running().Len())
}

func TestLinkEntity_PausesWhenEntityRemoved(t *testing.T) {
	engine, loop := newLoop(t)
	world := donburi.NewWorld()
	e := world.Create(health)

	c := sway.NewFloat64(engine).Setup(0, 1, 1, func(float64) {})
	LinkEntity(c, world, e, sway.SuspendPause)
	c.Play()
	loop.Tick(0.5)

	world.Remove(e)
	loop.Tick(0.1)
	assert.True(t, c.IsPaused())
	assert.InDelta(t, 0.5, c.CurrentElapsed(), 1e-9)
}

func TestPublish_Lifecycle(t *testing.T) {
	engine, loop := newLoop(t)
	world := donburi.NewWorld()
	e := world.Create(health)

	var got []TweenEvent
	TweenEventType.Subscribe(world, func(w donburi.World, ev TweenEvent) {
		got = append(got, ev)
	})

	c := sway.NewFloat64(engine).Setup(0, 1, 1, func(float64) {}).SetTag("fade")
	LinkEntity(c, world, e, sway.SuspendStop)
	Publish(world, &c.Tween)

	c.Play()
	loop.Tick(1)
	TweenEventType.ProcessEvents(world)

	kinds := make([]TweenEventKind, len(got))
	for i, ev := range got {
		kinds[i] = ev.Kind
		assert.Equal(t, "fade", ev.Tag)
		assert.Equal(t, e, ev.Entity)
		assert.Same(t, &c.Tween, ev.Tween)
	}
	assert.Equal(t, []TweenEventKind{TweenPlayed, TweenStarted, TweenEnded, TweenStopped}, kinds)
}

func TestPublish_Unsubscribe(t *testing.T) {
	engine, loop := newLoop(t)
	world := donburi.NewWorld()

	count := 0
	TweenEventType.Subscribe(world, func(w donburi.World, ev TweenEvent) { count++ })

	c := sway.NewFloat64(engine).Setup(0, 1, 1, func(float64) {})
	stop := Publish(world, &c.Tween)
	stop()

	c.Play()
	loop.Tick(1)
	TweenEventType.ProcessEvents(world)
	assert.Zero(t, count)
	assert.Zero(t, c.OnStop.Len())
}

func TestTweenEventKind_String(t *testing.T) {
	assert.Equal(t, "loop repeated", TweenLoopRepeated.String())
	assert.Equal(t, "unknown", TweenEventKind(99).String())
}
