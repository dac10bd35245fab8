package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerOnePaintPerTick(t *testing.T) {
	var inc, rep int
	s := NewScheduler(func() { inc++ }, func() { rep++ })

	s.Tick()
	assert.Zero(t, inc, "idle tick paints nothing")

	s.MarkDirty()
	s.MarkDirty()
	s.MarkDirty()
	s.Tick()
	assert.Equal(t, 1, inc, "marks between ticks coalesce into one paint")

	s.Tick()
	assert.Equal(t, 1, inc)
	assert.Zero(t, rep)
}

func TestSchedulerReplaySupersedesIncremental(t *testing.T) {
	var inc, rep int
	s := NewScheduler(func() { inc++ }, func() { rep++ })

	s.MarkDirty()
	s.RequestReplay()
	s.Tick()
	assert.Zero(t, inc)
	assert.Equal(t, 1, rep)

	s.Tick()
	assert.Equal(t, 1, rep)
}

func TestSchedulerDirtyAfterReplayStillPaints(t *testing.T) {
	var inc, rep int
	s := NewScheduler(func() { inc++ }, func() { rep++ })

	s.RequestReplay()
	s.Tick()
	s.MarkDirty()
	s.Tick()
	assert.Equal(t, 1, rep)
	assert.Equal(t, 1, inc)
}
