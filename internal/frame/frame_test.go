package frame

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsOnNextStep(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.RequestFrame(func() {
		order = append(order, 1)
		s.RequestFrame(func() { order = append(order, 3) })
	})
	s.RequestFrame(func() { order = append(order, 2) })

	s.Step()
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, s.Pending())

	s.Step()
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.RequestFrame(func() { ran = true })
	s.CancelFrame(id)
	s.Step()
	assert.False(t, ran)
}

func TestLoopRepeatsWhileActive(t *testing.T) {
	s := NewScheduler()
	l := NewLoop(s, func() {})
	l.Start()
	for i := 0; i < 5; i++ {
		s.Step()
	}
	assert.Equal(t, uint64(5), l.Ticks())
	assert.Equal(t, 1, s.Pending())
}

func TestLoopStartIsIdempotent(t *testing.T) {
	s := NewScheduler()
	l := NewLoop(s, func() {})
	l.Start()
	l.Start()
	assert.Equal(t, 1, s.Pending())

	s.Step()
	l.Start()
	assert.Equal(t, 1, s.Pending())
}

func TestLoopStopRunsInFlightFrameOnce(t *testing.T) {
	s := NewScheduler()
	l := NewLoop(s, func() {})
	l.Start()
	s.Step()
	l.Stop()

	s.Step()
	assert.Equal(t, uint64(2), l.Ticks(), "frame already scheduled still runs")
	assert.Equal(t, 0, s.Pending())

	s.Step()
	assert.Equal(t, uint64(2), l.Ticks())
}

func TestLoopRestartBeforeInFlightFrame(t *testing.T) {
	s := NewScheduler()
	l := NewLoop(s, func() {})
	l.Start()
	l.Stop()
	l.Start()
	assert.Equal(t, 1, s.Pending(), "restart must not double the loop")

	s.Step()
	assert.Equal(t, 1, s.Pending())
}

func TestLoopStopFromTask(t *testing.T) {
	s := NewScheduler()
	var l *Loop
	l = NewLoop(s, func() { l.Stop() })
	l.Start()
	s.Step()
	assert.Equal(t, 0, s.Pending())
}

func TestRunStepsUntilCancelled(t *testing.T) {
	s := NewScheduler()
	var ticks, pumps atomic.Int32
	var l *Loop
	l = NewLoop(s, func() { ticks.Add(1) })
	s.RequestFrame(l.Start)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Run(ctx, s, time.Millisecond, func() { pumps.Add(1) })
		close(done)
	}()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.GreaterOrEqual(t, pumps.Load(), ticks.Load())
}

func TestLoopCancelDropsInFlightFrame(t *testing.T) {
	s := NewScheduler()
	l := NewLoop(s, func() {})
	l.Start()
	s.Step()
	assert.Equal(t, 1, s.Pending())

	l.Cancel()
	assert.False(t, l.Active())
	assert.Zero(t, s.Pending())
	s.Step()
	assert.Equal(t, uint64(1), l.Ticks())

	l.Start()
	assert.Equal(t, 1, s.Pending(), "restart schedules a fresh frame")
	s.Step()
	assert.Equal(t, uint64(2), l.Ticks())
}
