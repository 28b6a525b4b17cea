package runner_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-softclock/internal/engine"
	"github.com/tartampluch/go-softclock/internal/runner"
)

// recorder is a Sink keeping every published state.
type recorder struct {
	mu     sync.Mutex
	states []engine.ClockState
}

func (r *recorder) Publish(_ context.Context, s engine.ClockState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func newFakeRunner(speed uint8) (*runner.Runner, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	state := engine.Initialize(engine.ClockState{}, speed)
	return runner.New(state, engine.NewHostTicks(fc), fc, time.Millisecond), fc
}

func TestStep_PublishesOnSecondEdge(t *testing.T) {
	r, fc := newFakeRunner(100)
	rec := &recorder{}
	r.AddSink("recorder", rec)

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		fc.Advance(time.Millisecond)
		r.Step(ctx)
	}

	// 100ms at x100 is ten simulated seconds.
	assert.Equal(t, 10, rec.count())
	assert.Equal(t, "2023-02-28 23:30:10", r.State().String())
	for _, s := range rec.states {
		assert.True(t, s.SecondEdge, "Only edge states are published")
	}
}

func TestStep_SinkFailureDoesNotStopOthers(t *testing.T) {
	r, fc := newFakeRunner(1)
	rec := &recorder{}
	r.AddSink("broken", runner.SinkFunc(func(context.Context, engine.ClockState) error {
		return errors.New("disk full")
	}))
	r.AddSink("recorder", rec)

	fc.Advance(time.Second)
	s := r.Step(context.Background())

	assert.True(t, s.SecondEdge)
	assert.Equal(t, 1, rec.count())
}

func TestStep_DayRollover(t *testing.T) {
	r, fc := newFakeRunner(1)
	require.NoError(t, r.SetTime(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)))

	fc.Advance(time.Second)
	s := r.Step(context.Background())

	assert.Equal(t, "2025-01-01 00:00:00", s.String())
	assert.True(t, s.HourEdge)
	assert.True(t, s.IsTimeSet)
}

func TestSetTime_Rejected(t *testing.T) {
	r, _ := newFakeRunner(1)
	before := r.State()

	err := r.SetTime(time.Date(2150, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, engine.ErrYearOutOfRange)
	assert.Equal(t, before, r.State())
}

// TestRun_Lifecycle drives the loop with the fake clock's ticker and stops it
// through the context.
func TestRun_Lifecycle(t *testing.T) {
	r, fc := newFakeRunner(100)
	rec := &recorder{}
	r.AddSink("recorder", rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.NoError(t, fc.BlockUntilContext(ctx, 1), "Run must register its ticker")
	require.Eventually(t, func() bool { return rec.count() >= 1 }, time.Second, time.Millisecond,
		"Initial state is published before the first tick")

	require.Eventually(t, func() bool {
		fc.Advance(time.Millisecond)
		return rec.count() >= 3
	}, 2*time.Second, time.Millisecond, "Ticks advance the clock")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancellation")
	}
	assert.Greater(t, r.State().Second, uint8(0))
}
