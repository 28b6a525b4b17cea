package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/engine"
)

// Sink receives a copy of the clock state on every simulated second.
type Sink interface {
	Publish(ctx context.Context, s engine.ClockState) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, s engine.ClockState) error

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, s engine.ClockState) error {
	return f(ctx, s)
}

type namedSink struct {
	name string
	sink Sink
}

// Runner is the host control loop: it owns the clock state and polls it at a
// fixed interval. Only the Run goroutine advances the clock.
type Runner struct {
	ticks    engine.TickSource
	clock    clockwork.Clock
	interval time.Duration
	sinks    []namedSink

	mu    sync.RWMutex
	state engine.ClockState
}

// New returns a runner for state, reading counters from ticks and pacing
// polls with clock.
func New(state engine.ClockState, ticks engine.TickSource, clock clockwork.Clock, interval time.Duration) *Runner {
	return &Runner{
		ticks:    ticks,
		clock:    clock,
		interval: interval,
		state:    state,
	}
}

// AddSink registers a sink. It must be called before Run.
func (r *Runner) AddSink(name string, sink Sink) {
	r.sinks = append(r.sinks, namedSink{name: name, sink: sink})
}

// State returns a copy of the current clock state.
func (r *Runner) State() engine.ClockState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// SetTime lets a synchronization source overwrite the simulated date and time.
func (r *Runner) SetTime(t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := engine.SetTime(r.state, t)
	if err != nil {
		return err
	}
	r.state = next
	return nil
}

// Step polls the clock once and publishes the result on a second edge.
func (r *Runner) Step(ctx context.Context) engine.ClockState {
	r.mu.Lock()
	r.state = engine.Advance(r.state, r.ticks.Micros())
	s := r.state
	r.mu.Unlock()

	if !s.SecondEdge {
		return s
	}

	if s.MinuteEdge {
		slog.Debug(config.MsgMinuteEdge,
			config.LogKeyComponent, config.CompRunner,
			config.LogKeyClock, s.String())
	}
	if s.HourEdge && s.Hour == 0 {
		slog.Info(config.MsgDayChange,
			config.LogKeyComponent, config.CompRunner,
			config.LogKeyClock, s.String(),
			config.LogKeyWeekday, s.WeekDay)
	}

	r.publish(ctx, s)
	return s
}

// publish hands s to every sink, timing each one.
func (r *Runner) publish(ctx context.Context, s engine.ClockState) {
	sw := engine.Stopwatch{Ticks: r.ticks}
	for _, ns := range r.sinks {
		start := sw.Start()
		if err := ns.sink.Publish(ctx, s); err != nil {
			slog.Warn(config.MsgSinkFailed,
				config.LogKeyComponent, config.CompRunner,
				config.LogKeySink, ns.name,
				config.LogKeyError, err)
			continue
		}
		slog.Debug(sw.FormatElapsed(start, ns.name),
			config.LogKeyComponent, config.CompRunner)
	}
}

// Run polls the clock until ctx is cancelled. The initial state is published
// once before the first poll so sinks are never empty.
func (r *Runner) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompRunner)

	s := r.State()
	oneSecond := time.Duration(s.OneSecondMicro) * time.Microsecond
	if r.interval > oneSecond {
		log.Warn(config.MsgPollTooSlow,
			config.LogKeyInterval, r.interval,
			config.LogKeyDivisor, s.OneSecondMicro)
	}

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info(config.MsgRunnerStart,
		config.LogKeyInterval, r.interval,
		config.LogKeySpeed, s.Speed)
	r.publish(ctx, s)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgRunnerStop)
			return
		case <-ticker.Chan():
			r.Step(ctx)
		}
	}
}
