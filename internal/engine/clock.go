package engine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// TickSource abstracts the free-running counters of the host.
// Both counters are 32 bits wide and wrap around; consumers must only ever
// subtract two readings.
type TickSource interface {
	Micros() uint32
	Millis() uint32
}

// HostTicks implements TickSource on top of a clockwork.Clock.
// Counters start at zero when the HostTicks is created.
type HostTicks struct {
	clock clockwork.Clock
	boot  time.Time
}

// NewHostTicks starts counting from the current time of c.
// Pass clockwork.NewRealClock() in production and a fake clock in tests.
func NewHostTicks(c clockwork.Clock) *HostTicks {
	return &HostTicks{clock: c, boot: c.Now()}
}

// Micros returns the microseconds elapsed since boot, modulo 2^32.
func (h *HostTicks) Micros() uint32 {
	return uint32(h.clock.Since(h.boot).Microseconds())
}

// Millis returns the milliseconds elapsed since boot, modulo 2^32.
func (h *HostTicks) Millis() uint32 {
	return uint32(h.clock.Since(h.boot).Milliseconds())
}
