package engine

import (
	"fmt"
	"io"

	"github.com/tartampluch/go-softclock/internal/config"
)

// Stopwatch measures short intervals in milliseconds from a TickSource.
type Stopwatch struct {
	Ticks TickSource
}

// Start returns the timestamp to pass to Elapsed later.
func (sw Stopwatch) Start() uint32 {
	return sw.Ticks.Millis()
}

// Elapsed returns the milliseconds since start, correct across one counter wrap.
func (sw Stopwatch) Elapsed(start uint32) uint32 {
	return sw.Ticks.Millis() - start
}

// FormatElapsed returns "<label> elapsed time=<n>mS. ".
func (sw Stopwatch) FormatElapsed(start uint32, label string) string {
	return fmt.Sprintf(config.MsgElapsedFormat, label, sw.Elapsed(start))
}

// PrintElapsed writes the FormatElapsed line to w.
func (sw Stopwatch) PrintElapsed(w io.Writer, start uint32, label string) error {
	_, err := io.WriteString(w, sw.FormatElapsed(start, label))
	return err
}
