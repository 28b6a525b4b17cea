package engine

import (
	"fmt"
	"time"
)

// EpochYear is the calendar year represented by a Year offset of 0.
const EpochYear = 2000

// ClockState is the complete software clock: time of day, calendar date,
// acceleration settings and the per-poll edge flags.
// It is a plain value; every operation in this package takes one and returns
// the next one, so the caller owns the only copy that matters.
type ClockState struct {
	// Time of day.
	Hour   uint8 // 0-23
	Minute uint8 // 0-59
	Second uint8 // 0-59

	// Edge flags are true for exactly one poll after the matching rollover.
	HourEdge   bool
	MinuteEdge bool
	SecondEdge bool

	// SecFlip toggles on every second edge (blink source for a colon, a LED...).
	SecFlip bool

	// NTPBeginOnce is set at startup so a sync collaborator configures itself once.
	NTPBeginOnce bool

	// IsTimeSet reports that an external source has written the time.
	IsTimeSet bool

	// LastPoll is the micros value seen by the latest Advance call.
	LastPoll uint32

	// LastSecond is the micros value of the latest full-second boundary.
	LastSecond uint32

	// OneSecondMicro is the number of micros consumed by one simulated second.
	OneSecondMicro uint32

	// Calendar date.
	Year    uint8 // offset from EpochYear, 0-99
	Month   uint8 // 1-12
	Day     uint8 // 1-31
	WeekDay uint8 // 0=Sunday .. 6=Saturday

	// Speed is the acceleration factor, one of 1, 10, 50, 100.
	Speed uint8
}

// FullYear returns the four-digit calendar year.
func (s ClockState) FullYear() uint16 {
	return EpochYear + uint16(s.Year)
}

// Time converts the simulated instant to a UTC time.Time.
func (s ClockState) Time() time.Time {
	return time.Date(int(s.FullYear()), time.Month(s.Month), int(s.Day),
		int(s.Hour), int(s.Minute), int(s.Second), 0, time.UTC)
}

// String renders the state as "2006-01-02 15:04:05".
func (s ClockState) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		s.FullYear(), s.Month, s.Day, s.Hour, s.Minute, s.Second)
}
