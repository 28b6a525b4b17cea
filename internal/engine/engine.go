package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-softclock/internal/config"
)

// Version identifies the clock core behaviour, independently of the build version.
const Version = "2.1.0"

// microsPerSecond maps each supported speed multiplier to the number of
// micros that make up one simulated second.
var microsPerSecond = map[uint8]uint32{
	1:   1_000_000,
	10:  100_000,
	50:  20_000,
	100: 10_000,
}

// Startup defaults applied by Initialize.
const (
	defaultHour   = 23
	defaultMinute = 30
	defaultYear   = 23 // 2023
	defaultMonth  = 2
	defaultDay    = 28
)

// ErrYearOutOfRange is returned by SetTime for years the offset cannot hold.
var ErrYearOutOfRange = errors.New(config.ErrYearRange)

// SpeedDivisor returns the micros per simulated second for speed, and the
// speed actually applied. Unsupported multipliers run at x1.
func SpeedDivisor(speed uint8) (applied uint8, divisor uint32) {
	if d, ok := microsPerSecond[speed]; ok {
		return speed, d
	}
	return 1, microsPerSecond[1]
}

// Initialize returns a freshly reset clock running at speed.
// Nothing from the previous state survives, not even the counters.
func Initialize(_ ClockState, speed uint8) ClockState {
	applied, divisor := SpeedDivisor(speed)

	next := ClockState{
		Hour:           defaultHour,
		Minute:         defaultMinute,
		Second:         0,
		Year:           defaultYear,
		Month:          defaultMonth,
		Day:            defaultDay,
		Speed:          applied,
		OneSecondMicro: divisor,
		NTPBeginOnce:   true,
		IsTimeSet:      false,
	}
	next.WeekDay = DayOfWeek(next.FullYear(), next.Month, next.Day)
	return next
}

// Advance performs one poll of the clock with the current micros counter.
//
// At most one simulated second is counted per call, and the boundary moves by
// exactly one divisor so the phase is kept when polls are late. Callers must
// poll at least once per OneSecondMicro or seconds are lost.
func Advance(s ClockState, nowMicros uint32) ClockState {
	s.LastPoll = nowMicros

	// Unsigned subtraction survives the counter wrapping around.
	if nowMicros-s.LastSecond >= s.OneSecondMicro {
		s.LastSecond += s.OneSecondMicro
		s.Second++
		s.SecondEdge = true
		s.SecFlip = !s.SecFlip
		s.MinuteEdge = false
		s.HourEdge = false
	} else {
		s.SecondEdge = false
		s.MinuteEdge = false
		s.HourEdge = false
	}

	if s.Second == 60 {
		s.Second = 0
		s.Minute++
		s.MinuteEdge = true
	}

	if s.Minute == 60 {
		s.Minute = 0
		s.Hour++
		s.HourEdge = true
	}

	if s.Hour == 24 {
		s.Hour = 0
		s = AdvanceDate(s)
	}

	return s
}

// AdvanceDate moves the calendar to the next day, rolling the year when the
// current one is exhausted. The weekday is recomputed from the new date.
func AdvanceDate(s ClockState) ClockState {
	year := s.FullYear()
	ordinal := DayOfYear(s.Day, s.Month, IsLeapYear(year)) + 1

	if ordinal > YearLength(year) {
		ordinal = 1
		s.Year = (s.Year + 1) % 100
	}

	return SetDateFromDayOfYear(s, ordinal)
}

// SetDateFromDayOfYear sets month, day and weekday from a 1-based ordinal in
// the state's current year.
func SetDateFromDayOfYear(s ClockState, ordinal uint16) ClockState {
	s.Month, s.Day = DateFromDayOfYear(s.FullYear(), ordinal)
	s.WeekDay = DayOfWeek(s.FullYear(), s.Month, s.Day)
	return s
}

// SetTime overwrites the time of day and date with t, as a time
// synchronization source would. The counters and speed are left untouched.
func SetTime(s ClockState, t time.Time) (ClockState, error) {
	year := t.Year()
	if year < EpochYear || year > EpochYear+99 {
		return s, fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}

	s.Hour, s.Minute, s.Second = uint8(t.Hour()), uint8(t.Minute()), uint8(t.Second())
	s.Year = uint8(year - EpochYear)
	s.Month = uint8(t.Month())
	s.Day = uint8(t.Day())
	s.WeekDay = DayOfWeek(s.FullYear(), s.Month, s.Day)
	s.IsTimeSet = true
	s.NTPBeginOnce = false
	return s, nil
}
