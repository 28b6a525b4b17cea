package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsLeapYear covers the simplified rule, including the century case
// where it deliberately departs from the Gregorian calendar.
func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year     uint16
		expected bool
		desc     string
	}{
		{2000, true, "Century year divisible by 400"},
		{2024, true, "Ordinary leap year"},
		{2025, false, "Ordinary common year"},
		{2023, false, "Ordinary common year"},
		{2100, true, "Century years are always leap in this clock"},
		{2096, true, "Last leap year before the offset wraps"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsLeapYear(tt.year), "%d: %s", tt.year, tt.desc)
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		name     string
		day      uint8
		month    uint8
		leap     bool
		expected uint16
	}{
		{"First day", 1, 1, false, 1},
		{"Last day common year", 31, 12, false, 365},
		{"Last day leap year", 31, 12, true, 366},
		{"Leap day", 29, 2, true, 60},
		{"March 1st leap year", 1, 3, true, 61},
		{"March 1st common year", 1, 3, false, 60},
		{"February is not corrected", 28, 2, true, 59},
		{"Day zero", 0, 1, false, 0},
		{"Day 32", 32, 1, false, 0},
		{"Month zero", 1, 0, false, 0},
		{"Month 13", 1, 13, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayOfYear(tt.day, tt.month, tt.leap))
		})
	}
}

func TestDateFromDayOfYear(t *testing.T) {
	tests := []struct {
		name    string
		year    uint16
		ordinal uint16
		month   uint8
		day     uint8
	}{
		{"First day", 2023, 1, 1, 1},
		{"End of January", 2023, 31, 1, 31},
		{"March 1st common year", 2023, 60, 3, 1},
		{"Leap day", 2024, 60, 2, 29},
		{"Last day common year", 2023, 365, 12, 31},
		{"Last day leap year", 2024, 366, 12, 31},
		{"Beyond the year falls back to December 31", 2023, 400, 12, 31},
		{"366 in a common year falls back to December 31", 2023, 366, 12, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, day := DateFromDayOfYear(tt.year, tt.ordinal)
			assert.Equal(t, tt.month, month, "month")
			assert.Equal(t, tt.day, day, "day")
		})
	}
}

// TestCalendar_SupportedRange walks every day from 2000 to 2099 and compares
// the ordinal and weekday arithmetic with the standard library.
func TestCalendar_SupportedRange(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		year := uint16(d.Year())
		month, day := uint8(d.Month()), uint8(d.Day())

		ordinal := DayOfYear(day, month, IsLeapYear(year))
		require.Equal(t, uint16(d.YearDay()), ordinal, "ordinal of %s", d.Format(time.DateOnly))

		gotMonth, gotDay := DateFromDayOfYear(year, ordinal)
		require.Equal(t, month, gotMonth, "round trip month of %s", d.Format(time.DateOnly))
		require.Equal(t, day, gotDay, "round trip day of %s", d.Format(time.DateOnly))

		require.Equal(t, uint8(d.Weekday()), DayOfWeek(year, month, day), "weekday of %s", d.Format(time.DateOnly))
	}
}

func TestDayOfWeek_ReferenceDates(t *testing.T) {
	tests := []struct {
		year     uint16
		month    uint8
		day      uint8
		expected uint8
		desc     string
	}{
		{2000, 1, 1, 6, "Saturday, exercises the 0 -> 6 wrap"},
		{2023, 2, 28, 2, "Tuesday, the startup date"},
		{2024, 2, 29, 4, "Thursday"},
		{2024, 12, 25, 3, "Wednesday"},
		{2025, 3, 1, 6, "Saturday"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DayOfWeek(tt.year, tt.month, tt.day), tt.desc)
	}
}

// TestDayOfWeek_WeekCycle checks that seven consecutive days produce the seven
// weekdays in order, wrapping from Saturday to Sunday.
func TestDayOfWeek_WeekCycle(t *testing.T) {
	s := ClockState{Year: 24, Month: 12, Day: 27} // Friday
	s.WeekDay = DayOfWeek(s.FullYear(), s.Month, s.Day)
	require.Equal(t, uint8(5), s.WeekDay)

	prev := s.WeekDay
	for i := 0; i < 7; i++ {
		s = AdvanceDate(s)
		assert.Equal(t, (prev+1)%7, s.WeekDay, "after %s", s)
		prev = s.WeekDay
	}
	assert.Equal(t, uint8(25), s.Year, "the cycle crosses new year")
}

func TestSpeedTable(t *testing.T) {
	assert.Len(t, microsPerSecond, 4)
	for speed, divisor := range microsPerSecond {
		assert.Equal(t, uint32(1_000_000), uint32(speed)*divisor, "x%d must compress exactly one second", speed)
	}
}
