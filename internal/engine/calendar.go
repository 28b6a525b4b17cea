package engine

// Cumulative days before each month. Index 0 is January; index 12 closes December.
var (
	monthStart     = [13]uint16{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	monthStartLeap = [13]uint16{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

// IsLeapYear reports whether year has a February 29th.
//
// Century years are always leap here. That matches the Gregorian calendar for
// 2000, the only century year the clock can reach before its offset wraps,
// and is wrong for 2100, 2200 and 2300.
func IsLeapYear(year uint16) bool {
	if year%100 == 0 {
		return true
	}
	return year%4 == 0
}

// YearLength returns 366 for leap years and 365 otherwise.
func YearLength(year uint16) uint16 {
	if IsLeapYear(year) {
		return monthStartLeap[12]
	}
	return monthStart[12]
}

// DayOfYear returns the 1-based ordinal of day/month.
// It returns 0 when day is outside 1-31 or month outside 1-12; 0 never
// denotes a real day. Day is not checked against the month length.
func DayOfYear(day, month uint8, leap bool) uint16 {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return 0
	}
	n := monthStart[month-1] + uint16(day)
	if leap && month > 2 {
		n++
	}
	return n
}

// DateFromDayOfYear converts a 1-based ordinal of year back to month and day.
// Ordinals beyond the end of the year yield December 31.
func DateFromDayOfYear(year uint16, ordinal uint16) (month, day uint8) {
	table := &monthStart
	if IsLeapYear(year) {
		table = &monthStartLeap
	}
	for m := 1; m <= 12; m++ {
		if table[m] >= ordinal {
			return uint8(m), uint8(ordinal - table[m-1])
		}
	}
	return 12, 31
}

// DayOfWeek returns the weekday of a date, 0 for Sunday through 6 for Saturday.
//
// The month term floor(2.6*m - 0.2) counts months from March so that the leap
// day falls at the end of the cycle; January and February belong to the
// previous year. The trailing decrement realigns the constants to Sunday=0.
func DayOfWeek(year uint16, month, day uint8) uint8 {
	y := int(year)
	if month < 3 {
		y--
	}
	m := (int(month)+9)%12 + 1

	// float64() stops the compiler from fusing the multiply and subtract.
	monthTerm := int(float64(2.6*float64(m)) - 0.2)

	w := (int(day) + monthTerm - 40 + y + y/4 + 5) % 7
	if w < 0 {
		w += 7
	}

	w--
	if w < 0 {
		w = 6
	}
	return uint8(w)
}
