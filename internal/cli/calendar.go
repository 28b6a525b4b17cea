package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/display"
	"github.com/tartampluch/go-softclock/internal/engine"
)

func newCalendarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Query the clock's calendar arithmetic",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "leap YEAR",
			Short: "Report whether YEAR is a leap year for the clock",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, err := parseUint(args[0], "year", 16)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.OutLeap, year, engine.IsLeapYear(uint16(year)))
				return err
			},
		},
		&cobra.Command{
			Use:   "doy YEAR MONTH DAY",
			Short: "Print the day-of-year ordinal of a date (0 when invalid)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, month, day, err := parseDate(args)
				if err != nil {
					return err
				}
				ordinal := engine.DayOfYear(day, month, engine.IsLeapYear(year))
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.OutDOY, year, month, day, ordinal)
				return err
			},
		},
		&cobra.Command{
			Use:   "date YEAR ORDINAL",
			Short: "Convert a day-of-year ordinal back to a date",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, err := parseUint(args[0], "year", 16)
				if err != nil {
					return err
				}
				ordinal, err := parseUint(args[1], "ordinal", 16)
				if err != nil {
					return err
				}
				month, day := engine.DateFromDayOfYear(uint16(year), uint16(ordinal))
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.OutDate, year, ordinal, year, month, day)
				return err
			},
		},
		&cobra.Command{
			Use:   "weekday YEAR MONTH DAY",
			Short: "Print the weekday of a date (0 = Sunday)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				year, month, day, err := parseDate(args)
				if err != nil {
					return err
				}
				formatter, err := display.NewFormatter(a.settings.Language)
				if err != nil {
					return err
				}
				weekday := engine.DayOfWeek(year, month, day)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.OutWeekday,
					year, month, day, weekday, formatter.WeekdayName(weekday))
				return err
			},
		},
	)
	return cmd
}

// parseDate reads YEAR MONTH DAY arguments. Ranges are left to the engine,
// which answers invalid dates with its own sentinels.
func parseDate(args []string) (year uint16, month, day uint8, err error) {
	y, err := parseUint(args[0], "year", 16)
	if err != nil {
		return 0, 0, 0, err
	}
	m, err := parseUint(args[1], "month", 8)
	if err != nil {
		return 0, 0, 0, err
	}
	d, err := parseUint(args[2], "day", 8)
	if err != nil {
		return 0, 0, 0, err
	}
	return uint16(y), uint8(m), uint8(d), nil
}

func parseUint(value, name string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%s %s=%q: %w", config.ErrArgValue, name, value, err)
	}
	return n, nil
}

func parsePoll(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s --%s=%q: %w", config.ErrFlagValue, config.FlagPoll, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s --%s=%q: %s", config.ErrFlagValue, config.FlagPoll, value, config.ErrPollInterval)
	}
	return d, nil
}
