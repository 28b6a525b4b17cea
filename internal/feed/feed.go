package feed

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-softclock/internal/config"
	"github.com/tartampluch/go-softclock/internal/engine"
)

// Render encodes the simulated date of s as an iCalendar document holding a
// single all-day event. summary becomes the event title; callers usually pass
// the localized status line.
func Render(s engine.ClockState, summary string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)

	// The simulated clock has no zone; its instant is stamped as UTC.
	instant := s.Time()

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID,
		fmt.Sprintf(config.FormatUID, instant.Format(config.FormatUIDDate), config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(instant)
	event.Props.Set(dtStart)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(instant)
	event.Props.Set(dtStamp)

	event.Props.SetText(config.PropSpeed, strconv.Itoa(int(s.Speed)))
	event.Props.SetText(config.PropTimeSet, strconv.FormatBool(s.IsTimeSet))

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
