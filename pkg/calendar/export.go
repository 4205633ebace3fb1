package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/emersion/go-ical"
)

const prodID = "-//borgmon//remindcal//EN"

// Encode writes events as a single VCALENDAR. Times are written in UTC and
// events with Notify set carry a display alarm at their start.
func Encode(w io.Writer, events []models.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	for _, event := range events {
		cal.Children = append(cal.Children, eventComponent(event, now))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func eventComponent(event models.Event, now time.Time) *ical.Component {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, fmt.Sprintf("%d-%d@remindcal", event.ID, event.OccursAt.Unix()))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeStart, event.OccursAt.UTC())
	vevent.Props.SetText(ical.PropSummary, event.Title)
	if event.Description != "" {
		vevent.Props.SetText(ical.PropDescription, event.Description)
	}

	if event.Notify {
		alarm := ical.NewComponent(ical.CompAlarm)
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, event.Title)
		trigger := ical.NewProp(ical.PropTrigger)
		trigger.Value = "PT0S"
		alarm.Props.Set(trigger)
		vevent.Children = append(vevent.Children, alarm)
	}

	return vevent.Component
}
