package calendar

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/emersion/go-ical"
)

// Decode reads every VEVENT in an iCalendar stream and converts it to an
// event input in loc. Cancelled and untimed events are skipped.
func Decode(r io.Reader, loc *time.Location) ([]models.EventInput, error) {
	if loc == nil {
		loc = time.Local
	}

	decoder := ical.NewDecoder(r)
	inputs := []models.EventInput{}
	stats := &filterStats{}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			stats.totalComponents++
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			normalizeComponentTimezones(comp)
			parsed := parseEvent(comp, loc)

			if shouldImport(parsed, stats) {
				inputs = append(inputs, parsed.input)
			}
		}
	}

	stats.logSummary(len(inputs))

	return inputs, nil
}

// parsedEvent carries the fields needed for filtering alongside the input
type parsedEvent struct {
	input  models.EventInput
	status string
	uid    string
}

func parseEvent(comp *ical.Component, loc *time.Location) parsedEvent {
	parsed := parsedEvent{}

	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		parsed.uid = uidProp.Value
	}

	parsed.input.Title = textProp(comp, ical.PropSummary)
	parsed.input.Description = textProp(comp, ical.PropDescription)

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if t, err := parseDateTimeProperty(startProp, loc); err == nil {
			parsed.input.OccursAt = t
		} else {
			log.Printf("  [IMPORT] Event \"%s\": %v", parsed.input.Title, err)
		}
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		parsed.status = strings.ToUpper(statusProp.Value)
	}

	// A display alarm on the event maps to the notify flag
	for _, child := range comp.Children {
		if child.Name == ical.CompAlarm {
			parsed.input.Notify = true
			break
		}
	}

	return parsed
}

// textProp returns the unescaped value of a TEXT property, or "" when absent
func textProp(comp *ical.Component, name string) string {
	text, err := comp.Props.Text(name)
	if err != nil {
		if prop := comp.Props.Get(name); prop != nil {
			return prop.Value
		}
		return ""
	}
	return text
}

func parseDateTimeProperty(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	dropUnknownTimezone(prop)

	// First try the standard DateTime method, which honours TZID and UTC
	if t, err := prop.DateTime(loc); err == nil {
		return t.In(loc), nil
	}

	// If that fails, try parsing the raw value directly
	value := prop.Value

	formats := []string{
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		"20060102T150405Z",    // UTC format
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
		"20060102",            // DATE value
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}
