package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/store"
)

const (
	formDateLayout = "2006-01-02"
	formTimeLayout = "15:04"
)

// eventForm holds the raw text of the add/edit dialog
type eventForm struct {
	Title       string
	Description string
	Date        string
	Time        string
	Notify      bool
}

// newFormForDate pre-fills the dialog for a new event on date, at the next full hour
func newFormForDate(date, now time.Time) eventForm {
	next := time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, now.Location())
	if next.Day() != now.Day() {
		next = next.Add(-time.Hour)
	}
	return eventForm{
		Date: date.Format(formDateLayout),
		Time: next.Format(formTimeLayout),
	}
}

// formFromEvent pre-fills the dialog with an existing event
func formFromEvent(e models.Event) eventForm {
	return eventForm{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.OccursAt.Format(formDateLayout),
		Time:        e.OccursAt.Format(formTimeLayout),
		Notify:      e.Notify,
	}
}

// toInput parses the date and time fields in loc. Title validation is left to the store.
func (f eventForm) toInput(loc *time.Location) (models.EventInput, error) {
	day, err := time.ParseInLocation(formDateLayout, strings.TrimSpace(f.Date), loc)
	if err != nil {
		return models.EventInput{}, &store.ValidationError{Field: "date", Reason: fmt.Sprintf("expected YYYY-MM-DD, got %q", f.Date)}
	}

	hour, minute, err := models.ParseClock(f.Time)
	if err != nil {
		return models.EventInput{}, &store.ValidationError{Field: "time", Reason: fmt.Sprintf("expected HH:MM, got %q", f.Time)}
	}

	return models.EventInput{
		Title:       f.Title,
		Description: f.Description,
		OccursAt:    time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc),
		Notify:      f.Notify,
	}, nil
}
