package models

import "time"

// Event represents a calendar entry owned by the event store
type Event struct {
	ID          int64     // Assigned by the store on creation, never changes
	Title       string    // Display title (never empty once stored)
	Description string    // Free-form description
	OccursAt    time.Time // Local wall-clock time of the event
	Notify      bool      // Fire a reminder at OccursAt
}

// EventInput holds the user-editable fields of an event
type EventInput struct {
	Title       string
	Description string
	OccursAt    time.Time
	Notify      bool
}

// Input returns the editable fields of the event
func (e Event) Input() EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		OccursAt:    e.OccursAt,
		Notify:      e.Notify,
	}
}

// Snapshot copies the fields a reminder needs at registration time
func (e Event) Snapshot() Snapshot {
	return Snapshot{
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		OccursAt:    e.OccursAt,
	}
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
