package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
)

// EventStore holds the authoritative in-memory set of calendar events
type EventStore struct {
	mu sync.RWMutex

	// Events in insertion order
	events []*models.Event

	// Map of event ID to its position in events
	byID map[int64]int

	lastID int64
	loc    *time.Location
}

// Option configures an EventStore
type Option func(*EventStore)

// WithLocation sets the time zone used to decide which calendar day an event falls on
func WithLocation(loc *time.Location) Option {
	return func(es *EventStore) {
		if loc != nil {
			es.loc = loc
		}
	}
}

// NewEventStore creates an empty EventStore
func NewEventStore(opts ...Option) *EventStore {
	es := &EventStore{
		byID: make(map[int64]int),
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// validateInput checks the event fields and returns the cleaned input
func validateInput(in models.EventInput) (models.EventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return in, nil
}

// Add validates and stores a new event, assigning it a fresh ID
func (es *EventStore) Add(in models.EventInput) (models.Event, error) {
	in, err := validateInput(in)
	if err != nil {
		return models.Event{}, err
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	es.lastID++
	event := &models.Event{
		ID:          es.lastID,
		Title:       in.Title,
		Description: in.Description,
		OccursAt:    in.OccursAt,
		Notify:      in.Notify,
	}

	es.byID[event.ID] = len(es.events)
	es.events = append(es.events, event)

	return *event, nil
}

// Update replaces the editable fields of an existing event, keeping its ID and position
func (es *EventStore) Update(id int64, in models.EventInput) (models.Event, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	idx, ok := es.byID[id]
	if !ok {
		return models.Event{}, &NotFoundError{ID: id}
	}

	in, err := validateInput(in)
	if err != nil {
		return models.Event{}, err
	}

	event := es.events[idx]
	event.Title = in.Title
	event.Description = in.Description
	event.OccursAt = in.OccursAt
	event.Notify = in.Notify

	return *event, nil
}

// Remove deletes an event. Removing an absent ID fails with NotFoundError.
func (es *EventStore) Remove(id int64) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	idx, ok := es.byID[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	es.events = append(es.events[:idx], es.events[idx+1:]...)
	delete(es.byID, id)

	// Shift the positions of everything after the removed event
	for i := idx; i < len(es.events); i++ {
		es.byID[es.events[i].ID] = i
	}

	return nil
}

// Get returns a copy of the event with the given ID
func (es *EventStore) Get(id int64) (models.Event, error) {
	es.mu.RLock()
	defer es.mu.RUnlock()

	idx, ok := es.byID[id]
	if !ok {
		return models.Event{}, &NotFoundError{ID: id}
	}
	return *es.events[idx], nil
}

// ListByDate returns the events on the same calendar day as date, in insertion order
func (es *EventStore) ListByDate(date time.Time) []models.Event {
	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make([]models.Event, 0)
	for _, event := range es.events {
		if models.SameDay(event.OccursAt, date, es.loc) {
			result = append(result, *event)
		}
	}
	return result
}

// ListBetween returns events with from <= OccursAt < to, sorted by time
func (es *EventStore) ListBetween(from, to time.Time) []models.Event {
	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make([]models.Event, 0)
	for _, event := range es.events {
		if !event.OccursAt.Before(from) && event.OccursAt.Before(to) {
			result = append(result, *event)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccursAt.Before(result[j].OccursAt)
	})
	return result
}

// All returns every event in insertion order
func (es *EventStore) All() []models.Event {
	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make([]models.Event, 0, len(es.events))
	for _, event := range es.events {
		result = append(result, *event)
	}
	return result
}

// Len returns the number of stored events
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.events)
}

// Location returns the time zone used for day boundaries
func (es *EventStore) Location() *time.Location {
	return es.loc
}
