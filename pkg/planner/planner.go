// Package planner ties the event store to the reminder scheduler: every
// committed event with Notify set gets a reminder ticket.
package planner

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/borgmon/remindcal/pkg/calendar"
	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/reminder"
	"github.com/borgmon/remindcal/pkg/store"
)

// Planner is the operation surface used by the windows
type Planner struct {
	events    *store.EventStore
	reminders *reminder.Scheduler
	deliver   reminder.DeliverFunc
	now       func() time.Time

	mu      sync.RWMutex
	retract bool
}

// New creates a Planner. retract selects whether editing or deleting an event
// cancels reminders already scheduled for it.
func New(events *store.EventStore, reminders *reminder.Scheduler, deliver reminder.DeliverFunc, retract bool) *Planner {
	return &Planner{
		events:    events,
		reminders: reminders,
		deliver:   deliver,
		now:       time.Now,
		retract:   retract,
	}
}

// SetRetractOnChange updates the retraction policy
func (p *Planner) SetRetractOnChange(retract bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retract = retract
}

func (p *Planner) retractOnChange() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.retract
}

// Add stores a new event and schedules its reminder when Notify is set
func (p *Planner) Add(in models.EventInput) (models.Event, error) {
	event, err := p.events.Add(in)
	if err != nil {
		return models.Event{}, err
	}
	p.scheduleIfNotify(event)
	return event, nil
}

// Update edits an event and schedules a reminder for the new values when Notify is set
func (p *Planner) Update(id int64, in models.EventInput) (models.Event, error) {
	event, err := p.events.Update(id, in)
	if err != nil {
		logNotFound("update", err)
		return models.Event{}, err
	}
	if p.retractOnChange() {
		p.reminders.CancelEvent(id)
	}
	p.scheduleIfNotify(event)
	return event, nil
}

// Remove deletes an event
func (p *Planner) Remove(id int64) error {
	if err := p.events.Remove(id); err != nil {
		logNotFound("remove", err)
		return err
	}
	if p.retractOnChange() {
		p.reminders.CancelEvent(id)
	}
	return nil
}

// Get returns one event
func (p *Planner) Get(id int64) (models.Event, error) {
	return p.events.Get(id)
}

// ListByDate returns the events on date's calendar day, in insertion order
func (p *Planner) ListByDate(date time.Time) []models.Event {
	return p.events.ListByDate(date)
}

// UpcomingToday returns pending reminders firing between now and midnight
func (p *Planner) UpcomingToday(limit int) []reminder.Ticket {
	now := p.now()
	end := models.StartOfDay(now, p.events.Location()).AddDate(0, 0, 1)

	result := []reminder.Ticket{}
	for _, tk := range p.reminders.Pending() {
		if tk.FireAt.Before(now) || !tk.FireAt.Before(end) {
			continue
		}
		result = append(result, tk)
		if len(result) >= limit {
			break
		}
	}
	return result
}

// Import adds every event in an iCalendar document and returns how many were added
func (p *Planner) Import(r io.Reader) (int, error) {
	inputs, err := calendar.Decode(r, p.events.Location())
	if err != nil {
		return 0, err
	}

	added := 0
	for _, in := range inputs {
		if _, err := p.Add(in); err != nil {
			log.Printf("[IMPORT] Skipping \"%s\": %v", in.Title, err)
			continue
		}
		added++
	}
	log.Printf("[IMPORT] Imported %d of %d event(s)", added, len(inputs))
	return added, nil
}

// ExportDay writes the events of date's calendar day as iCalendar
func (p *Planner) ExportDay(w io.Writer, date time.Time) error {
	return calendar.Encode(w, p.events.ListByDate(date), p.now())
}

// ExportAll writes every event as iCalendar
func (p *Planner) ExportAll(w io.Writer) error {
	return calendar.Encode(w, p.events.All(), p.now())
}

func (p *Planner) scheduleIfNotify(event models.Event) {
	if !event.Notify {
		return
	}
	p.reminders.Schedule(event.Snapshot(), event.OccursAt, p.deliver)
}

// logNotFound records store/UI desynchronisation, which normal use should never hit
func logNotFound(op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("[WARN] %s: %v", op, err)
	}
}
