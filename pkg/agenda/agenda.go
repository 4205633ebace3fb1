// Package agenda sends a once-a-day notification summarising the day's events.
package agenda

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/robfig/cron/v3"
)

// EventLister is the part of the event store the agenda reads
type EventLister interface {
	ListByDate(date time.Time) []models.Event
}

// Briefing runs the daily agenda job
type Briefing struct {
	cron     *cron.Cron
	events   EventLister
	deliver  func(title, body string) error
	now      func() time.Time
	schedule cron.Schedule
}

// New creates a Briefing evaluated in loc
func New(events EventLister, loc *time.Location, deliver func(title, body string) error) *Briefing {
	if loc == nil {
		loc = time.Local
	}
	return &Briefing{
		cron:    cron.New(cron.WithLocation(loc)),
		events:  events,
		deliver: deliver,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// Start registers the job for spec (standard 5-field cron) and starts the runner
func (b *Briefing) Start(spec string) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("add agenda job: %w", err)
	}
	b.schedule = schedule
	b.cron.Schedule(schedule, cron.FuncJob(b.Run))
	b.cron.Start()
	log.Printf("[AGENDA] Daily agenda scheduled (%s)", spec)
	return nil
}

// Stop halts the runner and waits for a running job to finish
func (b *Briefing) Stop() {
	ctx := b.cron.Stop()
	<-ctx.Done()
	log.Println("[AGENDA] Daily agenda stopped")
}

// Next returns when the job runs next, zero if not started
func (b *Briefing) Next() time.Time {
	if b.schedule == nil {
		return time.Time{}
	}
	return b.schedule.Next(b.now())
}

// Run sends today's agenda immediately
func (b *Briefing) Run() {
	today := b.now()
	title, body := Summary(today, b.events.ListByDate(today))
	if err := b.deliver(title, body); err != nil {
		log.Printf("[AGENDA] Error sending agenda: %v", err)
	}
}

// Summary formats the notification for a day's events, ordered by time
func Summary(day time.Time, events []models.Event) (string, string) {
	title := "Today's schedule - " + day.Format("Mon Jan 2")
	if len(events) == 0 {
		return title, "No events today."
	}

	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccursAt.Before(sorted[j].OccursAt)
	})

	var sb strings.Builder
	for i, e := range sorted {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.OccursAt.Format("15:04"))
		sb.WriteString("  ")
		sb.WriteString(e.Title)
		if e.Notify {
			sb.WriteString(" (reminder)")
		}
	}
	return title, sb.String()
}
