package planner

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/reminder"
	"github.com/borgmon/remindcal/pkg/store"
	"github.com/stretchr/testify/require"
)

type inbox struct {
	mu  sync.Mutex
	got [][2]string
	ch  chan struct{}
}

func newInbox() *inbox {
	return &inbox{ch: make(chan struct{}, 16)}
}

func (b *inbox) deliver(title, description string) error {
	b.mu.Lock()
	b.got = append(b.got, [2]string{title, description})
	b.mu.Unlock()
	b.ch <- struct{}{}
	return nil
}

func (b *inbox) wait(t *testing.T) {
	t.Helper()
	select {
	case <-b.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("reminder was not delivered")
	}
}

func (b *inbox) messages() [][2]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][2]string(nil), b.got...)
}

func newTestPlanner(retract bool) (*Planner, *reminder.Scheduler, *inbox) {
	box := newInbox()
	sched := reminder.New(reminder.SystemClock{})
	p := New(store.NewEventStore(store.WithLocation(time.UTC)), sched, box.deliver, retract)
	return p, sched, box
}

func TestAddWithNotifySchedulesReminder(t *testing.T) {
	p, sched, box := newTestPlanner(true)
	defer sched.Stop()

	// Overdue reminders fire right away
	_, err := p.Add(models.EventInput{Title: "Dentist", Description: "Checkup", OccursAt: time.Now().Add(-time.Minute), Notify: true})
	require.NoError(t, err)

	box.wait(t)
	require.Equal(t, [][2]string{{"Dentist", "Checkup"}}, box.messages())
}

func TestAddWithoutNotifySchedulesNothing(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	_, err := p.Add(models.EventInput{Title: "Quiet", OccursAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	require.Empty(t, sched.Pending())
}

func TestAddValidationErrorSchedulesNothing(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	_, err := p.Add(models.EventInput{Title: "", Description: "x", OccursAt: time.Now(), Notify: true})
	require.ErrorIs(t, err, store.ErrValidation)
	require.Empty(t, sched.Pending())
	require.Empty(t, p.ListByDate(time.Now()))
}

func TestUpdateRetractsOldReminder(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	e, err := p.Add(models.EventInput{Title: "Call", OccursAt: time.Now().Add(time.Hour), Notify: true})
	require.NoError(t, err)
	old := sched.Pending()
	require.Len(t, old, 1)

	_, err = p.Update(e.ID, models.EventInput{Title: "Call (moved)", OccursAt: time.Now().Add(2 * time.Hour), Notify: true})
	require.NoError(t, err)

	pending := sched.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, "Call (moved)", pending[0].Snapshot.Title)

	state, _ := sched.State(old[0].ID)
	require.Equal(t, models.TicketCancelled, state)
}

func TestUpdateKeepsStaleReminderWhenNotRetracting(t *testing.T) {
	p, sched, _ := newTestPlanner(false)
	defer sched.Stop()

	e, err := p.Add(models.EventInput{Title: "Call", OccursAt: time.Now().Add(time.Hour), Notify: true})
	require.NoError(t, err)
	_, err = p.Update(e.ID, models.EventInput{Title: "Call", OccursAt: time.Now().Add(time.Hour), Notify: false})
	require.NoError(t, err)

	require.Len(t, sched.Pending(), 1)
}

func TestRemoveRetractsReminder(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	e, err := p.Add(models.EventInput{Title: "Gone", OccursAt: time.Now().Add(time.Hour), Notify: true})
	require.NoError(t, err)

	require.NoError(t, p.Remove(e.ID))
	require.Empty(t, sched.Pending())
	require.ErrorIs(t, p.Remove(e.ID), store.ErrNotFound)
}

func TestRemoveKeepsReminderWhenNotRetracting(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()
	p.SetRetractOnChange(false)

	e, err := p.Add(models.EventInput{Title: "Stale", OccursAt: time.Now().Add(time.Hour), Notify: true})
	require.NoError(t, err)
	require.NoError(t, p.Remove(e.ID))
	require.Len(t, sched.Pending(), 1)
}

func TestUpdateMissingID(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	_, err := p.Update(12, models.EventInput{Title: "x", OccursAt: time.Now()})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpcomingToday(t *testing.T) {
	p, sched, _ := newTestPlanner(true)
	defer sched.Stop()

	now := time.Now().UTC()
	midnight := models.StartOfDay(now, time.UTC).AddDate(0, 0, 1)
	p.now = func() time.Time { return now }

	_, err := p.Add(models.EventInput{Title: "later today", OccursAt: now.Add(midnight.Sub(now) / 2), Notify: true})
	require.NoError(t, err)
	_, err = p.Add(models.EventInput{Title: "tomorrow", OccursAt: midnight.Add(time.Hour), Notify: true})
	require.NoError(t, err)

	upcoming := p.UpcomingToday(5)
	require.Len(t, upcoming, 1)
	require.Equal(t, "later today", upcoming[0].Snapshot.Title)
}

func TestExportImportDay(t *testing.T) {
	src, srcSched, _ := newTestPlanner(true)
	defer srcSched.Stop()

	day := time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Second)
	_, err := src.Add(models.EventInput{Title: "Party", Description: "Bring cake", OccursAt: day, Notify: true})
	require.NoError(t, err)
	_, err = src.Add(models.EventInput{Title: "Other day", OccursAt: day.AddDate(0, 0, 3)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.ExportDay(&buf, day))

	dst, dstSched, _ := newTestPlanner(true)
	defer dstSched.Stop()

	n, err := dst.Import(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	events := dst.ListByDate(day)
	require.Len(t, events, 1)
	require.Equal(t, "Party", events[0].Title)
	require.Equal(t, "Bring cake", events[0].Description)
	require.True(t, events[0].OccursAt.Equal(day))
	require.True(t, events[0].Notify)

	// Imported events with an alarm get a reminder too
	require.Len(t, dstSched.Pending(), 1)
}
