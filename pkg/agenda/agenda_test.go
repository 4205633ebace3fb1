package agenda

import (
	"errors"
	"testing"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/store"
	"github.com/stretchr/testify/require"
)

func TestSummaryOrdersByTime(t *testing.T) {
	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	events := []models.Event{
		{ID: 1, Title: "Lunch", OccursAt: day.Add(4 * time.Hour)},
		{ID: 2, Title: "Dentist", OccursAt: day.Add(2 * time.Hour), Notify: true},
		{ID: 3, Title: "Standup", OccursAt: day.Add(2 * time.Hour)},
	}

	title, body := Summary(day, events)
	require.Equal(t, "Today's schedule - Sun Jun 1", title)
	require.Equal(t, "10:00  Dentist (reminder)\n10:00  Standup\n12:00  Lunch", body)

	// input slice untouched
	require.Equal(t, int64(1), events[0].ID)
}

func TestSummaryEmptyDay(t *testing.T) {
	_, body := Summary(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), nil)
	require.Equal(t, "No events today.", body)
}

func TestRunReadsTodayFromStore(t *testing.T) {
	loc := time.UTC
	es := store.NewEventStore(store.WithLocation(loc))
	today := time.Date(2025, 6, 1, 7, 0, 0, 0, loc)

	_, err := es.Add(models.EventInput{Title: "Today", OccursAt: today.Add(3 * time.Hour)})
	require.NoError(t, err)
	_, err = es.Add(models.EventInput{Title: "Tomorrow", OccursAt: today.Add(27 * time.Hour)})
	require.NoError(t, err)

	var gotTitle, gotBody string
	b := New(es, loc, func(title, body string) error {
		gotTitle, gotBody = title, body
		return nil
	})
	b.now = func() time.Time { return today }

	b.Run()
	require.Equal(t, "Today's schedule - Sun Jun 1", gotTitle)
	require.Equal(t, "10:00  Today", gotBody)
}

func TestRunSwallowsDeliverError(t *testing.T) {
	b := New(store.NewEventStore(), time.UTC, func(string, string) error {
		return errors.New("no notification daemon")
	})
	require.NotPanics(t, b.Run)
}

func TestStartRejectsBadSpec(t *testing.T) {
	b := New(store.NewEventStore(), time.UTC, func(string, string) error { return nil })
	require.Error(t, b.Start("not a cron spec"))
	require.True(t, b.Next().IsZero())
}

func TestStartSchedulesNextRun(t *testing.T) {
	b := New(store.NewEventStore(), time.UTC, func(string, string) error { return nil })
	require.NoError(t, b.Start("30 7 * * *"))
	defer b.Stop()

	next := b.Next()
	require.False(t, next.IsZero())
	require.Equal(t, 7, next.Hour())
	require.Equal(t, 30, next.Minute())
}
