package main

import (
	"testing"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/borgmon/remindcal/pkg/reminder"
	"github.com/borgmon/remindcal/pkg/store"
	"github.com/stretchr/testify/require"
)

func TestSubmitFormCommitsParsedInput(t *testing.T) {
	s := store.NewEventStore(store.WithLocation(time.UTC))

	e, err := submitForm(eventForm{Title: " Standup ", Date: "2025-06-02", Time: "09:15", Notify: true}, time.UTC, s.Add)
	require.NoError(t, err)
	require.Equal(t, "Standup", e.Title)
	require.Equal(t, time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC), e.OccursAt)
	require.True(t, e.Notify)
	require.Equal(t, 1, s.Len())
}

func TestSubmitFormSkipsCommitOnParseError(t *testing.T) {
	called := false
	commit := func(models.EventInput) (models.Event, error) {
		called = true
		return models.Event{}, nil
	}

	_, err := submitForm(eventForm{Title: "x", Date: "tomorrow", Time: "09:00"}, time.UTC, commit)
	require.ErrorIs(t, err, store.ErrValidation)
	require.False(t, called)
}

func TestSubmitFormReturnsStoreErrors(t *testing.T) {
	s := store.NewEventStore(store.WithLocation(time.UTC))
	update := func(in models.EventInput) (models.Event, error) {
		return s.Update(42, in)
	}

	_, err := submitForm(eventForm{Title: "x", Date: "2025-06-02", Time: "09:00"}, time.UTC, update)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", truncateString("short", 10))
	require.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	require.Equal(t, "ééé...", truncateString("éééééééé", 6))
}

func TestTrayLabel(t *testing.T) {
	tk := reminder.Ticket{
		Snapshot: models.Snapshot{Title: "Call Mum"},
		FireAt:   time.Date(2025, 6, 2, 14, 5, 0, 0, time.UTC),
	}
	require.Equal(t, "  2:05 PM - Call Mum", trayLabel(tk))
}
