package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/borgmon/remindcal/pkg/models"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	events := []models.Event{
		{
			ID:          1,
			Title:       "Dentist",
			Description: "Checkup, bring forms\nsecond line",
			OccursAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, seoul),
			Notify:      true,
		},
		{
			ID:       2,
			Title:    "Lunch; with team",
			OccursAt: time.Date(2025, 6, 1, 12, 30, 0, 0, seoul),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, events, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)))
	require.True(t, strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR"))
	require.Contains(t, buf.String(), "BEGIN:VALARM")

	inputs, err := Decode(&buf, seoul)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	require.Equal(t, "Dentist", inputs[0].Title)
	require.Equal(t, "Checkup, bring forms\nsecond line", inputs[0].Description)
	require.True(t, inputs[0].OccursAt.Equal(events[0].OccursAt))
	require.Equal(t, seoul, inputs[0].OccursAt.Location())
	require.True(t, inputs[0].Notify)

	require.Equal(t, "Lunch; with team", inputs[1].Title)
	require.Empty(t, inputs[1].Description)
	require.True(t, inputs[1].OccursAt.Equal(events[1].OccursAt))
	require.False(t, inputs[1].Notify)
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:a@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART;TZID=Tokyo Standard Time:20250601T090000\r\n" +
	"SUMMARY:Windows zone\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:b@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART:20250601T030000Z\r\n" +
	"SUMMARY:Cancelled meeting\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:c@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:d@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART;TZID=Mars/Olympus:20250601T080000\r\n" +
	"SUMMARY:Unknown zone\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:e@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART:20250601T040000Z\r\n" +
	"SUMMARY:   \r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VTODO\r\n" +
	"UID:f@test\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"SUMMARY:Not an event\r\n" +
	"END:VTODO\r\n" +
	"END:VCALENDAR\r\n"

func TestDecodeFiltersAndNormalizes(t *testing.T) {
	inputs, err := Decode(strings.NewReader(sampleICS), seoul)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	// Tokyo and Seoul share an offset
	require.Equal(t, "Windows zone", inputs[0].Title)
	require.True(t, inputs[0].OccursAt.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, seoul)))

	// Unknown TZID falls back to floating local time
	require.Equal(t, "Unknown zone", inputs[1].Title)
	require.True(t, inputs[1].OccursAt.Equal(time.Date(2025, 6, 1, 8, 0, 0, 0, seoul)))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("<!DOCTYPE html><html></html>"), seoul)
	require.Error(t, err)
}
