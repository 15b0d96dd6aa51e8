package google

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func TestGoogleEventsToEvents(t *testing.T) {
	googleEvents := []*gcal.Event{
		{
			Id:       "evt-1",
			Summary:  "Standup",
			Location: "Berlin",
			Status:   "confirmed",
			Start:    &gcal.EventDateTime{DateTime: "2026-08-27T09:30:00+02:00"},
		},
		{
			Id:      "evt-2",
			Summary: "Company holiday",
			Status:  "confirmed",
			Start:   &gcal.EventDateTime{Date: "2026-08-28"},
		},
		{
			// Deletions from incremental fetches carry no usable payload.
			Id:     "evt-3",
			Status: "cancelled",
		},
		{
			Id:      "evt-4",
			Summary: "No start time",
			Status:  "confirmed",
		},
	}

	events := googleEventsToEvents(googleEvents)
	require.Len(t, events, 2)

	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, "Berlin", events[0].Location)
	assert.False(t, events[0].AllDay)
	wantStart, _ := time.Parse(time.RFC3339, "2026-08-27T09:30:00+02:00")
	assert.True(t, events[0].StartTime.Equal(wantStart))

	assert.Equal(t, "evt-2", events[1].ID)
	assert.True(t, events[1].AllDay)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), events[1].StartTime)
}
