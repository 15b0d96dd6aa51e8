package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/forecal/forecal/pkg/calendar"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// Calendar adapts the Google Calendar v3 API to the calendar.Provider port.
type Calendar struct {
	service    *gcal.Service
	calendarId string
}

func NewCalendar(service *gcal.Service, calendarId string) *Calendar {
	return &Calendar{
		service:    service,
		calendarId: calendarId,
	}
}

// ListEvents fetches either a bounded range or the incremental changes for a
// sync token. The API forbids combining a sync token with time bounds or
// orderBy, so the two request shapes are built separately.
func (c *Calendar) ListEvents(ctx context.Context, req calendar.ListRequest) (calendar.ListResult, error) {
	var result calendar.ListResult
	pageToken := ""

	for {
		call := c.service.Events.List(c.calendarId).
			SingleEvents(true).
			Context(ctx)

		if req.SyncToken != "" {
			call = call.SyncToken(req.SyncToken)
		} else if req.Window != nil {
			call = call.
				TimeMin(req.Window.From.Format(time.RFC3339)).
				TimeMax(req.Window.To.Format(time.RFC3339)).
				OrderBy("startTime")
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		googleEvents, err := call.Do()
		if err != nil {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusGone {
				log.Debugf("Google rejected sync token for calendar %s", c.calendarId)
				return calendar.ListResult{}, calendar.ErrTokenInvalidated
			}
			err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
			log.Error(err)
			return calendar.ListResult{}, err
		}

		result.Events = append(result.Events, googleEventsToEvents(googleEvents.Items)...)

		if googleEvents.NextPageToken == "" {
			result.NextSyncToken = googleEvents.NextSyncToken
			return result, nil
		}
		pageToken = googleEvents.NextPageToken
	}
}

func (c *Calendar) PatchEventTitle(ctx context.Context, eventID string, title string) error {
	_, err := c.service.Events.Patch(c.calendarId, eventID, &gcal.Event{
		Summary: title,
	}).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to patch event %s in Google Calendar: %v", eventID, err)
		log.Error(err)
		return err
	}
	return nil
}

func googleEventsToEvents(googleEvents []*gcal.Event) []calendar.Event {
	events := make([]calendar.Event, 0, len(googleEvents))
	for _, item := range googleEvents {
		// Incremental fetches include deletions; there is no title to rewrite.
		if item.Status == "cancelled" {
			continue
		}

		var startTime time.Time
		allDay := false
		if item.Start != nil && item.Start.DateTime != "" {
			startTime, _ = time.Parse(time.RFC3339, item.Start.DateTime)
		} else if item.Start != nil && item.Start.Date != "" {
			startTime, _ = time.Parse("2006-01-02", item.Start.Date)
			allDay = true
		} else {
			log.Warnf("found calendar event without start time - ignoring: %s (%s)", item.Summary, item.Id)
			continue
		}

		events = append(events, calendar.Event{
			ID:        item.Id,
			Title:     item.Summary,
			Location:  item.Location,
			StartTime: startTime,
			AllDay:    allDay,
		})
	}
	return events
}
