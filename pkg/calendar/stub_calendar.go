package calendar

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// StubProvider is an in-memory Provider for tests. Fetch and patch failures
// can be scripted per call or per event id.
type StubProvider struct {
	data map[string]Event

	// NextSyncToken is returned from every successful ListEvents call.
	NextSyncToken string

	// ListErrs is consumed one entry per ListEvents call; a nil entry means
	// the call succeeds.
	ListErrs []error

	// PatchErrs maps event ids to the error their patch should fail with.
	PatchErrs map[string]error

	ListRequests []ListRequest
	Patched      map[string]string
}

func NewStubProvider() *StubProvider {
	return &StubProvider{
		data:      map[string]Event{},
		PatchErrs: map[string]error{},
		Patched:   map[string]string{},
	}
}

func (p *StubProvider) AddEvent(event Event) Event {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	p.data[event.ID] = event
	return event
}

func (p *StubProvider) Event(id string) (Event, bool) {
	event, ok := p.data[id]
	return event, ok
}

func (p *StubProvider) ListEvents(ctx context.Context, req ListRequest) (ListResult, error) {
	p.ListRequests = append(p.ListRequests, req)

	if len(p.ListErrs) > 0 {
		err := p.ListErrs[0]
		p.ListErrs = p.ListErrs[1:]
		if err != nil {
			return ListResult{}, err
		}
	}

	var events []Event
	for _, event := range p.data {
		if req.SyncToken == "" && req.Window != nil {
			if event.StartTime.Before(req.Window.From) || event.StartTime.After(req.Window.To) {
				continue
			}
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	return ListResult{Events: events, NextSyncToken: p.NextSyncToken}, nil
}

func (p *StubProvider) PatchEventTitle(ctx context.Context, eventID string, title string) error {
	if err := p.PatchErrs[eventID]; err != nil {
		return err
	}
	event, ok := p.data[eventID]
	if !ok {
		return errors.New("event with given ID not found")
	}
	event.Title = title
	p.data[eventID] = event
	p.Patched[eventID] = title
	return nil
}
