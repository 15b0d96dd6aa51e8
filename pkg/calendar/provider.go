package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrTokenInvalidated signals that the provider no longer accepts the sync
// token that was passed in (Google reports this as HTTP 410). The caller must
// drop the token and run a full range sync.
var ErrTokenInvalidated = errors.New("sync token invalidated by provider")

// Window bounds a full/range fetch.
type Window struct {
	From time.Time
	To   time.Time
}

// ListRequest describes one fetch. Window and SyncToken are mutually
// exclusive: a token-based incremental fetch carries no explicit bounds.
type ListRequest struct {
	Window    *Window
	SyncToken string
}

type ListResult struct {
	Events        []Event
	NextSyncToken string
}

// Provider is the calendar collaborator consumed by the sync engine.
type Provider interface {
	ListEvents(ctx context.Context, req ListRequest) (ListResult, error)
	PatchEventTitle(ctx context.Context, eventID string, title string) error
}
