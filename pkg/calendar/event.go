package calendar

import "time"

// Event is a transient read/write view of a provider-owned calendar event.
// Title is the only field ever written back.
type Event struct {
	ID        string
	Title     string
	Location  string
	StartTime time.Time
	AllDay    bool
}
