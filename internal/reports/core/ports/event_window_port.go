package ports

import (
	"context"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
)

// EventQuery selects the events a report aggregates over. From/To are a
// half-open interval [From, To) on the event timestamp; nil means
// unbounded on that side. EventNames optionally narrows the window to a
// set of event names.
type EventQuery struct {
	ProjectKey string
	From       *time.Time
	To         *time.Time
	EventNames []string
}

// EventCursor is a single-pass, timestamp-ascending traversal of the
// selected events. It is not restartable; aggregators consume it in one
// pass and must Close it.
type EventCursor interface {
	Next() bool
	Event() *domain.Event
	Err() error
	Close() error
}

type EventWindowPort interface {
	Fetch(ctx context.Context, q EventQuery) (EventCursor, error)
}
