package postgres

import (
	"context"
	"fmt"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"

	"github.com/lib/pq"
)

// EventWindow reads report events from Postgres as a single ordered
// cursor. Rows without an event timestamp are filtered out at the
// store, so aggregators never see them.
type EventWindow struct {
	db DB
}

func NewEventWindow(db DB) *EventWindow {
	return &EventWindow{db: db}
}

var _ ports.EventWindowPort = (*EventWindow)(nil)

func (w *EventWindow) Fetch(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
	query := `
SELECT
    event_name,
    COALESCE(user_id, ''),
    COALESCE(anonymous_id, ''),
    event_time
FROM events
WHERE project_key = $1 AND event_time IS NOT NULL`
	args := []any{q.ProjectKey}
	argIndex := 2

	// Half-open window [from, to).
	if q.From != nil {
		query += fmt.Sprintf(" AND event_time >= $%d", argIndex)
		args = append(args, q.From.UTC())
		argIndex++
	}
	if q.To != nil {
		query += fmt.Sprintf(" AND event_time < $%d", argIndex)
		args = append(args, q.To.UTC())
		argIndex++
	}
	if len(q.EventNames) > 0 {
		query += fmt.Sprintf(" AND event_name = ANY($%d)", argIndex)
		args = append(args, pq.Array(q.EventNames))
		argIndex++
	}

	query += " ORDER BY event_time ASC"

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &eventCursor{rows: rows}, nil
}

type eventCursor struct {
	rows RowScanner
	cur  domain.Event
	err  error
}

func (c *eventCursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		return false
	}
	var e domain.Event
	var ts time.Time
	if err := c.rows.Scan(&e.EventName, &e.UserID, &e.AnonymousID, &ts); err != nil {
		c.err = err
		return false
	}
	e.Timestamp = ts.UTC()
	c.cur = e
	return true
}

func (c *eventCursor) Event() *domain.Event {
	return &c.cur
}

func (c *eventCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *eventCursor) Close() error {
	return c.rows.Close()
}
