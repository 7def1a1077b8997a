package postgres

import (
	"context"
	"encoding/json"

	"analytics-reports-service/internal/events/core/domain"
	"analytics-reports-service/internal/events/core/ports"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

const insertEventSQL = `
INSERT INTO events (
    project_key,
    event_name,
    event_time,
    received_at,
    anonymous_id,
    user_id,
    session_id,
    properties
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7, $8
);
`

func (r *EventRepository) InsertEvents(ctx context.Context, events []*domain.Event) (int, error) {
	inserted := 0
	for _, e := range events {
		propertiesJSON, err := json.Marshal(e.Properties)
		if err != nil {
			return inserted, err
		}

		_, err = r.db.ExecContext(ctx, insertEventSQL,
			e.ProjectKey,
			e.EventName,
			e.Timestamp,
			e.ReceivedAt,
			nullable(e.AnonymousID),
			nullable(e.UserID),
			nullable(e.SessionID),
			propertiesJSON,
		)
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
