package usecase

import (
	"context"
	"errors"
	"time"

	"analytics-reports-service/internal/events/core/domain"
	"analytics-reports-service/internal/events/core/ports"
)

var (
	ErrProjectKeyRequired = errors.New("projectKey is required")
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNotActive   = errors.New("project is not active")
	ErrEventsRequired     = errors.New("events array is required")
)

type BatchIngestUseCase struct {
	repo ports.EventRepositoryPort
	gate ports.ProjectGatePort
}

func NewBatchIngestUseCase(repo ports.EventRepositoryPort, gate ports.ProjectGatePort) *BatchIngestUseCase {
	return &BatchIngestUseCase{repo: repo, gate: gate}
}

type IngestEventInput struct {
	EventName   string
	Timestamp   string
	AnonymousID string
	UserID      string
	SessionID   string
	Properties  map[string]any
}

type BatchIngestInput struct {
	ProjectKey string
	Events     []IngestEventInput
}

type BatchIngestResult struct {
	Received int
	Inserted int
}

// Execute validates the batch against the project gate and stores every
// well-formed event. Malformed events (missing name, missing or
// unparseable timestamp) are skipped, not fatal: the caller learns the
// received/inserted split.
func (uc *BatchIngestUseCase) Execute(ctx context.Context, in BatchIngestInput) (BatchIngestResult, error) {
	var res BatchIngestResult

	if in.ProjectKey == "" {
		return res, ErrProjectKeyRequired
	}

	found, active, err := uc.gate.ProjectStatus(ctx, in.ProjectKey)
	if err != nil {
		return res, err
	}
	if !found {
		return res, ErrProjectNotFound
	}
	if !active {
		return res, ErrProjectNotActive
	}

	if len(in.Events) == 0 {
		return res, ErrEventsRequired
	}

	res.Received = len(in.Events)
	receivedAt := time.Now().UTC()

	valid := make([]*domain.Event, 0, len(in.Events))
	for _, ev := range in.Events {
		if ev.EventName == "" || ev.Timestamp == "" {
			continue
		}
		ts, err := parseTimestamp(ev.Timestamp)
		if err != nil {
			continue
		}
		valid = append(valid, &domain.Event{
			ProjectKey:  in.ProjectKey,
			EventName:   ev.EventName,
			Timestamp:   ts.UTC(),
			ReceivedAt:  receivedAt,
			AnonymousID: ev.AnonymousID,
			UserID:      ev.UserID,
			SessionID:   ev.SessionID,
			Properties:  ev.Properties,
		})
	}

	if len(valid) == 0 {
		return res, nil
	}

	inserted, err := uc.repo.InsertEvents(ctx, valid)
	if err != nil {
		return res, err
	}
	res.Inserted = inserted
	return res, nil
}

func parseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
