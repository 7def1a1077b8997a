package ports

import (
	"context"

	"analytics-reports-service/internal/events/core/domain"
)

type EventRepositoryPort interface {
	// InsertEvents stores a batch and returns how many rows were
	// written. A storage error aborts the batch.
	InsertEvents(ctx context.Context, events []*domain.Event) (int, error)
}

// ProjectGatePort answers whether a project key exists and is active.
type ProjectGatePort interface {
	ProjectStatus(ctx context.Context, projectKey string) (found bool, active bool, err error)
}
