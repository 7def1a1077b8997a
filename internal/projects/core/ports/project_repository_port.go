package ports

import (
	"context"

	"analytics-reports-service/internal/projects/core/domain"
)

type ListFilter struct {
	// ProjectKey narrows the listing to a single project when non-empty.
	ProjectKey string
	// Limit caps the number of returned projects; 0 means no cap.
	Limit int
}

type ProjectRepositoryPort interface {
	Insert(ctx context.Context, p *domain.Project) error
	// FindByKey returns nil without error when no project matches.
	FindByKey(ctx context.Context, projectKey string) (*domain.Project, error)
	List(ctx context.Context, f ListFilter) ([]*domain.Project, error)
}
