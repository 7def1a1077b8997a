package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"analytics-reports-service/internal/projects/core/domain"
	"analytics-reports-service/internal/projects/core/ports"

	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrKeyExhausted = errors.New("could not generate a unique project key")
)

// keyGenAttempts bounds the retry loop on (unlikely) key collisions.
const keyGenAttempts = 5

type ProjectUseCase struct {
	repo ports.ProjectRepositoryPort
}

func NewProjectUseCase(repo ports.ProjectRepositoryPort) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create registers a new active project under a freshly issued key.
func (uc *ProjectUseCase) Create(ctx context.Context, name string) (*domain.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	key, err := uc.uniqueKey(ctx)
	if err != nil {
		return nil, err
	}

	p := &domain.Project{
		Name:       name,
		ProjectKey: key,
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
	}
	if err := uc.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProjectUseCase) List(ctx context.Context, f ports.ListFilter) ([]*domain.Project, error) {
	if f.Limit < 0 {
		f.Limit = 0
	}
	return uc.repo.List(ctx, f)
}

func (uc *ProjectUseCase) uniqueKey(ctx context.Context) (string, error) {
	for i := 0; i < keyGenAttempts; i++ {
		key := generateProjectKey()
		existing, err := uc.repo.FindByKey(ctx, key)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return key, nil
		}
	}
	return "", ErrKeyExhausted
}

// generateProjectKey issues a short project key: the first 12 hex
// characters of a v4 UUID.
func generateProjectKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
