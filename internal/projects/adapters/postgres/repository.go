package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"analytics-reports-service/internal/projects/core/domain"
	"analytics-reports-service/internal/projects/core/ports"
)

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ ports.ProjectRepositoryPort = (*ProjectRepository)(nil)

const insertProjectSQL = `
INSERT INTO projects (
    name,
    project_key,
    created_at,
    is_active
) VALUES (
    $1, $2, $3, $4
);
`

func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) error {
	_, err := r.db.ExecContext(ctx, insertProjectSQL,
		p.Name,
		p.ProjectKey,
		p.CreatedAt,
		p.IsActive,
	)
	return err
}

func (r *ProjectRepository) FindByKey(ctx context.Context, projectKey string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT name, project_key, created_at, is_active
FROM projects
WHERE project_key = $1`, projectKey)

	var p domain.Project
	err := row.Scan(&p.Name, &p.ProjectKey, &p.CreatedAt, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Project, error) {
	query := `
SELECT name, project_key, created_at, is_active
FROM projects`
	var args []any
	argIndex := 1

	if f.ProjectKey != "" {
		query += fmt.Sprintf(" WHERE project_key = $%d", argIndex)
		args = append(args, f.ProjectKey)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, f.Limit)
		argIndex++
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.Name, &p.ProjectKey, &p.CreatedAt, &p.IsActive); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectStatus reports existence and the activity flag for a project
// key. It satisfies the project gate ports of the events and reports
// contexts.
func (r *ProjectRepository) ProjectStatus(ctx context.Context, projectKey string) (bool, bool, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT is_active
FROM projects
WHERE project_key = $1`, projectKey)

	var active bool
	err := row.Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, active, nil
}
