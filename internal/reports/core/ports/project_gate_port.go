package ports

import "context"

// ProjectGatePort answers whether a project key exists and is active.
// Report computation is refused for unknown or deactivated projects.
type ProjectGatePort interface {
	ProjectStatus(ctx context.Context, projectKey string) (found bool, active bool, err error)
}
