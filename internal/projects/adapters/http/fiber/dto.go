package fiber

// CreateProjectRequest is the project creation payload.
// @Description Project creation DTO
type CreateProjectRequest struct {
	Name string `json:"name"`
}

type ProjectResponse struct {
	Name       string `json:"name"`
	ProjectKey string `json:"projectKey"`
	CreatedAt  string `json:"createdAt"`
	IsActive   bool   `json:"isActive"`
}

type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"name is required"`
}
