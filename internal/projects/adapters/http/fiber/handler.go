package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"analytics-reports-service/internal/projects/core/domain"
	"analytics-reports-service/internal/projects/core/ports"
	"analytics-reports-service/internal/projects/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ProjectUseCase interface {
	Create(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context, f ports.ListFilter) ([]*domain.Project, error)
}

type ProjectHandler struct {
	uc ProjectUseCase
}

func NewProjectHandler(uc ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// CreateProject godoc
// @Summary Create a project
// @Description Registers a project and issues its key
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project payload"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be JSON",
		})
	}

	p, err := h.uc.Create(c.UserContext(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNameRequired):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(projectResponse(p))
}

// ListProjects godoc
// @Summary List projects
// @Description Lists projects, newest first
// @Tags Projects
// @Produce json
// @Param limit query int false "Maximum number of projects"
// @Param projectKey query string false "Filter by project key"
// @Success 200 {object} ListProjectsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	filter := ports.ListFilter{
		ProjectKey: c.Query("projectKey", ""),
	}
	if v := c.Query("limit", ""); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_request",
				Message: "invalid 'limit' parameter",
			})
		}
		filter.Limit = limit
	}

	projects, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := ListProjectsResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
	}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, projectResponse(p))
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func projectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		Name:       p.Name,
		ProjectKey: p.ProjectKey,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
		IsActive:   p.IsActive,
	}
}
