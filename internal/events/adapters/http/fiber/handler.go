package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"analytics-reports-service/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type BatchIngestUseCase interface {
	Execute(ctx context.Context, in usecase.BatchIngestInput) (usecase.BatchIngestResult, error)
}

type EventHandler struct {
	ingestUC BatchIngestUseCase
}

func NewEventHandler(ingestUC BatchIngestUseCase) *EventHandler {
	return &EventHandler{ingestUC: ingestUC}
}

// BatchEvents godoc
// @Summary Ingest a batch of events
// @Description Stores well-formed events and skips malformed ones
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BatchEventsRequest true "Batch payload"
// @Success 200 {object} BatchEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/events/batch [post]
func (h *EventHandler) BatchEvents(c *fiber.Ctx) error {
	var req BatchEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "request body must be JSON",
		})
	}

	in := usecase.BatchIngestInput{
		ProjectKey: req.ProjectKey,
		Events:     make([]usecase.IngestEventInput, len(req.Events)),
	}
	for i, e := range req.Events {
		in.Events[i] = usecase.IngestEventInput{
			EventName:   e.EventName,
			Timestamp:   e.Timestamp,
			AnonymousID: e.AnonymousID,
			UserID:      e.UserID,
			SessionID:   e.SessionID,
			Properties:  e.Properties,
		}
	}

	res, err := h.ingestUC.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProjectNotFound):
			return c.Status(http.StatusForbidden).JSON(ErrorResponse{
				Error:   "project_not_found",
				Message: fmt.Sprintf("Project with key '%s' not found", req.ProjectKey),
			})
		case errors.Is(err, usecase.ErrProjectNotActive):
			return c.Status(http.StatusForbidden).JSON(ErrorResponse{
				Error:   "project_not_active",
				Message: fmt.Sprintf("Project '%s' is not active", req.ProjectKey),
			})
		case errors.Is(err, usecase.ErrProjectKeyRequired),
			errors.Is(err, usecase.ErrEventsRequired):
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

	return c.Status(http.StatusOK).JSON(BatchEventsResponse{
		Received: res.Received,
		Inserted: res.Inserted,
	})
}
