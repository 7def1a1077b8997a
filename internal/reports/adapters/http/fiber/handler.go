package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultTopEventsLimit = 10
	maxTopEventsLimit     = 50
)

type ReportDispatcher interface {
	Dispatch(ctx context.Context, req usecase.Request) (domain.Report, error)
}

type ReportHandler struct {
	dispatcher ReportDispatcher
}

func NewReportHandler(dispatcher ReportDispatcher) *ReportHandler {
	return &ReportHandler{dispatcher: dispatcher}
}

// Overview godoc
// @Summary Overview report
// @Description Total events, unique users and distinct event names for a project
// @Tags Reports
// @Produce json
// @Param projectKey query string true "Project key"
// @Param from query string false "Window start (RFC 3339, inclusive)"
// @Param to query string false "Window end (RFC 3339, exclusive)"
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	projectKey := c.Query("projectKey", "")

	from, ok := h.timeParam(c, "from")
	if !ok {
		return nil
	}
	to, ok := h.timeParam(c, "to")
	if !ok {
		return nil
	}

	rep, err := h.dispatcher.Dispatch(c.UserContext(), usecase.OverviewRequest{
		ProjectKey: projectKey,
		From:       from,
		To:         to,
	})
	if err != nil {
		return h.errorResponse(c, projectKey, err)
	}

	res := rep.(*domain.OverviewReport)
	return c.Status(http.StatusOK).JSON(OverviewResponse{
		ProjectKey:       res.ProjectKey,
		Range:            rangeResponse(res.Range),
		TotalEvents:      res.TotalEvents,
		UniqueUsers:      res.UniqueUsers,
		UniqueEventNames: res.UniqueEventNames,
	})
}

// TopEvents godoc
// @Summary Top events report
// @Description Event names ranked by frequency, descending
// @Tags Reports
// @Produce json
// @Param projectKey query string true "Project key"
// @Param from query string false "Window start (RFC 3339, inclusive)"
// @Param to query string false "Window end (RFC 3339, exclusive)"
// @Param limit query int false "Maximum entries (default 10, max 50)"
// @Success 200 {object} TopEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/reports/top-events [get]
func (h *ReportHandler) TopEvents(c *fiber.Ctx) error {
	projectKey := c.Query("projectKey", "")

	limit := defaultTopEventsLimit
	if v := c.Query("limit", ""); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "invalid 'limit' parameter")
		}
		limit = parsed
	}
	if limit > maxTopEventsLimit {
		limit = maxTopEventsLimit
	}

	from, ok := h.timeParam(c, "from")
	if !ok {
		return nil
	}
	to, ok := h.timeParam(c, "to")
	if !ok {
		return nil
	}

	rep, err := h.dispatcher.Dispatch(c.UserContext(), usecase.TopEventsRequest{
		ProjectKey: projectKey,
		From:       from,
		To:         to,
		Limit:      limit,
	})
	if err != nil {
		return h.errorResponse(c, projectKey, err)
	}

	res := rep.(*domain.TopEventsReport)
	resp := TopEventsResponse{
		ProjectKey: res.ProjectKey,
		Items:      make([]TopEventItemResponse, 0, len(res.Items)),
	}
	for _, it := range res.Items {
		resp.Items = append(resp.Items, TopEventItemResponse{
			EventName: it.EventName,
			Count:     it.Count,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// EventsTimeSeries godoc
// @Summary Events time series report
// @Description Event counts bucketed by UTC day or hour over a required window
// @Tags Reports
// @Produce json
// @Param projectKey query string true "Project key"
// @Param from query string true "Window start (RFC 3339, inclusive)"
// @Param to query string true "Window end (RFC 3339, exclusive)"
// @Param interval query string false "Bucket interval: day (default) or hour"
// @Success 200 {object} TimeSeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/reports/events-timeseries [get]
func (h *ReportHandler) EventsTimeSeries(c *fiber.Ctx) error {
	projectKey := c.Query("projectKey", "")
	interval := c.Query("interval", usecase.IntervalDay)

	from, ok := h.timeParam(c, "from")
	if !ok {
		return nil
	}
	to, ok := h.timeParam(c, "to")
	if !ok {
		return nil
	}

	req := usecase.TimeSeriesRequest{
		ProjectKey: projectKey,
		Interval:   interval,
	}
	if from != nil {
		req.From = *from
	}
	if to != nil {
		req.To = *to
	}

	rep, err := h.dispatcher.Dispatch(c.UserContext(), req)
	if err != nil {
		return h.errorResponse(c, projectKey, err)
	}

	res := rep.(*domain.TimeSeriesReport)
	resp := TimeSeriesResponse{
		ProjectKey: res.ProjectKey,
		Interval:   res.Interval,
		Items:      make([]TimeSeriesItemResponse, 0, len(res.Items)),
	}
	for _, b := range res.Items {
		resp.Items = append(resp.Items, TimeSeriesItemResponse{
			Time:  formatBucket(b.BucketStart, res.Interval),
			Count: b.Count,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Funnel godoc
// @Summary Funnel report
// @Description Per-step user counts for an ordered event sequence
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body FunnelRequestBody true "Funnel request"
// @Success 200 {object} FunnelResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/reports/funnel [post]
func (h *ReportHandler) Funnel(c *fiber.Ctx) error {
	var body FunnelRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "request body must be JSON")
	}

	from, ok := h.timeField(c, "from", body.From)
	if !ok {
		return nil
	}
	to, ok := h.timeField(c, "to", body.To)
	if !ok {
		return nil
	}

	rep, err := h.dispatcher.Dispatch(c.UserContext(), usecase.FunnelRequest{
		ProjectKey: body.ProjectKey,
		Steps:      body.Steps,
		From:       from,
		To:         to,
	})
	if err != nil {
		return h.errorResponse(c, body.ProjectKey, err)
	}

	res := rep.(*domain.FunnelReport)
	resp := FunnelResponse{
		ProjectKey: res.ProjectKey,
		Steps:      make([]FunnelStepResponse, 0, len(res.Steps)),
	}
	for _, s := range res.Steps {
		resp.Steps = append(resp.Steps, FunnelStepResponse{
			EventName:              s.EventName,
			Users:                  s.Users,
			ConversionFromPrevious: s.ConversionFromPrevious,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Conversion godoc
// @Summary Conversion report
// @Description Share of users who fired the target event among all active users
// @Tags Reports
// @Produce json
// @Param projectKey query string true "Project key"
// @Param eventName query string true "Conversion event name"
// @Param from query string false "Window start (RFC 3339, inclusive)"
// @Param to query string false "Window end (RFC 3339, exclusive)"
// @Success 200 {object} ConversionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/reports/conversion [get]
func (h *ReportHandler) Conversion(c *fiber.Ctx) error {
	projectKey := c.Query("projectKey", "")
	eventName := c.Query("eventName", "")

	from, ok := h.timeParam(c, "from")
	if !ok {
		return nil
	}
	to, ok := h.timeParam(c, "to")
	if !ok {
		return nil
	}

	rep, err := h.dispatcher.Dispatch(c.UserContext(), usecase.ConversionRequest{
		ProjectKey: projectKey,
		EventName:  eventName,
		From:       from,
		To:         to,
	})
	if err != nil {
		return h.errorResponse(c, projectKey, err)
	}

	res := rep.(*domain.ConversionReport)
	return c.Status(http.StatusOK).JSON(ConversionResponse{
		ProjectKey:      res.ProjectKey,
		ConversionEvent: res.ConversionEvent,
		Range:           rangeResponse(res.Range),
		TotalUsers:      res.TotalUsers,
		ConvertedUsers:  res.ConvertedUsers,
		ConversionRate:  res.ConversionRate,
	})
}

// timeParam parses an optional RFC 3339 query parameter. On a malformed
// value it writes the 400 response and reports ok=false.
func (h *ReportHandler) timeParam(c *fiber.Ctx, name string) (*time.Time, bool) {
	return h.timeField(c, name, c.Query(name, ""))
}

func (h *ReportHandler) timeField(c *fiber.Ctx, name, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := parseTimestamp(value)
	if err != nil {
		_ = badRequest(c, fmt.Sprintf("Invalid '%s' date format. Use ISO 8601 format", name))
		return nil, false
	}
	return &t, true
}

func parseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func formatBucket(t time.Time, interval string) string {
	if interval == usecase.IntervalHour {
		return t.UTC().Format("2006-01-02 15:00")
	}
	return t.UTC().Format("2006-01-02")
}

func rangeResponse(r domain.Range) RangeResponse {
	var out RangeResponse
	if r.From != nil {
		v := r.From.UTC().Format(time.RFC3339)
		out.From = &v
	}
	if r.To != nil {
		v := r.To.UTC().Format(time.RFC3339)
		out.To = &v
	}
	return out
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
	})
}

func (h *ReportHandler) errorResponse(c *fiber.Ctx, projectKey string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Error:   "project_not_found",
			Message: fmt.Sprintf("Project with key '%s' not found", projectKey),
		})
	case errors.Is(err, usecase.ErrProjectNotActive):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Error:   "project_not_active",
			Message: fmt.Sprintf("Project '%s' is not active", projectKey),
		})
	case errors.Is(err, usecase.ErrProjectKeyRequired),
		errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, usecase.ErrRangeRequired),
		errors.Is(err, usecase.ErrInvalidLimit),
		errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrEmptyFunnelSteps),
		errors.Is(err, usecase.ErrEventNameRequired),
		errors.Is(err, usecase.ErrTooManyBuckets):
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
