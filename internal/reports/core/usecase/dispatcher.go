package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

var (
	ErrProjectKeyRequired = errors.New("projectKey is required")
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNotActive   = errors.New("project is not active")
	ErrInvalidTimeRange   = errors.New("'from' must not be after 'to'")
	ErrRangeRequired      = errors.New("'from' and 'to' are required")
	ErrInvalidLimit       = errors.New("limit must be a positive integer")
	ErrInvalidInterval    = errors.New("interval must be 'day' or 'hour'")
	ErrEmptyFunnelSteps   = errors.New("steps must contain at least one event name")
	ErrEventNameRequired  = errors.New("eventName is required")
	ErrTooManyBuckets     = errors.New("requested range produces too many buckets")
)

// Request is the tagged union of report requests, one variant per
// report kind.
type Request interface {
	reportRequest()
}

type OverviewRequest struct {
	ProjectKey string
	From       *time.Time
	To         *time.Time
}

type TopEventsRequest struct {
	ProjectKey string
	From       *time.Time
	To         *time.Time
	Limit      int
}

type TimeSeriesRequest struct {
	ProjectKey string
	From       time.Time
	To         time.Time
	Interval   string
}

type FunnelRequest struct {
	ProjectKey string
	Steps      []string
	From       *time.Time
	To         *time.Time
}

type ConversionRequest struct {
	ProjectKey string
	EventName  string
	From       *time.Time
	To         *time.Time
}

func (OverviewRequest) reportRequest()   {}
func (TopEventsRequest) reportRequest()  {}
func (TimeSeriesRequest) reportRequest() {}
func (FunnelRequest) reportRequest()     {}
func (ConversionRequest) reportRequest() {}

// ReportDispatcher routes a report request to its aggregator. All
// parameter validation happens here, before the store is touched; store
// errors pass through unchanged.
type ReportDispatcher struct {
	gate   ports.ProjectGatePort
	window ports.EventWindowPort
}

func NewReportDispatcher(gate ports.ProjectGatePort, window ports.EventWindowPort) *ReportDispatcher {
	return &ReportDispatcher{gate: gate, window: window}
}

func (d *ReportDispatcher) Dispatch(ctx context.Context, req Request) (domain.Report, error) {
	switch r := req.(type) {
	case OverviewRequest:
		return d.overview(ctx, r)
	case TopEventsRequest:
		return d.topEvents(ctx, r)
	case TimeSeriesRequest:
		return d.timeSeries(ctx, r)
	case FunnelRequest:
		return d.funnel(ctx, r)
	case ConversionRequest:
		return d.conversion(ctx, r)
	default:
		return nil, fmt.Errorf("unsupported report request type %T", req)
	}
}

// checkProject validates the project key and the project's activity
// flag. Gate lookup errors are store errors and propagate as-is.
func (d *ReportDispatcher) checkProject(ctx context.Context, projectKey string) error {
	if projectKey == "" {
		return ErrProjectKeyRequired
	}
	found, active, err := d.gate.ProjectStatus(ctx, projectKey)
	if err != nil {
		return err
	}
	if !found {
		return ErrProjectNotFound
	}
	if !active {
		return ErrProjectNotActive
	}
	return nil
}

func validateRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return ErrInvalidTimeRange
	}
	return nil
}

// cleanSteps trims step names and drops blank entries, preserving
// order.
func cleanSteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
