package usecase

import (
	"context"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

// funnel computes per-user progression through an ordered step
// sequence. Per identity key a next-expected-index advances only when
// the current event matches the expected step; out-of-order and repeat
// matches are ignored and never reset progress. The cursor's ascending
// timestamp order is what makes the state machine correct.
func (d *ReportDispatcher) funnel(ctx context.Context, req FunnelRequest) (*domain.FunnelReport, error) {
	steps := cleanSteps(req.Steps)
	if len(steps) == 0 {
		return nil, ErrEmptyFunnelSteps
	}
	if err := validateRange(req.From, req.To); err != nil {
		return nil, err
	}
	if err := d.checkProject(ctx, req.ProjectKey); err != nil {
		return nil, err
	}

	cur, err := d.window.Fetch(ctx, ports.EventQuery{
		ProjectKey: req.ProjectKey,
		From:       req.From,
		To:         req.To,
		EventNames: steps,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	progress := make(map[string]int) // identity key -> next expected step index
	stepUsers := make([]int64, len(steps))

	for cur.Next() {
		e := cur.Event()
		key := e.IdentityKey()
		if key == "" {
			continue
		}
		next := progress[key]
		if next >= len(steps) {
			continue
		}
		if e.EventName == steps[next] {
			stepUsers[next]++
			progress[key] = next + 1
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.FunnelStep, len(steps))
	for i, name := range steps {
		out[i] = domain.FunnelStep{EventName: name, Users: stepUsers[i]}
		if i > 0 {
			var ratio float64
			if stepUsers[i-1] > 0 {
				ratio = float64(stepUsers[i]) / float64(stepUsers[i-1])
			}
			out[i].ConversionFromPrevious = &ratio
		}
	}

	return &domain.FunnelReport{
		ProjectKey: req.ProjectKey,
		Steps:      out,
	}, nil
}
