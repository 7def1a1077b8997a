package usecase

import (
	"context"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

// overview counts total events, distinct users and distinct event names
// in one pass over the window. An empty window yields an all-zero
// report.
func (d *ReportDispatcher) overview(ctx context.Context, req OverviewRequest) (*domain.OverviewReport, error) {
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
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	var total int64
	users := make(map[string]struct{})
	names := make(map[string]struct{})

	for cur.Next() {
		e := cur.Event()
		total++
		names[e.EventName] = struct{}{}
		if key := e.IdentityKey(); key != "" {
			users[key] = struct{}{}
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &domain.OverviewReport{
		ProjectKey:       req.ProjectKey,
		Range:            domain.Range{From: req.From, To: req.To},
		TotalEvents:      total,
		UniqueUsers:      int64(len(users)),
		UniqueEventNames: int64(len(names)),
	}, nil
}
