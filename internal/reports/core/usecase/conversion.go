package usecase

import (
	"context"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

// conversion computes the share of distinct users who fired the target
// event among all distinct users active in the window. An empty window
// is a valid zero-rate answer, not an error.
func (d *ReportDispatcher) conversion(ctx context.Context, req ConversionRequest) (*domain.ConversionReport, error) {
	if req.EventName == "" {
		return nil, ErrEventNameRequired
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
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	total := make(map[string]struct{})
	converted := make(map[string]struct{})

	for cur.Next() {
		e := cur.Event()
		key := e.IdentityKey()
		if key == "" {
			continue
		}
		total[key] = struct{}{}
		if e.EventName == req.EventName {
			converted[key] = struct{}{}
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	var rate float64
	if len(total) > 0 {
		rate = float64(len(converted)) / float64(len(total))
	}

	return &domain.ConversionReport{
		ProjectKey:      req.ProjectKey,
		ConversionEvent: req.EventName,
		Range:           domain.Range{From: req.From, To: req.To},
		TotalUsers:      int64(len(total)),
		ConvertedUsers:  int64(len(converted)),
		ConversionRate:  rate,
	}, nil
}
