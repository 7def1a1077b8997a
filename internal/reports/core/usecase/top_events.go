package usecase

import (
	"context"
	"sort"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

// topEvents ranks event names by frequency, descending, ties broken by
// name ascending so identical inputs always produce identical output.
func (d *ReportDispatcher) topEvents(ctx context.Context, req TopEventsRequest) (*domain.TopEventsReport, error) {
	if req.Limit <= 0 {
		return nil, ErrInvalidLimit
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

	counts := make(map[string]int64)
	for cur.Next() {
		counts[cur.Event().EventName]++
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	items := make([]domain.TopEventItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, domain.TopEventItem{EventName: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].EventName < items[j].EventName
	})
	if len(items) > req.Limit {
		items = items[:req.Limit]
	}

	return &domain.TopEventsReport{
		ProjectKey: req.ProjectKey,
		Items:      items,
	}, nil
}
