package usecase

import (
	"context"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
)

const (
	IntervalDay  = "day"
	IntervalHour = "hour"

	// maxTimeSeriesBuckets bounds the materialized series so a wide
	// range with a fine interval cannot allocate without limit.
	maxTimeSeriesBuckets = 1000
)

// timeSeries buckets event counts into fixed UTC day/hour intervals.
// Both bounds are required and every bucket in [from, to) is
// materialized, zero counts included, so consumers can plot a
// continuous series.
func (d *ReportDispatcher) timeSeries(ctx context.Context, req TimeSeriesRequest) (*domain.TimeSeriesReport, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, ErrRangeRequired
	}
	if req.From.After(req.To) {
		return nil, ErrInvalidTimeRange
	}

	var step time.Duration
	switch req.Interval {
	case IntervalDay:
		step = 24 * time.Hour
	case IntervalHour:
		step = time.Hour
	default:
		return nil, ErrInvalidInterval
	}

	from := req.From.UTC()
	to := req.To.UTC()

	// The series starts at the bucket containing 'from' so events just
	// after 'from' land in a materialized bucket.
	start := from.Truncate(step)
	if n := int64(to.Sub(start)/step) + 1; n > maxTimeSeriesBuckets {
		return nil, ErrTooManyBuckets
	}

	if err := d.checkProject(ctx, req.ProjectKey); err != nil {
		return nil, err
	}

	cur, err := d.window.Fetch(ctx, ports.EventQuery{
		ProjectKey: req.ProjectKey,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	counts := make(map[time.Time]int64)
	for cur.Next() {
		bucket := cur.Event().Timestamp.UTC().Truncate(step)
		counts[bucket]++
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	var items []domain.TimeSeriesBucket
	for t := start; t.Before(to); t = t.Add(step) {
		items = append(items, domain.TimeSeriesBucket{
			BucketStart: t,
			Count:       counts[t],
		})
	}

	return &domain.TimeSeriesReport{
		ProjectKey: req.ProjectKey,
		Interval:   req.Interval,
		Items:      items,
	}, nil
}
