package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"analytics-reports-service/internal/reports/core/domain"
	"analytics-reports-service/internal/reports/core/ports"
	"analytics-reports-service/internal/reports/core/usecase"
)

// fakeProjectGate fakes ProjectGatePort.
type fakeProjectGate struct {
	StatusFn func(ctx context.Context, projectKey string) (bool, bool, error)
	lastKey  string
	called   bool
}

func (f *fakeProjectGate) ProjectStatus(ctx context.Context, projectKey string) (bool, bool, error) {
	f.called = true
	f.lastKey = projectKey
	if f.StatusFn != nil {
		return f.StatusFn(ctx, projectKey)
	}
	return true, true, nil
}

// fakeCursor replays a fixed event slice as a single-pass cursor.
type fakeCursor struct {
	events []domain.Event
	i      int
	err    error
	closed bool
}

func (c *fakeCursor) Next() bool {
	if c.i >= len(c.events) {
		return false
	}
	c.i++
	return true
}

func (c *fakeCursor) Event() *domain.Event {
	return &c.events[c.i-1]
}

func (c *fakeCursor) Err() error {
	return c.err
}

func (c *fakeCursor) Close() error {
	c.closed = true
	return nil
}

// fakeEventWindow fakes EventWindowPort.
type fakeEventWindow struct {
	FetchFn   func(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error)
	lastQuery ports.EventQuery
	called    bool
}

func (f *fakeEventWindow) Fetch(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
	f.called = true
	f.lastQuery = q
	if f.FetchFn != nil {
		return f.FetchFn(ctx, q)
	}
	return &fakeCursor{}, nil
}

func windowOf(events ...domain.Event) *fakeEventWindow {
	return &fakeEventWindow{
		FetchFn: func(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
			return &fakeCursor{events: events}, nil
		},
	}
}

func ev(name, userID, anonID string, ts time.Time) domain.Event {
	return domain.Event{EventName: name, UserID: userID, AnonymousID: anonID, Timestamp: ts}
}

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func tp(t time.Time) *time.Time {
	return &t
}

// ------------------------------------------------------------
// OVERVIEW
// ------------------------------------------------------------

func TestOverview_Success(t *testing.T) {
	window := windowOf(
		ev("app_open", "u1", "a1", at(9, 0)),
		ev("screen_view", "", "a1", at(9, 5)),
		ev("app_open", "u2", "", at(9, 10)),
		ev("purchase_success", "", "", at(9, 15)), // no identity: raw total only
	)
	gate := &fakeProjectGate{}
	d := usecase.NewReportDispatcher(gate, window)

	rep, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, ok := rep.(*domain.OverviewReport)
	if !ok {
		t.Fatalf("expected *domain.OverviewReport, got %T", rep)
	}
	if res.TotalEvents != 4 {
		t.Fatalf("expected totalEvents=4, got %d", res.TotalEvents)
	}
	// u1 and u2 from userId events, a1 from the anonymous-only event.
	if res.UniqueUsers != 3 {
		t.Fatalf("expected uniqueUsers=3, got %d", res.UniqueUsers)
	}
	if res.UniqueEventNames != 3 {
		t.Fatalf("expected uniqueEventNames=3, got %d", res.UniqueEventNames)
	}
	if res.UniqueEventNames > res.TotalEvents {
		t.Fatalf("uniqueEventNames must never exceed totalEvents")
	}
	if gate.lastKey != "pk1" {
		t.Fatalf("expected gate check for pk1, got %s", gate.lastKey)
	}
}

func TestOverview_EmptyWindowIsZeroNotError(t *testing.T) {
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, windowOf())

	rep, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := rep.(*domain.OverviewReport)
	if res.TotalEvents != 0 || res.UniqueUsers != 0 || res.UniqueEventNames != 0 {
		t.Fatalf("expected all-zero report, got %+v", res)
	}
}

func TestOverview_CursorClosed(t *testing.T) {
	cur := &fakeCursor{events: []domain.Event{ev("a", "u1", "", at(9, 0))}}
	window := &fakeEventWindow{
		FetchFn: func(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
			return cur, nil
		},
	}
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	if _, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cur.closed {
		t.Fatalf("expected cursor to be closed")
	}
}

// ------------------------------------------------------------
// VALIDATION (shared)
// ------------------------------------------------------------

func TestDispatch_MissingProjectKey(t *testing.T) {
	gate := &fakeProjectGate{}
	window := &fakeEventWindow{}
	d := usecase.NewReportDispatcher(gate, window)

	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{})
	if !errors.Is(err, usecase.ErrProjectKeyRequired) {
		t.Fatalf("expected ErrProjectKeyRequired, got %v", err)
	}
	if gate.called {
		t.Fatalf("gate should not be called without a project key")
	}
	if window.called {
		t.Fatalf("store should not be called on invalid input")
	}
}

func TestDispatch_InvalidTimeRange(t *testing.T) {
	gate := &fakeProjectGate{}
	window := &fakeEventWindow{}
	d := usecase.NewReportDispatcher(gate, window)

	from := at(12, 0)
	to := at(9, 0)
	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{
		ProjectKey: "pk1",
		From:       &from,
		To:         &to,
	})
	if !errors.Is(err, usecase.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if gate.called || window.called {
		t.Fatalf("neither gate nor store should be called on an inverted range")
	}
}

func TestDispatch_ProjectNotFound(t *testing.T) {
	gate := &fakeProjectGate{
		StatusFn: func(ctx context.Context, projectKey string) (bool, bool, error) {
			return false, false, nil
		},
	}
	window := &fakeEventWindow{}
	d := usecase.NewReportDispatcher(gate, window)

	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "missing"})
	if !errors.Is(err, usecase.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if window.called {
		t.Fatalf("store should not be called for an unknown project")
	}
}

func TestDispatch_ProjectNotActive(t *testing.T) {
	gate := &fakeProjectGate{
		StatusFn: func(ctx context.Context, projectKey string) (bool, bool, error) {
			return true, false, nil
		},
	}
	d := usecase.NewReportDispatcher(gate, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"})
	if !errors.Is(err, usecase.ErrProjectNotActive) {
		t.Fatalf("expected ErrProjectNotActive, got %v", err)
	}
}

func TestDispatch_StoreErrorPropagatesUnchanged(t *testing.T) {
	storeErr := errors.New("connection refused")
	window := &fakeEventWindow{
		FetchFn: func(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
			return nil, storeErr
		},
	}
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error unchanged, got %v", err)
	}
}

func TestDispatch_CursorErrorPropagates(t *testing.T) {
	cursorErr := errors.New("read interrupted")
	window := &fakeEventWindow{
		FetchFn: func(ctx context.Context, q ports.EventQuery) (ports.EventCursor, error) {
			return &fakeCursor{err: cursorErr}, nil
		},
	}
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	_, err := d.Dispatch(context.Background(), usecase.OverviewRequest{ProjectKey: "pk1"})
	if !errors.Is(err, cursorErr) {
		t.Fatalf("expected the cursor error, got %v", err)
	}
}

// ------------------------------------------------------------
// TOP EVENTS
// ------------------------------------------------------------

func TestTopEvents_OrderingAndTruncation(t *testing.T) {
	window := windowOf(
		ev("b_click", "u1", "", at(9, 0)),
		ev("a_view", "u1", "", at(9, 1)),
		ev("b_click", "u2", "", at(9, 2)),
		ev("c_open", "u1", "", at(9, 3)),
		ev("a_view", "u2", "", at(9, 4)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.TopEventsRequest{
		ProjectKey: "pk1",
		Limit:      2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.TopEventsReport)
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	// a_view and b_click tie at 2; name ascending breaks the tie.
	if res.Items[0].EventName != "a_view" || res.Items[0].Count != 2 {
		t.Fatalf("unexpected first item: %+v", res.Items[0])
	}
	if res.Items[1].EventName != "b_click" || res.Items[1].Count != 2 {
		t.Fatalf("unexpected second item: %+v", res.Items[1])
	}
}

func TestTopEvents_CountSumBoundedByTotal(t *testing.T) {
	events := []domain.Event{
		ev("a", "u1", "", at(9, 0)),
		ev("b", "u1", "", at(9, 1)),
		ev("a", "u1", "", at(9, 2)),
	}
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, windowOf(events...))

	rep, err := d.Dispatch(context.Background(), usecase.TopEventsRequest{
		ProjectKey: "pk1",
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.TopEventsReport)
	var sum int64
	for _, it := range res.Items {
		sum += it.Count
	}
	if sum != int64(len(events)) {
		t.Fatalf("expected count sum %d, got %d", len(events), sum)
	}
}

func TestTopEvents_NonPositiveLimit(t *testing.T) {
	gate := &fakeProjectGate{}
	d := usecase.NewReportDispatcher(gate, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.TopEventsRequest{
		ProjectKey: "pk1",
		Limit:      0,
	})
	if !errors.Is(err, usecase.ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if gate.called {
		t.Fatalf("gate should not be called on an invalid limit")
	}
}

// ------------------------------------------------------------
// TIME SERIES
// ------------------------------------------------------------

func TestTimeSeries_MaterializesEmptyBuckets(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	window := windowOf(
		ev("a", "u1", "", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)),
		ev("b", "u1", "", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		ev("a", "u2", "", time.Date(2025, 3, 12, 23, 59, 0, 0, time.UTC)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.TimeSeriesRequest{
		ProjectKey: "pk1",
		From:       from,
		To:         to,
		Interval:   usecase.IntervalDay,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.TimeSeriesReport)
	if len(res.Items) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(res.Items))
	}
	wantCounts := []int64{2, 0, 1}
	var sum int64
	for i, b := range res.Items {
		if b.Count != wantCounts[i] {
			t.Fatalf("bucket %d: expected count %d, got %d", i, wantCounts[i], b.Count)
		}
		if !b.BucketStart.Equal(from.AddDate(0, 0, i)) {
			t.Fatalf("bucket %d: unexpected start %v", i, b.BucketStart)
		}
		sum += b.Count
	}
	if sum != 3 {
		t.Fatalf("bucket sum must equal the window event count, got %d", sum)
	}
}

func TestTimeSeries_HourBucketsAlignToContainingHour(t *testing.T) {
	from := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	window := windowOf(
		ev("a", "u1", "", time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC)),
		ev("a", "u1", "", time.Date(2025, 3, 10, 10, 15, 0, 0, time.UTC)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.TimeSeriesRequest{
		ProjectKey: "pk1",
		From:       from,
		To:         to,
		Interval:   usecase.IntervalHour,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.TimeSeriesReport)
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(res.Items))
	}
	if !res.Items[0].BucketStart.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected first bucket at 09:00, got %v", res.Items[0].BucketStart)
	}
	if res.Items[0].Count != 1 || res.Items[1].Count != 1 {
		t.Fatalf("unexpected bucket counts: %+v", res.Items)
	}
}

func TestTimeSeries_RangeRequired(t *testing.T) {
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.TimeSeriesRequest{
		ProjectKey: "pk1",
		Interval:   usecase.IntervalDay,
	})
	if !errors.Is(err, usecase.ErrRangeRequired) {
		t.Fatalf("expected ErrRangeRequired, got %v", err)
	}
}

func TestTimeSeries_InvalidInterval(t *testing.T) {
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.TimeSeriesRequest{
		ProjectKey: "pk1",
		From:       at(9, 0),
		To:         at(12, 0),
		Interval:   "minute",
	})
	if !errors.Is(err, usecase.ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestTimeSeries_TooManyBuckets(t *testing.T) {
	gate := &fakeProjectGate{}
	window := &fakeEventWindow{}
	d := usecase.NewReportDispatcher(gate, window)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 60) // 1440 hourly buckets
	_, err := d.Dispatch(context.Background(), usecase.TimeSeriesRequest{
		ProjectKey: "pk1",
		From:       from,
		To:         to,
		Interval:   usecase.IntervalHour,
	})
	if !errors.Is(err, usecase.ErrTooManyBuckets) {
		t.Fatalf("expected ErrTooManyBuckets, got %v", err)
	}
	if window.called {
		t.Fatalf("store should not be called when the series is rejected")
	}
}

// ------------------------------------------------------------
// FUNNEL
// ------------------------------------------------------------

func TestFunnel_OutOfOrderStepsNotCredited(t *testing.T) {
	// One user fires app_open, screen_view, purchase_success in order,
	// but the funnel expects login_success second: only step 0 counts.
	window := windowOf(
		ev("app_open", "u1", "", at(9, 0)),
		ev("screen_view", "u1", "", at(9, 5)),
		ev("purchase_success", "u1", "", at(9, 10)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"app_open", "login_success", "purchase_success"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.FunnelReport)
	want := []int64{1, 0, 0}
	for i, s := range res.Steps {
		if s.Users != want[i] {
			t.Fatalf("step %d: expected %d users, got %d", i, want[i], s.Users)
		}
	}
	if res.Steps[0].ConversionFromPrevious != nil {
		t.Fatalf("first step must not carry a conversion ratio")
	}
	if res.Steps[1].ConversionFromPrevious == nil || *res.Steps[1].ConversionFromPrevious != 0 {
		t.Fatalf("expected zero conversion into step 1")
	}
}

func TestFunnel_MultiUserProgressionAndRatios(t *testing.T) {
	window := windowOf(
		// u1 completes the funnel.
		ev("signup", "u1", "", at(9, 0)),
		ev("activate", "u1", "", at(9, 5)),
		ev("purchase", "u1", "", at(9, 10)),
		// u2 stops after step 0; the later out-of-order purchase is
		// ignored and does not advance.
		ev("signup", "u2", "", at(9, 1)),
		ev("purchase", "u2", "", at(9, 6)),
		// anon user reaches step 1.
		ev("signup", "", "anon-1", at(9, 2)),
		ev("activate", "", "anon-1", at(9, 7)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"signup", "activate", "purchase"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.FunnelReport)
	want := []int64{3, 2, 1}
	prev := int64(0)
	for i, s := range res.Steps {
		if s.Users != want[i] {
			t.Fatalf("step %d: expected %d users, got %d", i, want[i], s.Users)
		}
		if i > 0 && s.Users > prev {
			t.Fatalf("step counts must be non-increasing")
		}
		prev = s.Users
	}
	if got := *res.Steps[1].ConversionFromPrevious; got != float64(2)/float64(3) {
		t.Fatalf("unexpected conversion into step 1: %v", got)
	}
	if got := *res.Steps[2].ConversionFromPrevious; got != 0.5 {
		t.Fatalf("unexpected conversion into step 2: %v", got)
	}
}

func TestFunnel_RepeatedStepNameNeedsRepeatedEvents(t *testing.T) {
	// Steps [A, A, B]: a single A event only reaches step 0.
	window := windowOf(
		ev("A", "u1", "", at(9, 0)),
		ev("B", "u1", "", at(9, 5)),
		// u2 fires A twice then B and completes.
		ev("A", "u2", "", at(9, 1)),
		ev("A", "u2", "", at(9, 2)),
		ev("B", "u2", "", at(9, 6)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"A", "A", "B"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.FunnelReport)
	want := []int64{2, 1, 1}
	for i, s := range res.Steps {
		if s.Users != want[i] {
			t.Fatalf("step %d: expected %d users, got %d", i, want[i], s.Users)
		}
	}
}

func TestFunnel_WindowFilteredToSteps(t *testing.T) {
	window := windowOf()
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	_, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"  signup ", "", "purchase"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := window.lastQuery.EventNames
	if len(got) != 2 || got[0] != "signup" || got[1] != "purchase" {
		t.Fatalf("expected cleaned step filter, got %v", got)
	}
}

func TestFunnel_EmptySteps(t *testing.T) {
	gate := &fakeProjectGate{}
	d := usecase.NewReportDispatcher(gate, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"   ", ""},
	})
	if !errors.Is(err, usecase.ErrEmptyFunnelSteps) {
		t.Fatalf("expected ErrEmptyFunnelSteps, got %v", err)
	}
	if gate.called {
		t.Fatalf("gate should not be called on empty steps")
	}
}

func TestFunnel_SingleStepAllowed(t *testing.T) {
	window := windowOf(
		ev("app_open", "u1", "", at(9, 0)),
		ev("app_open", "u2", "", at(9, 1)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.FunnelRequest{
		ProjectKey: "pk1",
		Steps:      []string{"app_open"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := rep.(*domain.FunnelReport)
	if len(res.Steps) != 1 || res.Steps[0].Users != 2 {
		t.Fatalf("unexpected single-step result: %+v", res.Steps)
	}
}

// ------------------------------------------------------------
// CONVERSION
// ------------------------------------------------------------

func TestConversion_TwoUsersHalfConverted(t *testing.T) {
	window := windowOf(
		ev("app_open", "userA", "", at(9, 0)),
		ev("purchase_success", "userA", "", at(9, 5)),
		ev("app_open", "userB", "", at(9, 1)),
	)
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	rep, err := d.Dispatch(context.Background(), usecase.ConversionRequest{
		ProjectKey: "pk1",
		EventName:  "purchase_success",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := rep.(*domain.ConversionReport)
	if res.TotalUsers != 2 || res.ConvertedUsers != 1 {
		t.Fatalf("expected 2 total / 1 converted, got %d/%d", res.TotalUsers, res.ConvertedUsers)
	}
	if res.ConversionRate != 0.5 {
		t.Fatalf("expected rate 0.5, got %v", res.ConversionRate)
	}
	if res.ConversionRate < 0 || res.ConversionRate > 1 {
		t.Fatalf("rate out of [0,1]: %v", res.ConversionRate)
	}
}

func TestConversion_EmptyWindowIsZeroRate(t *testing.T) {
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, windowOf())

	rep, err := d.Dispatch(context.Background(), usecase.ConversionRequest{
		ProjectKey: "pk1",
		EventName:  "purchase_success",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := rep.(*domain.ConversionReport)
	if res.TotalUsers != 0 || res.ConvertedUsers != 0 || res.ConversionRate != 0 {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

func TestConversion_EventNameRequired(t *testing.T) {
	gate := &fakeProjectGate{}
	d := usecase.NewReportDispatcher(gate, &fakeEventWindow{})

	_, err := d.Dispatch(context.Background(), usecase.ConversionRequest{ProjectKey: "pk1"})
	if !errors.Is(err, usecase.ErrEventNameRequired) {
		t.Fatalf("expected ErrEventNameRequired, got %v", err)
	}
	if gate.called {
		t.Fatalf("gate should not be called without an event name")
	}
}

// ------------------------------------------------------------
// WINDOW QUERY SHAPE
// ------------------------------------------------------------

func TestDispatch_WindowQueryCarriesRange(t *testing.T) {
	window := windowOf()
	d := usecase.NewReportDispatcher(&fakeProjectGate{}, window)

	from := at(9, 0)
	to := at(12, 0)
	_, err := d.Dispatch(context.Background(), usecase.ConversionRequest{
		ProjectKey: "pk1",
		EventName:  "purchase_success",
		From:       tp(from),
		To:         tp(to),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := window.lastQuery
	if q.ProjectKey != "pk1" {
		t.Fatalf("unexpected project key: %s", q.ProjectKey)
	}
	if q.From == nil || !q.From.Equal(from) || q.To == nil || !q.To.Equal(to) {
		t.Fatalf("expected range to be forwarded, got %+v", q)
	}
	if len(q.EventNames) != 0 {
		t.Fatalf("conversion must scan all events, got filter %v", q.EventNames)
	}
}
