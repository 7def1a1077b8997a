package domain

import "time"

// Report is implemented by every report result type so the dispatcher
// can return them through a single entry point.
type Report interface {
	report()
}

// Range echoes the requested window back to the caller. Either bound
// may be nil (unbounded on that side).
type Range struct {
	From *time.Time
	To   *time.Time
}

type OverviewReport struct {
	ProjectKey       string
	Range            Range
	TotalEvents      int64
	UniqueUsers      int64
	UniqueEventNames int64
}

type TopEventItem struct {
	EventName string
	Count     int64
}

type TopEventsReport struct {
	ProjectKey string
	Items      []TopEventItem
}

type TimeSeriesBucket struct {
	BucketStart time.Time
	Count       int64
}

type TimeSeriesReport struct {
	ProjectKey string
	Interval   string
	Items      []TimeSeriesBucket
}

type FunnelStep struct {
	EventName string
	Users     int64
	// ConversionFromPrevious is nil for the first step.
	ConversionFromPrevious *float64
}

type FunnelReport struct {
	ProjectKey string
	Steps      []FunnelStep
}

type ConversionReport struct {
	ProjectKey      string
	ConversionEvent string
	Range           Range
	TotalUsers      int64
	ConvertedUsers  int64
	ConversionRate  float64
}

func (*OverviewReport) report()   {}
func (*TopEventsReport) report()  {}
func (*TimeSeriesReport) report() {}
func (*FunnelReport) report()     {}
func (*ConversionReport) report() {}
