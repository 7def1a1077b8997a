package fiber

type RangeResponse struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type OverviewResponse struct {
	ProjectKey       string        `json:"projectKey"`
	Range            RangeResponse `json:"range"`
	TotalEvents      int64         `json:"totalEvents"`
	UniqueUsers      int64         `json:"uniqueUsers"`
	UniqueEventNames int64         `json:"uniqueEventNames"`
}

type TopEventItemResponse struct {
	EventName string `json:"eventName"`
	Count     int64  `json:"count"`
}

type TopEventsResponse struct {
	ProjectKey string                 `json:"projectKey"`
	Items      []TopEventItemResponse `json:"items"`
}

type TimeSeriesItemResponse struct {
	Time  string `json:"time"`
	Count int64  `json:"count"`
}

type TimeSeriesResponse struct {
	ProjectKey string                   `json:"projectKey"`
	Interval   string                   `json:"interval"`
	Items      []TimeSeriesItemResponse `json:"items"`
}

// FunnelRequestBody is the POST body for the funnel report.
// @Description Funnel request: ordered step event names plus optional window
type FunnelRequestBody struct {
	ProjectKey string   `json:"projectKey"`
	Steps      []string `json:"steps"`
	From       string   `json:"from"`
	To         string   `json:"to"`
}

type FunnelStepResponse struct {
	EventName              string   `json:"eventName"`
	Users                  int64    `json:"users"`
	ConversionFromPrevious *float64 `json:"conversionFromPrevious,omitempty"`
}

type FunnelResponse struct {
	ProjectKey string               `json:"projectKey"`
	Steps      []FunnelStepResponse `json:"steps"`
}

type ConversionResponse struct {
	ProjectKey      string        `json:"projectKey"`
	ConversionEvent string        `json:"conversionEvent"`
	Range           RangeResponse `json:"range"`
	TotalUsers      int64         `json:"totalUsers"`
	ConvertedUsers  int64         `json:"convertedUsers"`
	ConversionRate  float64       `json:"conversionRate"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"projectKey is required"`
}
