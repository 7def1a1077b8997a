package fiber

// BatchEventsRequest is the batch ingestion payload.
// @Description Batch of analytics events for one project
type BatchEventsRequest struct {
	ProjectKey string           `json:"projectKey"`
	Events     []batchEventItem `json:"events"`
}

type batchEventItem struct {
	EventName   string         `json:"eventName"`
	Timestamp   string         `json:"timestamp"`
	AnonymousID string         `json:"anonymousId"`
	UserID      string         `json:"userId"`
	SessionID   string         `json:"sessionId"`
	Properties  map[string]any `json:"properties"`
}

type BatchEventsResponse struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"events array is required"`
}
