package domain

import "time"

// Event is a single ingested analytics event. Timestamp is the business
// time reported by the client; ReceivedAt is set server-side at
// ingestion and is used only for internal monitoring, never by reports.
type Event struct {
	ProjectKey  string
	EventName   string
	Timestamp   time.Time
	ReceivedAt  time.Time
	AnonymousID string
	UserID      string
	SessionID   string
	Properties  map[string]any
}
