package domain

import "time"

// Event is the read-side projection of a stored analytics event, as
// consumed by report aggregations. Events without a valid timestamp are
// never surfaced here.
type Event struct {
	EventName   string
	UserID      string
	AnonymousID string
	Timestamp   time.Time
}

// IdentityKey resolves the per-user counting key: a non-empty userId
// supersedes the anonymousId. Empty result means the event carries no
// identity and must be excluded from user-scoped aggregations.
func (e *Event) IdentityKey() string {
	if e.UserID != "" {
		return e.UserID
	}
	return e.AnonymousID
}
