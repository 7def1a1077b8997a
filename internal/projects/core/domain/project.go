package domain

import "time"

// Project is a tenant boundary. Events and reports are always scoped by
// its ProjectKey.
type Project struct {
	Name       string
	ProjectKey string
	CreatedAt  time.Time
	IsActive   bool
}
