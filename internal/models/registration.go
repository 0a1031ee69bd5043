package models

import "time"

// Registration records one user signing up for one event. EventName and
// EventDate are snapshots taken at registration time, not foreign-key reads.
type Registration struct {
	ID        int
	EventID   int
	EventName string
	EventDate *time.Time
	UserName  string
}
