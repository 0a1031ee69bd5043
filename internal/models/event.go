package models

import "time"

// Event is a campus event open for registration. Date and RegCloseDate
// are nil when the corresponding DATE column is NULL.
type Event struct {
	ID              int
	Name            string
	Date            *time.Time
	Venue           string
	RegFee          float64
	RegCloseDate    *time.Time
	MaxParticipants int
}
