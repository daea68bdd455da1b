package notifications

import "time"

// Notification is append-only: the engine inserts, the API reads.
type Notification struct {
	ID        int64
	Email     string
	Message   string
	Type      string // Alert | Warning | Info | Reminder
	Timestamp time.Time
	Month     string
	Year      int
}
