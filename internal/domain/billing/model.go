package billing

import "time"

const (
	StatusUnpaid = "Unpaid"
	StatusPaid   = "Paid"
)

// Bill is unique per (email, month, year); the schema enforces it.
type Bill struct {
	ID          int64
	Email       string
	Month       string
	Year        int
	Units       float64
	Amount      float64
	Status      string
	GeneratedAt time.Time
}
