package devices

import "time"

type Device struct {
	ID         int64
	Email      string
	Name       string
	PowerUsage float64 // rated power, watts
	CreatedAt  time.Time
}
