package domain

import "time"

// Customer is a registered account that may own bookings
type Customer struct {
	ID         int64
	AccountID  string
	Name       string
	IsEmployee bool
	CreatedAt  time.Time
}
