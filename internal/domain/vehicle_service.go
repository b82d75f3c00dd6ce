package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VehicleService is a catalog entry for a fixed-duration vehicle service
type VehicleService struct {
	ID              string
	DisplayName     string
	DurationMinutes int
	Fee             decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceIDFromName derives a service id from its display name: "Car Wash" -> "car-wash"
func ServiceIDFromName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
