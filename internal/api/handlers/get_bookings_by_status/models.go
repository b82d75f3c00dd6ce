package get_bookings_by_status

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Query разобранные query параметры
type Query struct {
	Kind   *domain.BookingKind
	Status domain.BookingStatus
}

// ParseQuery разбирает query параметры; status обязателен, kind опционален
func ParseQuery(statusStr, kindStr string) (*Query, error) {
	if statusStr == "" {
		return nil, fmt.Errorf("status is required")
	}

	status, err := domain.ParseBookingStatus(statusStr)
	if err != nil {
		return nil, err
	}

	q := &Query{Status: status}
	if kindStr != "" {
		kind, err := domain.ParseBookingKind(kindStr)
		if err != nil {
			return nil, err
		}
		q.Kind = &kind
	}

	return q, nil
}
