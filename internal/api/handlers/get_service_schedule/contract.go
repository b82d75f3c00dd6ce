package get_service_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type BookingService interface {
	GetServiceBookingsInRange(ctx context.Context, serviceIDs []string, start, end time.Time) ([]domain.ServiceBookingWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
