package reports

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingLister источник бронирований для отчета
type BookingLister interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
