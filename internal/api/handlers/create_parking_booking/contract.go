package create_parking_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	ExecuteIncremental(ctx context.Context, req *createBooking.IncrementalRequest) (*domain.Booking, error)
	ExecuteMonthly(ctx context.Context, req *createBooking.MonthlyRequest) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
