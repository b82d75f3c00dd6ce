package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingEngine движок проверки и фиксации бронирований
type BookingEngine interface {
	ValidateIncrementalSpotBooking(ctx context.Context, spotID string, start time.Time, durationMinutes int, vehicleType domain.VehicleType) (*domain.Booking, error)
	ValidateMonthlySpotBooking(ctx context.Context, start time.Time, vehicleType domain.VehicleType) (*domain.Booking, error)
	ValidateServiceBooking(ctx context.Context, serviceID string, start time.Time) (*domain.Booking, error)
	SaveBooking(ctx context.Context, booking *domain.Booking, accountID *string, licensePlate string) (*domain.Booking, error)
	Now() time.Time
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, isEmployee bool, accountNumber string, amount decimal.Decimal) (decimal.Decimal, error)
}

// Metrics счетчики бронирований и платежей
type Metrics interface {
	IncBookingCreated(kind, status string)
	IncBookingRejected(kind, reason string)
	IncPayment(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
