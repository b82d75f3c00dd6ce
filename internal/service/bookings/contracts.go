package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByConfirmationNumber(ctx context.Context, kind domain.BookingKind, code string) (*domain.Booking, error)
	ConfirmationNumberExists(ctx context.Context, kind domain.BookingKind, code string) (bool, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	IsSpotActivelyBooked(ctx context.Context, spotID string, now time.Time) (bool, error)
	CountUnassignedMonthly(ctx context.Context, now time.Time) (int, error)
	GetServiceBookingsInRange(ctx context.Context, serviceIDs []string, start, end time.Time, status *domain.BookingStatus) ([]domain.ServiceBookingWindow, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// SpotRepository интерфейс репозитория парковочных мест
type SpotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error)
	CountUnbookedReserved(ctx context.Context, now time.Time) (int, error)
}

// VehicleServiceRepository интерфейс каталога услуг
type VehicleServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.VehicleService, error)
}

// FacilityProvider источник активной конфигурации и расписаний (кеш поверх репозитория)
type FacilityProvider interface {
	GetActive(ctx context.Context) (*domain.FacilityConfig, error)
	GetScheduleForDay(ctx context.Context, configID int64, day time.Weekday) (*domain.Schedule, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.Customer, error)
}

// ConfirmationGenerator источник кодов подтверждения
type ConfirmationGenerator interface {
	Next() string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
// Время возвращается в часовом поясе парковки
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
