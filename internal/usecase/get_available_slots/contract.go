package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetServiceBookingsInRange получает проекции бронирований услуг, пересекающихся с [start, end]
	GetServiceBookingsInRange(ctx context.Context, serviceIDs []string, start, end time.Time, status *domain.BookingStatus) ([]domain.ServiceBookingWindow, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.VehicleService, error)
}

// FacilityProvider источник действующей конфигурации и расписаний
type FacilityProvider interface {
	GetActive(ctx context.Context) (*domain.FacilityConfig, error)
	GetScheduleForDay(ctx context.Context, configID int64, day time.Weekday) (*domain.Schedule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
