package facility

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Repository источник данных за кешем
type Repository interface {
	GetActive(ctx context.Context) (*domain.FacilityConfig, error)
	GetScheduleForDay(ctx context.Context, configID int64, day time.Weekday) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
