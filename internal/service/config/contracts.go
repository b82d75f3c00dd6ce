package config

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигураций парковки
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.FacilityConfig) (*domain.FacilityConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.FacilityConfig, error)
	List(ctx context.Context) ([]*domain.FacilityConfig, error)
	Activate(ctx context.Context, id int64) error
	UpsertSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, configID int64, day time.Weekday) error
}

// ConfigCache кеш активной конфигурации
type ConfigCache interface {
	GetActive(ctx context.Context) (*domain.FacilityConfig, error)
	InvalidateActive(ctx context.Context)
	InvalidateSchedule(ctx context.Context, configID int64, day time.Weekday)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
