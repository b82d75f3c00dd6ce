package catalog

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.VehicleService) (*domain.VehicleService, error)
	GetByID(ctx context.Context, id string) (*domain.VehicleService, error)
	List(ctx context.Context) ([]*domain.VehicleService, error)
	Update(ctx context.Context, service *domain.VehicleService) (*domain.VehicleService, error)
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
