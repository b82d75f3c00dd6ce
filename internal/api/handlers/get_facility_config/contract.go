package get_facility_config

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
)

type ConfigService interface {
	GetActive(ctx context.Context) (*models.ConfigResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error)
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
