package manage_facility_config

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
)

type ConfigService interface {
	Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error)
	Activate(ctx context.Context, id int64) (*models.ConfigResponse, error)
	UpsertSchedule(ctx context.Context, configID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, configID int64, day time.Weekday) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
