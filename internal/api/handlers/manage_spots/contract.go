package manage_spots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

type SpotService interface {
	Create(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error)
	GetByID(ctx context.Context, id string) (*models.SpotResponse, error)
	List(ctx context.Context, req *models.ListSpotsRequest) (*models.SpotListResponse, error)
	Update(ctx context.Context, id string, req *models.UpdateSpotRequest) (*models.SpotResponse, error)
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
