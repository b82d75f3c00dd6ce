package manage_spots

import (
	"net/url"

	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

// ToListRequest формирует фильтр из query параметров status и vehicleType
func ToListRequest(values url.Values) *models.ListSpotsRequest {
	req := &models.ListSpotsRequest{}
	if status := values.Get("status"); status != "" {
		req.Status = &status
	}
	if vehicleType := values.Get("vehicleType"); vehicleType != "" {
		req.VehicleType = &vehicleType
	}
	return req
}
