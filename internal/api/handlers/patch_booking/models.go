package patch_booking

import (
	"errors"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var errEmptyPatch = errors.New("parkingSpotId or status is required")

// PatchBookingRequest HTTP request model
// Оба поля опциональны, но хотя бы одно должно быть указано
type PatchBookingRequest struct {
	ParkingSpotID *string `json:"parkingSpotId,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// Parse проверяет запрос и разбирает статус
func (r *PatchBookingRequest) Parse() (*string, *domain.BookingStatus, error) {
	if r.ParkingSpotID == nil && r.Status == nil {
		return nil, nil, errEmptyPatch
	}

	var status *domain.BookingStatus
	if r.Status != nil {
		s, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return nil, nil, err
		}
		status = &s
	}

	return r.ParkingSpotID, status, nil
}
