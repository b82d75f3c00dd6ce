package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateSpotRequest запрос на создание парковочного места
type CreateSpotRequest struct {
	ID          string `json:"id"`          // A035, 101
	VehicleType string `json:"vehicleType"` // REGULAR | LARGE
	Status      string `json:"status"`      // OPEN по умолчанию
	Message     string `json:"message,omitempty"`
}

// UpdateSpotRequest частичное обновление места
type UpdateSpotRequest struct {
	Status  *string `json:"status,omitempty"`
	Message *string `json:"message,omitempty"`
}

// ListSpotsRequest фильтр списка мест
type ListSpotsRequest struct {
	Status      *string
	VehicleType *string
}

// SpotResponse ответ с данными места
type SpotResponse struct {
	ID          string    `json:"id"`
	VehicleType string    `json:"vehicleType"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpotListResponse ответ со списком мест
type SpotListResponse struct {
	Spots []SpotResponse `json:"spots"`
}

// FromDomainSpot конвертирует domain модель в DTO
func FromDomainSpot(s *domain.ParkingSpot) *SpotResponse {
	if s == nil {
		return nil
	}
	return &SpotResponse{
		ID:          s.ID,
		VehicleType: string(s.VehicleType),
		Status:      string(s.Status),
		Message:     s.Message,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSpotList конвертирует список мест в DTO
func FromDomainSpotList(spots []*domain.ParkingSpot) *SpotListResponse {
	resp := &SpotListResponse{Spots: make([]SpotResponse, 0, len(spots))}
	for _, s := range spots {
		resp.Spots = append(resp.Spots, *FromDomainSpot(s))
	}
	return resp
}
