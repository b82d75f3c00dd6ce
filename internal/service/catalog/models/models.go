package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	DisplayName     string          `json:"displayName"`
	DurationMinutes int             `json:"durationMinutes"`
	Fee             decimal.Decimal `json:"fee"`
}

// UpdateServiceRequest частичное обновление услуги
type UpdateServiceRequest struct {
	DisplayName     *string          `json:"displayName,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Fee             *decimal.Decimal `json:"fee,omitempty"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"displayName"`
	DurationMinutes int       `json:"durationMinutes"`
	Fee             string    `json:"fee"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ApplyToService применяет непустые поля к услуге
func (r *UpdateServiceRequest) ApplyToService(s *domain.VehicleService) {
	if r.DisplayName != nil {
		s.DisplayName = *r.DisplayName
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.Fee != nil {
		s.Fee = *r.Fee
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.VehicleService) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		DisplayName:     s.DisplayName,
		DurationMinutes: s.DurationMinutes,
		Fee:             s.Fee.StringFixed(2),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.VehicleService) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
