package manage_facility_config

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
)

// ScheduleBodyRequest HTTP request model; день недели берется из пути
type ScheduleBodyRequest struct {
	StartTime string `json:"startTime"` // "08:00"
	EndTime   string `json:"endTime"`   // "20:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *ScheduleBodyRequest) ToServiceRequest(day string) *models.ScheduleRequest {
	return &models.ScheduleRequest{
		Day:       day,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
