package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Request модели

// ScheduleRequest часы работы на один день недели
type ScheduleRequest struct {
	Day       string `json:"day"`       // monday, Tue, ...
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// CreateConfigRequest запрос на создание конфигурации парковки
type CreateConfigRequest struct {
	MonthlyFee          decimal.Decimal   `json:"monthlyFee"`
	IncrementFee        decimal.Decimal   `json:"incrementFee"`
	IncrementMinutes    int               `json:"incrementMinutes"`
	MaxIncrementMinutes int               `json:"maxIncrementMinutes"`
	Schedules           []ScheduleRequest `json:"schedules"`
}

// Response модели

// ScheduleResponse часы работы на день
type ScheduleResponse struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConfigResponse ответ с данными конфигурации
type ConfigResponse struct {
	ID                  int64              `json:"id"`
	MonthlyFee          string             `json:"monthlyFee"`
	IncrementFee        string             `json:"incrementFee"`
	IncrementMinutes    int                `json:"incrementMinutes"`
	MaxIncrementMinutes int                `json:"maxIncrementMinutes"`
	IsActive            bool               `json:"isActive"`
	Schedules           []ScheduleResponse `json:"schedules"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// ToDomainSchedule разбирает день и время расписания
func (r *ScheduleRequest) ToDomainSchedule(configID int64) (*domain.Schedule, error) {
	day, err := domain.ParseWeekday(r.Day)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	return &domain.Schedule{ConfigID: configID, Day: day, StartTime: start, EndTime: end}, nil
}

// ToDomainConfig конвертирует CreateConfigRequest в domain модель
func (r *CreateConfigRequest) ToDomainConfig() (*domain.FacilityConfig, error) {
	config := &domain.FacilityConfig{
		MonthlyFee:          r.MonthlyFee,
		IncrementFee:        r.IncrementFee,
		IncrementMinutes:    r.IncrementMinutes,
		MaxIncrementMinutes: r.MaxIncrementMinutes,
		Schedules:           make([]domain.Schedule, 0, len(r.Schedules)),
	}
	for i := range r.Schedules {
		s, err := r.Schedules[i].ToDomainSchedule(0)
		if err != nil {
			return nil, err
		}
		config.Schedules = append(config.Schedules, *s)
	}
	return config, nil
}

// FromDomainSchedule конвертирует расписание в DTO
func FromDomainSchedule(s *domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		Day:       s.Day.String(),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
	}
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.FacilityConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ID:                  c.ID,
		MonthlyFee:          c.MonthlyFee.StringFixed(2),
		IncrementFee:        c.IncrementFee.StringFixed(2),
		IncrementMinutes:    c.IncrementMinutes,
		MaxIncrementMinutes: c.MaxIncrementMinutes,
		IsActive:            c.IsActive,
		Schedules:           make([]ScheduleResponse, 0, len(c.Schedules)),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	for i := range c.Schedules {
		resp.Schedules = append(resp.Schedules, FromDomainSchedule(&c.Schedules[i]))
	}
	return resp
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.FacilityConfig) *ConfigListResponse {
	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, 0, len(configs)),
	}

	for _, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs = append(resp.Configs, *configResp)
		}
	}

	return resp
}
