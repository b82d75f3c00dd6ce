package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией парковки: тарифы и часы работы
type Service struct {
	configRepo ConfigRepository
	cache      ConfigCache
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	cache ConfigCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		cache:      cache,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает новую неактивную конфигурацию вместе с расписаниями
func (s *Service) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Create: creating config increment=%d min, max=%d min, schedules=%d",
		req.IncrementMinutes, req.MaxIncrementMinutes, len(req.Schedules))

	// 1. Разбираем и валидируем входные данные
	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Create: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.validateConfig(config); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Конфигурация и расписания вставляются атомарно
	var created *domain.FacilityConfig
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		c, err := s.configRepo.Create(txCtx, config)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created config id=%d", created.ID)
	return models.FromDomainConfig(created), nil
}

// GetByID получает конфигурацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetByID: fetching config id=%d", id)

	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrConfigNotFound) {
			s.logger.Warn("GetByID: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetByID: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// GetActive получает действующую конфигурацию (через кеш)
func (s *Service) GetActive(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetActive: fetching active config")

	config, err := s.cache.GetActive(ctx)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrNoActiveConfig) {
			s.logger.Warn("GetActive: no active config")
			return nil, ErrNoActiveConfig
		}
		s.logger.Error("GetActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// List получает все конфигурации
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	s.logger.Info("List: fetching configs")

	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d configs", len(configs))
	return models.FromDomainConfigList(configs), nil
}

// Activate делает конфигурацию единственной активной
// Выполняется в сериализуемой транзакции, после фиксации кеш сбрасывается
func (s *Service) Activate(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	s.logger.Info("Activate: activating config id=%d", id)

	var activated *domain.FacilityConfig
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.configRepo.Activate(txCtx, id); err != nil {
			return err
		}
		c, err := s.configRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		activated = c
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, facilityRepo.ErrConfigNotFound):
			s.logger.Warn("Activate: config id=%d not found", id)
			return nil, ErrConfigNotFound
		case errors.Is(err, facilityRepo.ErrActiveConflict):
			s.logger.Warn("Activate: concurrent activation of config id=%d", id)
			return nil, ErrActivationConflict
		}
		s.logger.Error("Activate: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Activate - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateActive(ctx)

	s.logger.Info("Activate: config id=%d is now active", id)
	return models.FromDomainConfig(activated), nil
}

// UpsertSchedule создает или заменяет часы работы на день недели
func (s *Service) UpsertSchedule(ctx context.Context, configID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpsertSchedule: config=%d, day=%s, %s-%s", configID, req.Day, req.StartTime, req.EndTime)

	schedule, err := req.ToDomainSchedule(configID)
	if err != nil {
		s.logger.Warn("UpsertSchedule: invalid schedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpsertSchedule: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.configRepo.UpsertSchedule(ctx, schedule)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrConfigNotFound) {
			s.logger.Warn("UpsertSchedule: config id=%d not found", configID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("UpsertSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertSchedule - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateSchedule(ctx, configID, saved.Day)

	resp := models.FromDomainSchedule(saved)
	return &resp, nil
}

// DeleteSchedule удаляет часы работы на день недели: парковка в этот день закрыта
func (s *Service) DeleteSchedule(ctx context.Context, configID int64, day time.Weekday) error {
	s.logger.Info("DeleteSchedule: config=%d, day=%s", configID, day)

	if err := s.configRepo.DeleteSchedule(ctx, configID, day); err != nil {
		if errors.Is(err, facilityRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteSchedule: config=%d has no schedule for %s", configID, day)
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error: %v", err)
		return fmt.Errorf("%w: DeleteSchedule - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateSchedule(ctx, configID, day)
	return nil
}

// validateConfig валидирует параметры конфигурации
func (s *Service) validateConfig(c *domain.FacilityConfig) error {
	if c.IncrementMinutes <= 0 || c.IncrementMinutes > domain.MaxIncrementMinutesCap {
		return fmt.Errorf("%w: incrementMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxIncrementMinutesCap)
	}

	if c.MaxIncrementMinutes < c.IncrementMinutes || c.MaxIncrementMinutes > domain.MaxIncrementMinutesCap {
		return fmt.Errorf("%w: maxIncrementMinutes must be between incrementMinutes and %d", ErrInvalidInput, domain.MaxIncrementMinutesCap)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
