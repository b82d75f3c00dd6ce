package spots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

// Service сервис управления парковочными местами
type Service struct {
	spotRepo SpotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(spotRepo SpotRepository, logger Logger) *Service {
	return &Service{
		spotRepo: spotRepo,
		logger:   logger,
	}
}

// Create создает парковочное место
func (s *Service) Create(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error) {
	s.logger.Info("Create: creating spot id=%s, vehicle=%s", req.ID, req.VehicleType)

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	if !domain.IsValidSpotID(id) {
		return nil, fmt.Errorf("%w: spot id must be an optional letter followed by 3 digits", ErrInvalidInput)
	}

	vehicleType, err := domain.ParseVehicleType(req.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.SpotOpen
	if req.Status != "" {
		if status, err = domain.ParseSpotStatus(req.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if len(req.Message) > domain.MaxSpotMessageLength {
		return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxSpotMessageLength)
	}

	created, err := s.spotRepo.Create(ctx, &domain.ParkingSpot{
		ID:          id,
		VehicleType: vehicleType,
		Status:      status,
		Message:     req.Message,
	})
	if err != nil {
		if errors.Is(err, spotRepo.ErrDuplicateSpot) {
			s.logger.Warn("Create: spot id=%s already exists", id)
			return nil, ErrSpotAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created spot id=%s", created.ID)
	return models.FromDomainSpot(created), nil
}

// GetByID получает место по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.SpotResponse, error) {
	spot, err := s.spotRepo.GetByID(ctx, strings.ToUpper(id))
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("GetByID: spot id=%s not found", id)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("GetByID: repository error for spot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpot(spot), nil
}

// List получает места по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSpotsRequest) (*models.SpotListResponse, error) {
	var filter domain.SpotsFilter

	if req.Status != nil {
		status, err := domain.ParseSpotStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}
	if req.VehicleType != nil {
		vt, err := domain.ParseVehicleType(*req.VehicleType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.VehicleType = &vt
	}

	spots, err := s.spotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d spots", len(spots))
	return models.FromDomainSpotList(spots), nil
}

// Update меняет статус и/или сообщение места
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateSpotRequest) (*models.SpotResponse, error) {
	s.logger.Info("Update: updating spot id=%s", id)

	spot, err := s.spotRepo.GetByID(ctx, strings.ToUpper(id))
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("Update: spot id=%s not found", id)
			return nil, ErrSpotNotFound
		}
		s.logger.Error("Update: repository error for spot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Status != nil {
		if spot.Status, err = domain.ParseSpotStatus(*req.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if req.Message != nil {
		if len(*req.Message) > domain.MaxSpotMessageLength {
			return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxSpotMessageLength)
		}
		spot.Message = *req.Message
	}

	updated, err := s.spotRepo.Update(ctx, spot)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			return nil, ErrSpotNotFound
		}
		s.logger.Error("Update: repository error for spot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: spot id=%s is now %s", updated.ID, updated.Status)
	return models.FromDomainSpot(updated), nil
}

// Delete удаляет место; места с бронированиями не удаляются
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting spot id=%s", id)

	if err := s.spotRepo.Delete(ctx, strings.ToUpper(id)); err != nil {
		switch {
		case errors.Is(err, spotRepo.ErrSpotNotFound):
			s.logger.Warn("Delete: spot id=%s not found", id)
			return ErrSpotNotFound
		case errors.Is(err, spotRepo.ErrSpotInUse):
			s.logger.Warn("Delete: spot id=%s has bookings", id)
			return ErrSpotInUse
		}
		s.logger.Error("Delete: repository error for spot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}
