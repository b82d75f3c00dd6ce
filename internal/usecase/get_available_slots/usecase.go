package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	serviceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicleservice"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// UseCase use case для получения слотов услуги на дату
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	facility     FacilityProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	facility FacilityProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		facility:     facility,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := startOfDay(req.Date)

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:        date,
		ServiceID:   service.ID,
		ServiceName: service.DisplayName,
		Slots:       []domain.AvailableSlot{},
	}

	// 3. Получаем расписание на день недели
	config, err := uc.facility.GetActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get active config: %v", err)
		return nil, fmt.Errorf("%w: failed to get active config: %v", ErrInternal, err)
	}

	schedule, err := uc.facility.GetScheduleForDay(ctx, config.ID, date.Weekday())
	if err != nil {
		if errors.Is(err, facilityRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: facility is closed on %s", date.Weekday())
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	resp.Slots = generateTimeSlots(schedule, date, service.DurationMinutes, now)
	if len(resp.Slots) == 0 {
		return resp, nil
	}

	// 5. Подтвержденные бронирования услуги в пределах рабочего дня
	windows, err := uc.bookingRepo.GetServiceBookingsInRange(ctx, []string{service.ID},
		schedule.OpenAt(date), schedule.CloseAt(date), ptr.Ptr(domain.StatusConfirmed))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	markTakenSlots(resp.Slots, windows)

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%s, date=%s, %d bookings",
		len(resp.Slots), service.ID, date.Format(domain.DateFormat), len(windows))

	return resp, nil
}
