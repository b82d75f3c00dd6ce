package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	serviceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicleservice"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// DefaultConfirmationAttempts сколько раз генерировать новый код при совпадении
const DefaultConfirmationAttempts = 10

// Service движок бронирований: проверка, расчет стоимости и фиксация бронирований
type Service struct {
	bookingRepo          BookingRepository
	spotRepo             SpotRepository
	serviceRepo          VehicleServiceRepository
	facility             FacilityProvider
	customerRepo         CustomerRepository
	txManager            TransactionManager
	codes                ConfirmationGenerator
	timeProvider         TimeProvider
	location             *time.Location
	confirmationAttempts int
	logger               Logger
}

// NewService создает новый экземпляр движка бронирований
func NewService(
	bookingRepo BookingRepository,
	spotRepo SpotRepository,
	serviceRepo VehicleServiceRepository,
	facility FacilityProvider,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	codes ConfirmationGenerator,
	confirmationAttempts int,
	location *time.Location,
	logger Logger,
) *Service {
	if confirmationAttempts <= 0 {
		confirmationAttempts = DefaultConfirmationAttempts
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:          bookingRepo,
		spotRepo:             spotRepo,
		serviceRepo:          serviceRepo,
		facility:             facility,
		customerRepo:         customerRepo,
		txManager:            txManager,
		codes:                codes,
		timeProvider:         &RealTimeProvider{Location: location},
		location:             location,
		confirmationAttempts: confirmationAttempts,
		logger:               logger,
	}
}

// Now текущее время по часам движка в часовом поясе парковки
func (s *Service) Now() time.Time {
	return s.timeProvider.Now().In(s.location)
}

// ValidateIncrementalSpotBooking проверяет почасовое бронирование места и рассчитывает стоимость
// Возвращает несохраненное бронирование в статусе REQUESTED
func (s *Service) ValidateIncrementalSpotBooking(
	ctx context.Context,
	spotID string,
	start time.Time,
	durationMinutes int,
	vehicleType domain.VehicleType,
) (*domain.Booking, error) {
	s.logger.Info("ValidateIncrementalSpotBooking: spot=%s, start=%s, duration=%d, vehicle=%s",
		spotID, start.Format(time.RFC3339), durationMinutes, vehicleType)

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRequest)
	}

	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, spotRepo.ErrSpotNotFound) {
			s.logger.Warn("ValidateIncrementalSpotBooking: spot=%s not found", spotID)
			return nil, fmt.Errorf("%w: parking spot %s", ErrNotFound, spotID)
		}
		s.logger.Error("ValidateIncrementalSpotBooking: failed to get spot=%s: %v", spotID, err)
		return nil, fmt.Errorf("%w: failed to get spot: %v", ErrInternal, err)
	}

	// 1. Тип ТС должен совпадать с типом места
	if vehicleType != spot.VehicleType {
		s.logger.Warn("ValidateIncrementalSpotBooking: vehicle=%s does not fit spot=%s (%s)", vehicleType, spot.ID, spot.VehicleType)
		return nil, fmt.Errorf("%w: spot %s accepts %s vehicles only", ErrInvalidRequest, spot.ID, spot.VehicleType)
	}

	// 2. Места из пула месячной аренды и закрытые места не бронируются почасово
	if spot.Status == domain.SpotReserved {
		return nil, fmt.Errorf("%w: spot %s is reserved for monthly parking", ErrInvalidRequest, spot.ID)
	}
	if spot.Status == domain.SpotClosed {
		return nil, fmt.Errorf("%w: spot %s is closed", ErrInvalidRequest, spot.ID)
	}

	// 3. Место не должно быть занято сейчас
	if err := s.ensureSpotFree(ctx, spot.ID); err != nil {
		return nil, err
	}

	config, err := s.activeConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 4-5. Округляем вверх до целого числа интервалов и проверяем предел
	increments := config.Increments(durationMinutes)
	billed := increments * config.IncrementMinutes
	if billed > config.MaxIncrementMinutes {
		s.logger.Warn("ValidateIncrementalSpotBooking: billed=%d exceeds max=%d", billed, config.MaxIncrementMinutes)
		return nil, fmt.Errorf("%w: duration %d min exceeds maximum of %d min", ErrInvalidRequest, billed, config.MaxIncrementMinutes)
	}

	// 6-7. Диапазон должен укладываться в часы работы
	end := start.Add(time.Duration(billed) * time.Minute)
	if err := s.ensureWithinHours(ctx, config, start, end); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Kind:          domain.KindParking,
		Status:        domain.StatusRequested,
		StartTime:     start,
		EndTime:       end,
		Cost:          config.IncrementalCost(increments),
		ParkingSpotID: ptr.Ptr(spot.ID),
	}

	s.logger.Info("ValidateIncrementalSpotBooking: spot=%s billed=%d min, cost=%s", spot.ID, billed, booking.Cost.StringFixed(2))
	return booking, nil
}

// ValidateMonthlySpotBooking проверяет месячную аренду
// Место не назначается: его закрепляет администратор через PatchBooking
func (s *Service) ValidateMonthlySpotBooking(ctx context.Context, start time.Time, vehicleType domain.VehicleType) (*domain.Booking, error) {
	s.logger.Info("ValidateMonthlySpotBooking: start=%s, vehicle=%s", start.Format(time.RFC3339), vehicleType)

	// 1. Месячная аренда только для обычных ТС
	if vehicleType != domain.VehicleRegular {
		return nil, fmt.Errorf("%w: monthly parking is available for %s vehicles only", ErrInvalidRequest, domain.VehicleRegular)
	}

	// 2. В пуле должно быть хотя бы одно свободное место
	free, err := s.freeMonthlySpots(ctx)
	if err != nil {
		return nil, err
	}

	config, err := s.activeConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Часы работы для месячной аренды не проверяются
	booking := &domain.Booking{
		Kind:      domain.KindParking,
		Status:    domain.StatusRequested,
		StartTime: start,
		EndTime:   domain.AddMonth(start),
		Cost:      config.MonthlyFee,
	}

	s.logger.Info("ValidateMonthlySpotBooking: %d spots available, cost=%s", free, booking.Cost.StringFixed(2))
	return booking, nil
}

// ValidateServiceBooking проверяет бронирование услуги
func (s *Service) ValidateServiceBooking(ctx context.Context, serviceID string, start time.Time) (*domain.Booking, error) {
	s.logger.Info("ValidateServiceBooking: service=%s, start=%s", serviceID, start.Format(time.RFC3339))

	// 1. Услуга должна существовать
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("ValidateServiceBooking: service=%s not found", serviceID)
			return nil, fmt.Errorf("%w: unknown service %q", ErrInvalidRequest, serviceID)
		}
		s.logger.Error("ValidateServiceBooking: failed to get service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 2-3. Слот не должен пересекаться с подтвержденными бронированиями услуги
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)
	if err := s.ensureServiceSlotFree(ctx, service.ID, start, end); err != nil {
		return nil, err
	}

	// 4. Часы работы
	config, err := s.activeConfig(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ensureWithinHours(ctx, config, start, end); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Kind:             domain.KindService,
		Status:           domain.StatusRequested,
		StartTime:        start,
		EndTime:          end,
		Cost:             service.Fee,
		VehicleServiceID: ptr.Ptr(service.ID),
		DurationMinutes:  service.DurationMinutes,
	}

	s.logger.Info("ValidateServiceBooking: service=%s slot %s-%s, cost=%s",
		service.ID, start.Format(domain.TimeFormat), end.Format(domain.TimeFormat), booking.Cost.StringFixed(2))
	return booking, nil
}

func (s *Service) ensureSpotFree(ctx context.Context, spotID string) error {
	busy, err := s.bookingRepo.IsSpotActivelyBooked(ctx, spotID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ensureSpotFree: failed to check spot=%s: %v", spotID, err)
		return fmt.Errorf("%w: failed to check spot: %v", ErrInternal, err)
	}
	if busy {
		s.logger.Warn("ensureSpotFree: spot=%s is actively booked", spotID)
		return fmt.Errorf("%w: spot %s is already booked", ErrConflict, spotID)
	}
	return nil
}

func (s *Service) ensureServiceSlotFree(ctx context.Context, serviceID string, start, end time.Time) error {
	existing, err := s.bookingRepo.GetServiceBookingsInRange(ctx, []string{serviceID}, start, end, ptr.Ptr(domain.StatusConfirmed))
	if err != nil {
		s.logger.Error("ensureServiceSlotFree: failed to get bookings for service=%s: %v", serviceID, err)
		return fmt.Errorf("%w: failed to get service bookings: %v", ErrInternal, err)
	}

	requested := domain.DateRange{Start: start, End: end}
	for _, w := range existing {
		if requested.Overlaps(domain.DateRange{Start: w.StartTime, End: w.EndTime}) {
			s.logger.Warn("ensureServiceSlotFree: service=%s slot overlaps booking=%s", serviceID, w.BookingID)
			return fmt.Errorf("%w: service %s is already booked for this time", ErrConflict, serviceID)
		}
	}
	return nil
}

// freeMonthlySpots считает места RESERVED без активного бронирования
// за вычетом оплаченных месячных аренд, которым место еще не назначено
func (s *Service) freeMonthlySpots(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	reserved, err := s.spotRepo.CountUnbookedReserved(ctx, now)
	if err != nil {
		s.logger.Error("freeMonthlySpots: failed to count reserved spots: %v", err)
		return 0, fmt.Errorf("%w: failed to count reserved spots: %v", ErrInternal, err)
	}

	pending, err := s.bookingRepo.CountUnassignedMonthly(ctx, now)
	if err != nil {
		s.logger.Error("freeMonthlySpots: failed to count unassigned monthly bookings: %v", err)
		return 0, fmt.Errorf("%w: failed to count monthly bookings: %v", ErrInternal, err)
	}

	free := reserved - pending
	if free <= 0 {
		s.logger.Warn("freeMonthlySpots: reserved=%d, unassigned monthly=%d", reserved, pending)
		return 0, fmt.Errorf("%w: no monthly spots available", ErrConflict)
	}
	return free, nil
}

// ensureWithinHours сверяет диапазон с расписанием в часовом поясе парковки
func (s *Service) ensureWithinHours(ctx context.Context, config *domain.FacilityConfig, start, end time.Time) error {
	start, end = start.In(s.location), end.In(s.location)

	schedule, err := s.facility.GetScheduleForDay(ctx, config.ID, start.Weekday())
	if err != nil && !errors.Is(err, facilityRepo.ErrScheduleNotFound) {
		s.logger.Error("ensureWithinHours: failed to get schedule for %s: %v", start.Weekday(), err)
		return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if domain.IsOutsideHours(schedule, start, end) {
		s.logger.Warn("ensureWithinHours: %s-%s is outside opening hours", start.Format(time.RFC3339), end.Format(time.RFC3339))
		return fmt.Errorf("%w: requested time is outside opening hours", ErrInvalidRequest)
	}
	return nil
}

func (s *Service) activeConfig(ctx context.Context) (*domain.FacilityConfig, error) {
	config, err := s.facility.GetActive(ctx)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrNoActiveConfig) {
			s.logger.Error("activeConfig: no active facility config")
			return nil, fmt.Errorf("%w: no active facility config", ErrInternal)
		}
		s.logger.Error("activeConfig: failed to get active config: %v", err)
		return nil, fmt.Errorf("%w: failed to get active config: %v", ErrInternal, err)
	}
	return config, nil
}
