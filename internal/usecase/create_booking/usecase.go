package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

// Метки метрик по типу бронирования
const (
	kindIncremental = "incremental"
	kindMonthly     = "monthly"
	kindService     = "service"
)

// UseCase use case создания бронирования: проверка, оплата, фиксация
type UseCase struct {
	engine  BookingEngine
	payment PaymentGateway
	metrics Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine BookingEngine,
	payment PaymentGateway,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:  engine,
		payment: payment,
		metrics: metrics,
		logger:  logger,
	}
}

// ExecuteIncremental бронирует место почасово, начиная с текущего момента
func (uc *UseCase) ExecuteIncremental(ctx context.Context, req *IncrementalRequest) (*domain.Booking, error) {
	uc.logger.Info("CreateIncrementalBooking: spot=%s, duration=%d, vehicle=%s", req.ParkingSpotID, req.DurationMinutes, req.VehicleType)

	vehicleType, err := validateIncremental(req)
	if err != nil {
		uc.logger.Warn("CreateIncrementalBooking: validation failed: %v", err)
		return nil, uc.reject(kindIncremental, err)
	}

	booking, err := uc.engine.ValidateIncrementalSpotBooking(ctx, req.ParkingSpotID, uc.engine.Now(), req.DurationMinutes, vehicleType)
	if err != nil {
		uc.logger.Warn("CreateIncrementalBooking: rejected by engine: %v", err)
		return nil, uc.reject(kindIncremental, err)
	}

	return uc.payAndSave(ctx, kindIncremental, booking, &req.Payer, req.LicensePlate)
}

// ExecuteMonthly оформляет месячную аренду; место назначается позже администратором
func (uc *UseCase) ExecuteMonthly(ctx context.Context, req *MonthlyRequest) (*domain.Booking, error) {
	uc.logger.Info("CreateMonthlyBooking: vehicle=%s, start=%v", req.VehicleType, req.StartDate)

	vehicleType, err := validateMonthly(req)
	if err != nil {
		uc.logger.Warn("CreateMonthlyBooking: validation failed: %v", err)
		return nil, uc.reject(kindMonthly, err)
	}

	today := startOfDay(uc.engine.Now())
	start := today
	if req.StartDate != nil {
		start = startOfDay(*req.StartDate)
		if start.Before(today) {
			uc.logger.Warn("CreateMonthlyBooking: start %s is before today", start.Format(domain.DateFormat))
			return nil, uc.reject(kindMonthly, fmt.Errorf("%w: %w", bookings.ErrInvalidRequest, ErrStartInPast))
		}
	}

	booking, err := uc.engine.ValidateMonthlySpotBooking(ctx, start, vehicleType)
	if err != nil {
		uc.logger.Warn("CreateMonthlyBooking: rejected by engine: %v", err)
		return nil, uc.reject(kindMonthly, err)
	}

	return uc.payAndSave(ctx, kindMonthly, booking, &req.Payer, req.LicensePlate)
}

// ExecuteService бронирует услугу на указанное время
func (uc *UseCase) ExecuteService(ctx context.Context, req *ServiceRequest) (*domain.Booking, error) {
	uc.logger.Info("CreateServiceBooking: service=%s, start=%s", req.ServiceID, req.StartDate.Format(domain.DateFormat+" "+domain.TimeFormat))

	if err := validateService(req, uc.engine.Now()); err != nil {
		uc.logger.Warn("CreateServiceBooking: validation failed: %v", err)
		return nil, uc.reject(kindService, err)
	}

	booking, err := uc.engine.ValidateServiceBooking(ctx, req.ServiceID, req.StartDate)
	if err != nil {
		uc.logger.Warn("CreateServiceBooking: rejected by engine: %v", err)
		return nil, uc.reject(kindService, err)
	}

	return uc.payAndSave(ctx, kindService, booking, &req.Payer, req.LicensePlate)
}

// payAndSave списывает стоимость и фиксирует бронирование
// При отказе платежа ничего не сохраняется
func (uc *UseCase) payAndSave(ctx context.Context, kind string, booking *domain.Booking, payer *Payer, licensePlate string) (*domain.Booking, error) {
	charged, err := uc.payment.Charge(ctx, payer.IsEmployee, payer.CreditCardNumber, booking.Cost)
	if err != nil {
		mapped := mapPaymentError(err)
		uc.metrics.IncPayment(bookings.KindOf(mapped))
		uc.logger.Warn("%s: charge of %s failed: %v", kind, booking.Cost.StringFixed(2), err)
		return nil, uc.reject(kind, mapped)
	}
	uc.metrics.IncPayment("APPROVED")

	if !charged.Equal(booking.Cost) {
		uc.logger.Warn("%s: gateway charged %s, expected %s", kind, charged.StringFixed(2), booking.Cost.StringFixed(2))
	}

	booking.MarkPaid()

	saved, err := uc.engine.SaveBooking(ctx, booking, payer.AccountID, licensePlate)
	if err != nil {
		// Платеж уже прошел: возврат выполняется вне сервиса по журналу
		uc.logger.Error("%s: charged %s but commit failed: %v", kind, charged.StringFixed(2), err)
		return nil, uc.reject(kind, err)
	}

	uc.metrics.IncBookingCreated(kind, string(saved.Status))
	uc.logger.Info("%s: booking id=%s confirmed as %s, status=%s", kind, saved.ID, saved.ConfirmationNumber, saved.Status)
	return saved, nil
}

func (uc *UseCase) reject(kind string, err error) error {
	uc.metrics.IncBookingRejected(kind, bookings.KindOf(err))
	return err
}

// mapPaymentError сохраняет ошибку шлюза и добавляет тип ошибки движка
func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, payment.ErrPaymentRejected):
		return fmt.Errorf("%w: %w", bookings.ErrPaymentRejected, err)
	case errors.Is(err, payment.ErrUnauthorized):
		return fmt.Errorf("%w: %w", bookings.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %w: %v", bookings.ErrInternal, ErrChargeFailed, err)
	}
}
