package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-ParkingService/pkg/confirmation"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if err := validateBookingID(id); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

// GetByConfirmationNumber получает бронирование по коду подтверждения без учета регистра
func (s *Service) GetByConfirmationNumber(ctx context.Context, kind domain.BookingKind, code string) (*domain.Booking, error) {
	normalized := domain.NormalizeConfirmationNumber(code)
	s.logger.Info("GetByConfirmationNumber: kind=%s, code=%s", kind, normalized)

	if !confirmation.IsValid(normalized) {
		return nil, fmt.Errorf("%w: confirmation number must be %d letters or digits", ErrInvalidRequest, confirmation.Length)
	}

	booking, err := s.bookingRepo.GetByConfirmationNumber(ctx, kind, normalized)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByConfirmationNumber: code=%s not found", normalized)
			return nil, fmt.Errorf("%w: booking with confirmation number %s", ErrNotFound, normalized)
		}
		s.logger.Error("GetByConfirmationNumber: repository error for code=%s: %v", normalized, err)
		return nil, fmt.Errorf("%w: GetByConfirmationNumber - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}

// GetByStatus получает бронирования типа kind в статусе status
// При kind == nil возвращаются бронирования обоих типов
func (s *Service) GetByStatus(ctx context.Context, kind *domain.BookingKind, status domain.BookingStatus) ([]*domain.Booking, error) {
	s.logger.Info("GetByStatus: kind=%v, status=%s", kind, status)
	return s.List(ctx, domain.BookingsFilter{Kind: kind, Status: &status})
}

// List получает бронирования по произвольному фильтру
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return bookings, nil
}

// GetCustomerBookings получает активные в данный момент бронирования клиента
func (s *Service) GetCustomerBookings(ctx context.Context, accountID string, kind *domain.BookingKind) ([]*domain.Booking, error) {
	s.logger.Info("GetCustomerBookings: account=%s, kind=%v", accountID, kind)

	customer, err := s.customerRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetCustomerBookings: account=%s has no customer profile", accountID)
			return nil, fmt.Errorf("%w: customer for account %s", ErrNotFound, accountID)
		}
		s.logger.Error("GetCustomerBookings: failed to get customer for account=%s: %v", accountID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	return s.List(ctx, domain.BookingsFilter{
		Kind:       kind,
		CustomerID: &customer.ID,
		ActiveAt:   ptr.Ptr(s.timeProvider.Now()),
	})
}

// GetServiceBookingsInRange возвращает проекции бронирований услуг, пересекающихся с [start, end]
func (s *Service) GetServiceBookingsInRange(ctx context.Context, serviceIDs []string, start, end time.Time) ([]domain.ServiceBookingWindow, error) {
	s.logger.Info("GetServiceBookingsInRange: services=%v, range=%s..%s", serviceIDs, start.Format(time.RFC3339), end.Format(time.RFC3339))

	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service id is required", ErrInvalidRequest)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end is before start", ErrInvalidRequest)
	}

	windows, err := s.bookingRepo.GetServiceBookingsInRange(ctx, serviceIDs, start, end, nil)
	if err != nil {
		s.logger.Error("GetServiceBookingsInRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetServiceBookingsInRange - repository error: %v", ErrInternal, err)
	}

	return windows, nil
}

func validateBookingID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: booking id must be a UUID", ErrInvalidRequest)
	}
	return nil
}
