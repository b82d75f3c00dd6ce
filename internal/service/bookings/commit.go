package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/customer"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
)

// SaveBooking фиксирует оплаченное бронирование
// Повторная проверка занятости и вставка выполняются в одной сериализуемой транзакции
// Исходный booking не изменяется, возвращается сохраненная копия
func (s *Service) SaveBooking(ctx context.Context, booking *domain.Booking, accountID *string, licensePlate string) (*domain.Booking, error) {
	s.logger.Info("SaveBooking: kind=%s, start=%s", booking.Kind, booking.StartTime.Format("2006-01-02 15:04"))

	if booking.Status != domain.StatusPaid {
		s.logger.Warn("SaveBooking: booking is %s, expected %s", booking.Status, domain.StatusPaid)
		return nil, fmt.Errorf("%w: booking must be paid before commit", ErrInvalidRequest)
	}

	plate := strings.TrimSpace(licensePlate)
	if plate == "" || len(plate) > domain.MaxLicensePlateLength {
		return nil, fmt.Errorf("%w: license plate must be 1-%d characters", ErrInvalidRequest, domain.MaxLicensePlateLength)
	}

	record := *booking
	record.LicensePlate = plate
	if record.HasTarget() {
		record.Status = domain.StatusConfirmed
	}

	var saved *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Повторная проверка под блокировкой: между валидацией и оплатой ресурс мог быть занят
		if err := s.recheckTarget(txCtx, &record); err != nil {
			return err
		}

		if accountID != nil && *accountID != "" {
			customer, err := s.customerRepo.GetByAccountID(txCtx, *accountID)
			switch {
			case err == nil:
				record.CustomerID = &customer.ID
			case errors.Is(err, customerRepo.ErrCustomerNotFound):
				s.logger.Info("SaveBooking: account=%s has no customer profile, saving anonymously", *accountID)
			default:
				s.logger.Error("SaveBooking: failed to get customer for account=%s: %v", *accountID, err)
				return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
			}
		}

		code, err := s.issueConfirmationNumber(txCtx, record.Kind)
		if err != nil {
			return err
		}
		record.ConfirmationNumber = code

		created, err := s.bookingRepo.Create(txCtx, &record)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrDuplicateConfirmation):
				return fmt.Errorf("%w: confirmation number collision", ErrConflict)
			case errors.Is(err, bookingRepo.ErrReferenceNotFound):
				return fmt.Errorf("%w: booked resource no longer exists", ErrNotFound)
			}
			return err
		}

		saved = created
		return nil
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			s.logger.Warn("SaveBooking: concurrent booking detected: %v", err)
			return nil, fmt.Errorf("%w: resource was booked concurrently", ErrConflict)
		}
		if isKindError(err) {
			return nil, err
		}
		s.logger.Error("SaveBooking: failed to save booking: %v", err)
		return nil, fmt.Errorf("%w: SaveBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveBooking: saved booking id=%s, confirmation=%s, status=%s", saved.ID, saved.ConfirmationNumber, saved.Status)
	return saved, nil
}

// PatchBooking административно меняет место и/или статус бронирования
// Новое место проверяется на занятость; статус перезаписывается без проверки переходов
// Назначение места на оплаченную месячную аренду без явного статуса переводит её в CONFIRMED
func (s *Service) PatchBooking(ctx context.Context, id string, newSpotID *string, newStatus *domain.BookingStatus) (*domain.Booking, error) {
	s.logger.Info("PatchBooking: id=%s, spot=%v, status=%v", id, newSpotID, newStatus)

	if err := validateBookingID(id); err != nil {
		return nil, err
	}
	if newSpotID == nil && newStatus == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidRequest)
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: booking %s", ErrNotFound, id)
			}
			return err
		}

		if newSpotID != nil {
			if booking.Kind != domain.KindParking {
				return fmt.Errorf("%w: only parking bookings can be assigned a spot", ErrInvalidRequest)
			}

			spot, err := s.spotRepo.GetByID(txCtx, *newSpotID)
			if err != nil {
				if errors.Is(err, spotRepo.ErrSpotNotFound) {
					return fmt.Errorf("%w: parking spot %s", ErrNotFound, *newSpotID)
				}
				return err
			}

			alreadyThere := booking.ParkingSpotID != nil && *booking.ParkingSpotID == spot.ID
			if !alreadyThere {
				if err := s.ensureSpotFree(txCtx, spot.ID); err != nil {
					return err
				}
			}

			booking.ParkingSpotID = &spot.ID
			if newStatus == nil && booking.Status == domain.StatusPaid {
				booking.Status = domain.StatusConfirmed
			}
		}

		if newStatus != nil {
			booking.Status = *newStatus
		}

		saved, err := s.bookingRepo.Update(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: booking %s", ErrNotFound, id)
			}
			return err
		}

		updated = saved
		return nil
	})

	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			s.logger.Warn("PatchBooking: concurrent update of booking id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: booking was modified concurrently", ErrConflict)
		}
		if isKindError(err) {
			s.logger.Warn("PatchBooking: id=%s rejected: %v", id, err)
			return nil, err
		}
		s.logger.Error("PatchBooking: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: PatchBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PatchBooking: id=%s now status=%s", id, updated.Status)
	return updated, nil
}

// DeleteBooking физически удаляет бронирование
func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	s.logger.Info("DeleteBooking: id=%s", id)

	if err := validateBookingID(id); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeleteBooking: booking id=%s not found", id)
			return fmt.Errorf("%w: booking %s", ErrNotFound, id)
		}
		s.logger.Error("DeleteBooking: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBooking: deleted booking id=%s", id)
	return nil
}

// recheckTarget повторяет проверку занятости внутри транзакции
// Для места строка места блокируется FOR UPDATE, что выстраивает конкурирующие фиксации в очередь
// Для месячной аренды без места заново пересчитывается свободный пул
func (s *Service) recheckTarget(ctx context.Context, b *domain.Booking) error {
	switch {
	case b.Kind == domain.KindParking && b.ParkingSpotID != nil:
		if _, err := s.spotRepo.GetByID(ctx, *b.ParkingSpotID); err != nil {
			if errors.Is(err, spotRepo.ErrSpotNotFound) {
				return fmt.Errorf("%w: parking spot %s", ErrNotFound, *b.ParkingSpotID)
			}
			return err
		}
		return s.ensureSpotFree(ctx, *b.ParkingSpotID)
	case b.Kind == domain.KindService && b.VehicleServiceID != nil:
		return s.ensureServiceSlotFree(ctx, *b.VehicleServiceID, b.StartTime, b.EndTime)
	case b.Kind == domain.KindParking:
		_, err := s.freeMonthlySpots(ctx)
		return err
	default:
		return nil
	}
}

// issueConfirmationNumber выдает свободный код подтверждения
// Вставка с конфликтом прерывает транзакцию Postgres, поэтому занятость кода проверяется заранее
func (s *Service) issueConfirmationNumber(ctx context.Context, kind domain.BookingKind) (string, error) {
	for attempt := 1; attempt <= s.confirmationAttempts; attempt++ {
		code := s.codes.Next()

		exists, err := s.bookingRepo.ConfirmationNumberExists(ctx, kind, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		s.logger.Warn("issueConfirmationNumber: code collision on attempt %d", attempt)
	}

	return "", fmt.Errorf("%w: could not issue a unique confirmation number", ErrConflict)
}

func isKindError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInternal)
}
