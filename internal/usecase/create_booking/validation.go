package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
)

const (
	minAccountNumberLength = 4
	maxAccountNumberLength = 19
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %w: %s", bookings.ErrInvalidRequest, ErrInvalidInput, fmt.Sprintf(format, args...))
}

// validatePayer проверяет номер карты/счета
func validatePayer(p *Payer) error {
	number := strings.TrimSpace(p.CreditCardNumber)
	if len(number) < minAccountNumberLength || len(number) > maxAccountNumberLength {
		return invalid("creditCardNumber must be %d-%d digits", minAccountNumberLength, maxAccountNumberLength)
	}
	for _, r := range number {
		if !unicode.IsDigit(r) {
			return invalid("creditCardNumber must contain digits only")
		}
	}
	return nil
}

// validateLicensePlate проверяет номер ТС до оплаты, чтобы не списывать деньги за заведомо отклоненный запрос
func validateLicensePlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" || len(plate) > domain.MaxLicensePlateLength {
		return invalid("licensePlate must be 1-%d characters", domain.MaxLicensePlateLength)
	}
	return nil
}

func parseVehicleType(s string) (domain.VehicleType, error) {
	vt, err := domain.ParseVehicleType(s)
	if err != nil {
		return "", invalid("%v", err)
	}
	return vt, nil
}

func validateIncremental(req *IncrementalRequest) (domain.VehicleType, error) {
	if err := validatePayer(&req.Payer); err != nil {
		return "", err
	}
	if err := validateLicensePlate(req.LicensePlate); err != nil {
		return "", err
	}
	if strings.TrimSpace(req.ParkingSpotID) == "" {
		return "", invalid("parkingSpotId is required")
	}
	if req.DurationMinutes <= 0 {
		return "", invalid("duration must be positive")
	}
	return parseVehicleType(req.VehicleType)
}

func validateMonthly(req *MonthlyRequest) (domain.VehicleType, error) {
	if err := validatePayer(&req.Payer); err != nil {
		return "", err
	}
	if err := validateLicensePlate(req.LicensePlate); err != nil {
		return "", err
	}
	return parseVehicleType(req.VehicleType)
}

func validateService(req *ServiceRequest, now time.Time) error {
	if err := validatePayer(&req.Payer); err != nil {
		return err
	}
	if err := validateLicensePlate(req.LicensePlate); err != nil {
		return err
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return invalid("serviceId is required")
	}
	if req.StartDate.IsZero() {
		return invalid("startDate is required")
	}
	if req.StartDate.Before(now) {
		return fmt.Errorf("%w: %w", bookings.ErrInvalidRequest, ErrStartInPast)
	}
	return nil
}

// startOfDay обнуляет время, оставляя дату
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
