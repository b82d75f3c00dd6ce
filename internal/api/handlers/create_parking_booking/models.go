package create_parking_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// IncrementalBookingRequest HTTP request model
type IncrementalBookingRequest struct {
	ParkingSpotID    string `json:"parkingSpotId"`
	Duration         int    `json:"duration"` // минуты
	VehicleType      string `json:"vehicleType"`
	LicensePlate     string `json:"licensePlate"`
	CreditCardNumber string `json:"creditCardNumber"`
}

// MonthlyBookingRequest HTTP request model
type MonthlyBookingRequest struct {
	StartDate        *string `json:"startDate,omitempty"` // "2023-03-16", по умолчанию сегодня
	VehicleType      string  `json:"vehicleType"`
	LicensePlate     string  `json:"licensePlate"`
	CreditCardNumber string  `json:"creditCardNumber"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *IncrementalBookingRequest) ToUseCaseRequest(payer createBooking.Payer) *createBooking.IncrementalRequest {
	payer.CreditCardNumber = r.CreditCardNumber
	return &createBooking.IncrementalRequest{
		Payer:           payer,
		ParkingSpotID:   r.ParkingSpotID,
		DurationMinutes: r.Duration,
		VehicleType:     r.VehicleType,
		LicensePlate:    r.LicensePlate,
	}
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *MonthlyBookingRequest) ToUseCaseRequest(payer createBooking.Payer, loc *time.Location) (*createBooking.MonthlyRequest, error) {
	payer.CreditCardNumber = r.CreditCardNumber
	req := &createBooking.MonthlyRequest{
		Payer:        payer,
		VehicleType:  r.VehicleType,
		LicensePlate: r.LicensePlate,
	}

	if r.StartDate != nil {
		start, err := time.ParseInLocation(domain.DateFormat, *r.StartDate, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}

	return req, nil
}
