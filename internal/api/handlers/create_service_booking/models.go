package create_service_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// ServiceBookingRequest HTTP request model
type ServiceBookingRequest struct {
	StartDate        time.Time `json:"startDate"` // RFC 3339
	LicensePlate     string    `json:"licensePlate"`
	CreditCardNumber string    `json:"creditCardNumber"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ServiceBookingRequest) ToUseCaseRequest(serviceID string, payer createBooking.Payer) *createBooking.ServiceRequest {
	payer.CreditCardNumber = r.CreditCardNumber
	return &createBooking.ServiceRequest{
		Payer:        payer,
		ServiceID:    serviceID,
		StartDate:    r.StartDate,
		LicensePlate: r.LicensePlate,
	}
}
