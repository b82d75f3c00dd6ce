package create_booking

import "time"

// Payer данные плательщика
type Payer struct {
	AccountID        *string // ID аккаунта клиента, nil для анонимного бронирования
	IsEmployee       bool    // Сотрудники оплачивают по внутреннему счету
	CreditCardNumber string  // Номер карты или внутреннего счета
}

// IncrementalRequest почасовое бронирование места начиная с текущего момента
type IncrementalRequest struct {
	Payer
	ParkingSpotID   string
	DurationMinutes int
	VehicleType     string
	LicensePlate    string
}

// MonthlyRequest месячная аренда места из резервного пула
type MonthlyRequest struct {
	Payer
	StartDate    *time.Time // nil = сегодня
	VehicleType  string
	LicensePlate string
}

// ServiceRequest бронирование услуги на конкретное время
type ServiceRequest struct {
	Payer
	ServiceID    string
	StartDate    time.Time
	LicensePlate string
}
