package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Response модели
// Имена полей совпадают с контрактом существующих клиентов

// ParkingBookingResponse бронирование парковочного места
type ParkingBookingResponse struct {
	UUID               string    `json:"uuid"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	Status             string    `json:"status"`
	ParkingSpotID      *string   `json:"parkingSpotId"` // null до назначения места
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Cost               string    `json:"cost"` // "0.50"
}

// ServiceBookingResponse бронирование услуги
type ServiceBookingResponse struct {
	UUID               string    `json:"uuid"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	Status             string    `json:"status"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	Cost               string    `json:"cost"`
	LicensePlate       string    `json:"licensePlate"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []interface{} `json:"bookings"`
}

// ServiceWindowResponse проекция бронирования услуги
type ServiceWindowResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ServiceScheduleResponse занятость услуг за период
type ServiceScheduleResponse struct {
	Bookings []ServiceWindowResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainParkingBooking конвертирует domain модель в DTO
func FromDomainParkingBooking(b *domain.Booking) *ParkingBookingResponse {
	if b == nil {
		return nil
	}
	return &ParkingBookingResponse{
		UUID:               b.ID,
		ConfirmationNumber: b.ConfirmationNumber,
		Status:             string(b.Status),
		ParkingSpotID:      b.ParkingSpotID,
		StartDate:          b.StartTime,
		EndDate:            b.EndTime,
		Cost:               b.Cost.StringFixed(2),
	}
}

// FromDomainServiceBooking конвертирует domain модель в DTO
func FromDomainServiceBooking(b *domain.Booking) *ServiceBookingResponse {
	if b == nil {
		return nil
	}
	return &ServiceBookingResponse{
		UUID:               b.ID,
		ConfirmationNumber: b.ConfirmationNumber,
		Status:             string(b.Status),
		StartDate:          b.StartTime,
		EndDate:            b.EndTime,
		Cost:               b.Cost.StringFixed(2),
		LicensePlate:       b.LicensePlate,
	}
}

// FromDomainBooking выбирает DTO по типу бронирования
func FromDomainBooking(b *domain.Booking) interface{} {
	if b != nil && b.Kind == domain.KindService {
		return FromDomainServiceBooking(b)
	}
	return FromDomainParkingBooking(b)
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]interface{}, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}

// FromDomainWindows конвертирует проекции бронирований услуг
func FromDomainWindows(windows []domain.ServiceBookingWindow) *ServiceScheduleResponse {
	resp := &ServiceScheduleResponse{Bookings: make([]ServiceWindowResponse, 0, len(windows))}
	for _, w := range windows {
		resp.Bookings = append(resp.Bookings, ServiceWindowResponse{
			ID:        w.BookingID,
			Name:      w.ServiceName,
			StartDate: w.StartTime,
			EndDate:   w.EndTime,
		})
	}
	return resp
}
