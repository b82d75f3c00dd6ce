package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownEnum is returned when a string does not name a known enum value
var ErrUnknownEnum = errors.New("domain: unrecognized enum value")

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusRequested BookingStatus = "REQUESTED"
	StatusPaid      BookingStatus = "PAID"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus parses a status name case-insensitively
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case StatusRequested, StatusPaid, StatusConfirmed, StatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: booking status %q", ErrUnknownEnum, s)
	}
}

// BookingKind discriminates parking-spot bookings from vehicle-service bookings
type BookingKind string

const (
	KindParking BookingKind = "PARKING"
	KindService BookingKind = "SERVICE"
)

// ParseBookingKind parses a kind name case-insensitively
func ParseBookingKind(s string) (BookingKind, error) {
	switch kind := BookingKind(strings.ToUpper(strings.TrimSpace(s))); kind {
	case KindParking, KindService:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: booking kind %q", ErrUnknownEnum, s)
	}
}

// DateRange is a closed interval of timestamps
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies within [Start, End]
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether two ranges share any instant of positive length.
// Ranges that only touch at an endpoint do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Booking is a reservation of either a parking spot or a vehicle service.
// Kind selects which of ParkingSpotID/BillingAccountID or VehicleServiceID/DurationMinutes apply.
type Booking struct {
	ID                 string
	Kind               BookingKind
	Status             BookingStatus
	StartTime          time.Time
	EndTime            time.Time
	Cost               decimal.Decimal
	LicensePlate       string
	ConfirmationNumber string
	CustomerID         *int64

	// Parking
	ParkingSpotID    *string
	BillingAccountID *string

	// Service
	VehicleServiceID *string
	DurationMinutes  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booking's date range
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartTime, End: b.EndTime}
}

// HasTarget reports whether the booking has its resource attached:
// a spot for parking bookings, a service for service bookings
func (b *Booking) HasTarget() bool {
	switch b.Kind {
	case KindParking:
		return b.ParkingSpotID != nil && *b.ParkingSpotID != ""
	case KindService:
		return b.VehicleServiceID != nil && *b.VehicleServiceID != ""
	default:
		return false
	}
}

// IsActiveAt reports whether now falls within the booking's range
func (b *Booking) IsActiveAt(now time.Time) bool {
	return b.Range().Contains(now)
}

// MarkPaid records a successful payment
func (b *Booking) MarkPaid() {
	b.Status = StatusPaid
}

// NormalizeConfirmationNumber brings a user-supplied code to its stored form
func NormalizeConfirmationNumber(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// BookingsFilter selects bookings for listing and export
type BookingsFilter struct {
	Kind       *BookingKind
	Status     *BookingStatus
	CustomerID *int64
	ActiveAt   *time.Time // only bookings whose range contains this instant
}

// ServiceBookingWindow is a lightweight projection of a service booking
type ServiceBookingWindow struct {
	BookingID   string
	ServiceID   string
	ServiceName string
	StartTime   time.Time
	EndTime     time.Time
}
