package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SpotStatus represents the availability class of a parking spot
type SpotStatus string

const (
	SpotOpen     SpotStatus = "OPEN"
	SpotReserved SpotStatus = "RESERVED" // allocated to the monthly pool
	SpotClosed   SpotStatus = "CLOSED"
)

// ParseSpotStatus parses a spot status case-insensitively
func ParseSpotStatus(s string) (SpotStatus, error) {
	switch status := SpotStatus(strings.ToUpper(strings.TrimSpace(s))); status {
	case SpotOpen, SpotReserved, SpotClosed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: spot status %q", ErrUnknownEnum, s)
	}
}

// VehicleType is the vehicle size class a spot accepts
type VehicleType string

const (
	VehicleRegular VehicleType = "REGULAR"
	VehicleLarge   VehicleType = "LARGE"
)

// ParseVehicleType parses a vehicle type case-insensitively
func ParseVehicleType(s string) (VehicleType, error) {
	switch vt := VehicleType(strings.ToUpper(strings.TrimSpace(s))); vt {
	case VehicleRegular, VehicleLarge:
		return vt, nil
	default:
		return "", fmt.Errorf("%w: vehicle type %q", ErrUnknownEnum, s)
	}
}

var spotIDPattern = regexp.MustCompile(`^[A-Z]?[0-9]{3}$`)

// IsValidSpotID checks the optional floor letter + three digits format
func IsValidSpotID(id string) bool {
	return spotIDPattern.MatchString(id)
}

// ParkingSpot is a physical parking space
type ParkingSpot struct {
	ID          string
	VehicleType VehicleType
	Status      SpotStatus
	Message     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptsIncremental reports whether the spot takes short-term bookings
func (s *ParkingSpot) AcceptsIncremental() bool {
	return s.Status == SpotOpen
}

// SpotsFilter selects spots for listing
type SpotsFilter struct {
	Status      *SpotStatus
	VehicleType *VehicleType
}
