package domain

// Business validation constants
const (
	MaxLicensePlateLength  = 16
	MaxSpotMessageLength   = 255
	MaxServiceNameLength   = 100
	MaxServiceDuration     = 480 // 8 hours
	MaxIncrementMinutesCap = 1440
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllBookingStatuses lists statuses in lifecycle order
var AllBookingStatuses = []BookingStatus{
	StatusRequested,
	StatusPaid,
	StatusConfirmed,
	StatusCompleted,
}
