package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func at(h, m int) time.Time {
	return time.Date(2023, 3, 16, h, m, 0, 0, time.UTC)
}

func TestDateRangeOverlaps(t *testing.T) {
	base := DateRange{Start: at(12, 0), End: at(12, 15)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"same", base, true},
		{"inside", DateRange{at(12, 5), at(12, 10)}, true},
		{"straddles start", DateRange{at(11, 50), at(12, 1)}, true},
		{"straddles end", DateRange{at(12, 14), at(12, 30)}, true},
		{"adjacent after", DateRange{at(12, 15), at(12, 30)}, false},
		{"adjacent before", DateRange{at(11, 45), at(12, 0)}, false},
		{"disjoint", DateRange{at(13, 0), at(13, 15)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	r := DateRange{Start: at(12, 0), End: at(12, 30)}
	assert.True(t, r.Contains(at(12, 0)))
	assert.True(t, r.Contains(at(12, 30)))
	assert.False(t, r.Contains(at(12, 31)))
}

func TestHasTarget(t *testing.T) {
	parking := &Booking{Kind: KindParking}
	assert.False(t, parking.HasTarget())

	parking.ParkingSpotID = ptr.Ptr("A035")
	assert.True(t, parking.HasTarget())

	service := &Booking{Kind: KindService, VehicleServiceID: ptr.Ptr("car-wash")}
	assert.True(t, service.HasTarget())
}

func TestParseEnumsFailClosed(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("NONE")
	assert.ErrorIs(t, err, ErrUnknownEnum)

	_, err = ParseVehicleType("truck")
	assert.ErrorIs(t, err, ErrUnknownEnum)

	_, err = ParseSpotStatus("")
	assert.ErrorIs(t, err, ErrUnknownEnum)

	_, err = ParseBookingKind("other")
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestNormalizeConfirmationNumber(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeConfirmationNumber(" ab12Cd "))
}

func TestIsValidSpotID(t *testing.T) {
	assert.True(t, IsValidSpotID("A035"))
	assert.True(t, IsValidSpotID("101"))
	assert.False(t, IsValidSpotID("a035"))
	assert.False(t, IsValidSpotID("AB35"))
	assert.False(t, IsValidSpotID("A35"))
}

func TestServiceIDFromName(t *testing.T) {
	assert.Equal(t, "car-wash", ServiceIDFromName("Car Wash"))
	assert.Equal(t, "oil-change-deluxe", ServiceIDFromName("  Oil  Change Deluxe "))
}
