package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type stubLister struct {
	bookings []*domain.Booking
	err      error
	filters  []domain.BookingsFilter
}

func (s *stubLister) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.filters = append(s.filters, filter)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.Kind == *filter.Kind {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestService_ExportBookings(t *testing.T) {
	start := time.Date(2023, 3, 16, 12, 0, 0, 0, time.UTC)
	lister := &stubLister{bookings: []*domain.Booking{
		{
			ID: "b1", Kind: domain.KindParking, Status: domain.StatusConfirmed, ConfirmationNumber: "ABC123",
			ParkingSpotID: ptr.Ptr("A035"), StartTime: start, EndTime: start.Add(30 * time.Minute),
			Cost: decimal.RequireFromString("0.50"), LicensePlate: "XYZ1",
		},
		{
			ID: "b2", Kind: domain.KindService, Status: domain.StatusConfirmed, ConfirmationNumber: "WASH01",
			VehicleServiceID: ptr.Ptr("car-wash"), StartTime: start, EndTime: start.Add(15 * time.Minute),
			Cost: decimal.NewFromInt(50), LicensePlate: "XYZ2",
		},
	}}
	svc := NewService(lister, logger.Nop())

	var buf bytes.Buffer
	status := domain.StatusConfirmed
	require.NoError(t, svc.ExportBookings(context.Background(), &buf, &status))

	for _, f := range lister.filters {
		assert.Equal(t, &status, f.Status)
	}

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Parking", "Services"}, file.GetSheetList())

	parking, err := file.GetRows("Parking")
	require.NoError(t, err)
	require.Len(t, parking, 2)
	assert.Equal(t, "Spot", parking[0][3])
	assert.Equal(t, []string{"b1", "ABC123", "CONFIRMED", "A035", "2023-03-16 12:00", "2023-03-16 12:30", "0.5", "XYZ1"}, parking[1])

	services, err := file.GetRows("Services")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "car-wash", services[1][3])
}

func TestService_ExportBookingsListError(t *testing.T) {
	svc := NewService(&stubLister{err: errors.New("db down")}, logger.Nop())

	var buf bytes.Buffer
	err := svc.ExportBookings(context.Background(), &buf, nil)
	assert.ErrorIs(t, err, ErrFetchBookings)
	assert.Zero(t, buf.Len())
}
