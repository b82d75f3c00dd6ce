package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

var now = time.Date(2023, 3, 16, 12, 0, 0, 0, time.UTC)

type mockEngine struct{ mock.Mock }

func (m *mockEngine) ValidateIncrementalSpotBooking(ctx context.Context, spotID string, start time.Time, d int, vt domain.VehicleType) (*domain.Booking, error) {
	args := m.Called(ctx, spotID, start, d, vt)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngine) ValidateMonthlySpotBooking(ctx context.Context, start time.Time, vt domain.VehicleType) (*domain.Booking, error) {
	args := m.Called(ctx, start, vt)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngine) ValidateServiceBooking(ctx context.Context, serviceID string, start time.Time) (*domain.Booking, error) {
	args := m.Called(ctx, serviceID, start)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngine) SaveBooking(ctx context.Context, b *domain.Booking, accountID *string, plate string) (*domain.Booking, error) {
	args := m.Called(ctx, b, accountID, plate)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEngine) Now() time.Time { return now }

type mockPayment struct{ mock.Mock }

func (m *mockPayment) Charge(ctx context.Context, isEmployee bool, account string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, isEmployee, account, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type countingMetrics struct {
	created  map[string]int
	rejected map[string]int
	payments map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{created: map[string]int{}, rejected: map[string]int{}, payments: map[string]int{}}
}

func (c *countingMetrics) IncBookingCreated(kind, status string) { c.created[kind+"/"+status]++ }
func (c *countingMetrics) IncBookingRejected(kind, reason string) {
	c.rejected[kind+"/"+reason]++
}
func (c *countingMetrics) IncPayment(result string) { c.payments[result]++ }

func incrementalRequest() *IncrementalRequest {
	return &IncrementalRequest{
		Payer:           Payer{AccountID: ptr.Ptr("acc-1"), CreditCardNumber: "4111111111111111"},
		ParkingSpotID:   "A035",
		DurationMinutes: 30,
		VehicleType:     "regular",
		LicensePlate:    "ABC123",
	}
}

func TestUseCase_ExecuteIncremental(t *testing.T) {
	cost := decimal.RequireFromString("0.50")

	t.Run("validate, charge, commit", func(t *testing.T) {
		engine, pay, m := new(mockEngine), new(mockPayment), newCountingMetrics()
		uc := NewUseCase(engine, pay, m, logger.Nop())

		validated := &domain.Booking{Kind: domain.KindParking, Status: domain.StatusRequested, Cost: cost, ParkingSpotID: ptr.Ptr("A035")}
		engine.On("ValidateIncrementalSpotBooking", mock.Anything, "A035", now, 30, domain.VehicleRegular).Return(validated, nil)
		pay.On("Charge", mock.Anything, false, "4111111111111111", cost).Return(cost, nil)
		engine.On("SaveBooking", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.StatusPaid
		}), ptr.Ptr("acc-1"), "ABC123").Return(&domain.Booking{ID: "id-1", Status: domain.StatusConfirmed, ConfirmationNumber: "QWE123"}, nil)

		saved, err := uc.ExecuteIncremental(context.Background(), incrementalRequest())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, saved.Status)
		assert.Equal(t, 1, m.created["incremental/CONFIRMED"])
		assert.Equal(t, 1, m.payments["APPROVED"])
		engine.AssertExpectations(t)
		pay.AssertExpectations(t)
	})

	t.Run("payment rejected persists nothing", func(t *testing.T) {
		engine, pay, m := new(mockEngine), new(mockPayment), newCountingMetrics()
		uc := NewUseCase(engine, pay, m, logger.Nop())

		engine.On("ValidateIncrementalSpotBooking", mock.Anything, "A035", now, 30, domain.VehicleRegular).
			Return(&domain.Booking{Kind: domain.KindParking, Cost: cost}, nil)
		pay.On("Charge", mock.Anything, false, mock.Anything, cost).
			Return(decimal.Zero, fmt.Errorf("%w: insufficient funds", payment.ErrPaymentRejected))

		_, err := uc.ExecuteIncremental(context.Background(), incrementalRequest())
		assert.ErrorIs(t, err, bookings.ErrPaymentRejected)
		assert.ErrorIs(t, err, payment.ErrPaymentRejected)
		assert.Equal(t, bookings.CodePaymentRejected, bookings.KindOf(err))
		engine.AssertNotCalled(t, "SaveBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1, m.rejected["incremental/PAYMENT_REJECTED"])
	})

	t.Run("unauthorized payer", func(t *testing.T) {
		engine, pay := new(mockEngine), new(mockPayment)
		uc := NewUseCase(engine, pay, newCountingMetrics(), logger.Nop())

		engine.On("ValidateIncrementalSpotBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Booking{Cost: cost}, nil)
		pay.On("Charge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, payment.ErrUnauthorized)

		_, err := uc.ExecuteIncremental(context.Background(), incrementalRequest())
		assert.Equal(t, bookings.CodeUnauthorized, bookings.KindOf(err))
	})

	t.Run("gateway down is internal", func(t *testing.T) {
		engine, pay := new(mockEngine), new(mockPayment)
		uc := NewUseCase(engine, pay, newCountingMetrics(), logger.Nop())

		engine.On("ValidateIncrementalSpotBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Booking{Cost: cost}, nil)
		pay.On("Charge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, errors.New("dial tcp: refused"))

		_, err := uc.ExecuteIncremental(context.Background(), incrementalRequest())
		assert.ErrorIs(t, err, ErrChargeFailed)
		assert.Equal(t, bookings.CodeInternal, bookings.KindOf(err))
	})

	t.Run("engine conflict skips payment", func(t *testing.T) {
		engine, pay, m := new(mockEngine), new(mockPayment), newCountingMetrics()
		uc := NewUseCase(engine, pay, m, logger.Nop())

		engine.On("ValidateIncrementalSpotBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: spot A035 is already booked", bookings.ErrConflict))

		_, err := uc.ExecuteIncremental(context.Background(), incrementalRequest())
		assert.ErrorIs(t, err, bookings.ErrConflict)
		pay.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 1, m.rejected["incremental/CONFLICT"])
	})

	invalid := []struct {
		name   string
		mutate func(r *IncrementalRequest)
	}{
		{"no card", func(r *IncrementalRequest) { r.CreditCardNumber = "" }},
		{"card with letters", func(r *IncrementalRequest) { r.CreditCardNumber = "4111-1111" }},
		{"empty plate", func(r *IncrementalRequest) { r.LicensePlate = " " }},
		{"long plate", func(r *IncrementalRequest) { r.LicensePlate = "ABCDEFGHIJKLMNOPQ" }},
		{"zero duration", func(r *IncrementalRequest) { r.DurationMinutes = 0 }},
		{"unknown vehicle", func(r *IncrementalRequest) { r.VehicleType = "truck" }},
		{"no spot", func(r *IncrementalRequest) { r.ParkingSpotID = "" }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			engine, pay := new(mockEngine), new(mockPayment)
			uc := NewUseCase(engine, pay, newCountingMetrics(), logger.Nop())

			req := incrementalRequest()
			tt.mutate(req)

			_, err := uc.ExecuteIncremental(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, bookings.CodeInvalidRequest, bookings.KindOf(err))
			engine.AssertNotCalled(t, "ValidateIncrementalSpotBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_ExecuteMonthly(t *testing.T) {
	fee := decimal.RequireFromString("60.00")
	payer := Payer{CreditCardNumber: "1234567890", IsEmployee: true}

	t.Run("defaults to today and stays paid", func(t *testing.T) {
		engine, pay, m := new(mockEngine), new(mockPayment), newCountingMetrics()
		uc := NewUseCase(engine, pay, m, logger.Nop())

		today := time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC)
		engine.On("ValidateMonthlySpotBooking", mock.Anything, today, domain.VehicleRegular).
			Return(&domain.Booking{Kind: domain.KindParking, Cost: fee}, nil)
		pay.On("Charge", mock.Anything, true, "1234567890", fee).Return(fee, nil)
		engine.On("SaveBooking", mock.Anything, mock.Anything, (*string)(nil), "MONTH1").
			Return(&domain.Booking{ID: "m-1", Status: domain.StatusPaid}, nil)

		saved, err := uc.ExecuteMonthly(context.Background(), &MonthlyRequest{Payer: payer, VehicleType: "REGULAR", LicensePlate: "MONTH1"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, saved.Status)
		assert.Equal(t, 1, m.created["monthly/PAID"])
	})

	t.Run("start before today", func(t *testing.T) {
		engine := new(mockEngine)
		uc := NewUseCase(engine, new(mockPayment), newCountingMetrics(), logger.Nop())

		_, err := uc.ExecuteMonthly(context.Background(), &MonthlyRequest{
			Payer: payer, VehicleType: "REGULAR", LicensePlate: "MONTH1", StartDate: ptr.Ptr(now.AddDate(0, 0, -1)),
		})
		assert.ErrorIs(t, err, ErrStartInPast)
		assert.ErrorIs(t, err, bookings.ErrInvalidRequest)
	})
}

func TestUseCase_ExecuteService(t *testing.T) {
	fee := decimal.NewFromInt(50)
	start := now.Add(2 * time.Hour)
	req := func() *ServiceRequest {
		return &ServiceRequest{
			Payer:        Payer{CreditCardNumber: "4111111111111111"},
			ServiceID:    "car-wash",
			StartDate:    start,
			LicensePlate: "WASH01",
		}
	}

	t.Run("commit conflict after charge is reported", func(t *testing.T) {
		engine, pay, m := new(mockEngine), new(mockPayment), newCountingMetrics()
		uc := NewUseCase(engine, pay, m, logger.Nop())

		engine.On("ValidateServiceBooking", mock.Anything, "car-wash", start).
			Return(&domain.Booking{Kind: domain.KindService, Cost: fee}, nil)
		pay.On("Charge", mock.Anything, false, mock.Anything, fee).Return(fee, nil)
		engine.On("SaveBooking", mock.Anything, mock.Anything, (*string)(nil), "WASH01").
			Return(nil, fmt.Errorf("%w: resource was booked concurrently", bookings.ErrConflict))

		_, err := uc.ExecuteService(context.Background(), req())
		assert.ErrorIs(t, err, bookings.ErrConflict)
		assert.Equal(t, 1, m.payments["APPROVED"])
		assert.Equal(t, 1, m.rejected["service/CONFLICT"])
	})

	t.Run("start in the past", func(t *testing.T) {
		engine := new(mockEngine)
		uc := NewUseCase(engine, new(mockPayment), newCountingMetrics(), logger.Nop())

		r := req()
		r.StartDate = now.Add(-time.Minute)
		_, err := uc.ExecuteService(context.Background(), r)
		assert.ErrorIs(t, err, ErrStartInPast)
		engine.AssertNotCalled(t, "ValidateServiceBooking", mock.Anything, mock.Anything, mock.Anything)
	})
}
