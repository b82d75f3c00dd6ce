package bookings

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/customer"
	facilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/facility"
	spotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/spot"
	serviceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicleservice"
	"github.com/m04kA/SMC-ParkingService/pkg/confirmation"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

// world in-memory хранилище, общее для всех фейковых репозиториев
type world struct {
	bookings  map[string]*domain.Booking
	spots     map[string]*domain.ParkingSpot
	services  map[string]*domain.VehicleService
	customers map[string]*domain.Customer
	config    *domain.FacilityConfig
}

func newWorld() *world {
	return &world{
		bookings: make(map[string]*domain.Booking),
		spots: map[string]*domain.ParkingSpot{
			"A035": {ID: "A035", VehicleType: domain.VehicleRegular, Status: domain.SpotOpen},
			"A036": {ID: "A036", VehicleType: domain.VehicleRegular, Status: domain.SpotOpen},
			"B001": {ID: "B001", VehicleType: domain.VehicleLarge, Status: domain.SpotOpen},
			"R001": {ID: "R001", VehicleType: domain.VehicleRegular, Status: domain.SpotReserved},
			"C001": {ID: "C001", VehicleType: domain.VehicleRegular, Status: domain.SpotClosed},
		},
		services: map[string]*domain.VehicleService{
			"car-wash": {ID: "car-wash", DisplayName: "Car Wash", DurationMinutes: 15, Fee: decimal.NewFromInt(50)},
		},
		customers: map[string]*domain.Customer{
			"acc-1": {ID: 1, AccountID: "acc-1", Name: "Ann"},
		},
		config: &domain.FacilityConfig{
			ID:                  1,
			MonthlyFee:          decimal.RequireFromString("60.00"),
			IncrementFee:        decimal.RequireFromString("0.25"),
			IncrementMinutes:    15,
			MaxIncrementMinutes: 120,
			IsActive:            true,
			Schedules: []domain.Schedule{
				{ConfigID: 1, Day: time.Thursday, StartTime: "08:00", EndTime: "20:00"},
				{ConfigID: 1, Day: time.Friday, StartTime: "08:00", EndTime: "20:00"},
			},
		},
	}
}

type fakeBookings struct{ w *world }

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range f.w.bookings {
		if existing.Kind == b.Kind && existing.ConfirmationNumber == b.ConfirmationNumber {
			return nil, bookingRepo.ErrDuplicateConfirmation
		}
	}
	stored := *b
	stored.ID = uuid.NewString()
	f.w.bookings[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.w.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (f *fakeBookings) GetByConfirmationNumber(_ context.Context, kind domain.BookingKind, code string) (*domain.Booking, error) {
	for _, b := range f.w.bookings {
		if b.Kind == kind && b.ConfirmationNumber == code {
			out := *b
			return &out, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) ConfirmationNumberExists(_ context.Context, kind domain.BookingKind, code string) (bool, error) {
	for _, b := range f.w.bookings {
		if b.Kind == kind && b.ConfirmationNumber == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookings) GetByFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.w.bookings {
		if filter.Kind != nil && b.Kind != *filter.Kind {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && (b.CustomerID == nil || *b.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.ActiveAt != nil && !b.IsActiveAt(*filter.ActiveAt) {
			continue
		}
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeBookings) IsSpotActivelyBooked(_ context.Context, spotID string, now time.Time) (bool, error) {
	for _, b := range f.w.bookings {
		if b.Kind == domain.KindParking && b.ParkingSpotID != nil && *b.ParkingSpotID == spotID && b.IsActiveAt(now) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookings) CountUnassignedMonthly(_ context.Context, now time.Time) (int, error) {
	count := 0
	for _, b := range f.w.bookings {
		if b.Kind == domain.KindParking && b.Status == domain.StatusPaid && b.ParkingSpotID == nil && !b.EndTime.Before(now) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookings) GetServiceBookingsInRange(_ context.Context, ids []string, start, end time.Time, status *domain.BookingStatus) ([]domain.ServiceBookingWindow, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]domain.ServiceBookingWindow, 0)
	for _, b := range f.w.bookings {
		if b.Kind != domain.KindService || b.VehicleServiceID == nil || !wanted[*b.VehicleServiceID] {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		if b.StartTime.After(end) || b.EndTime.Before(start) {
			continue
		}
		out = append(out, domain.ServiceBookingWindow{
			BookingID:   b.ID,
			ServiceID:   *b.VehicleServiceID,
			ServiceName: f.w.services[*b.VehicleServiceID].DisplayName,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeBookings) Update(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if _, ok := f.w.bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	stored := *b
	f.w.bookings[b.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeBookings) Delete(_ context.Context, id string) error {
	if _, ok := f.w.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.w.bookings, id)
	return nil
}

type fakeSpots struct{ w *world }

func (f *fakeSpots) GetByID(_ context.Context, id string) (*domain.ParkingSpot, error) {
	s, ok := f.w.spots[id]
	if !ok {
		return nil, spotRepo.ErrSpotNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeSpots) CountUnbookedReserved(ctx context.Context, now time.Time) (int, error) {
	bookings := &fakeBookings{w: f.w}
	count := 0
	for _, s := range f.w.spots {
		if s.Status != domain.SpotReserved {
			continue
		}
		busy, _ := bookings.IsSpotActivelyBooked(ctx, s.ID, now)
		if !busy {
			count++
		}
	}
	return count, nil
}

type fakeServices struct{ w *world }

func (f *fakeServices) GetByID(_ context.Context, id string) (*domain.VehicleService, error) {
	s, ok := f.w.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	out := *s
	return &out, nil
}

type fakeFacility struct{ w *world }

func (f *fakeFacility) GetActive(_ context.Context) (*domain.FacilityConfig, error) {
	if f.w.config == nil {
		return nil, facilityRepo.ErrNoActiveConfig
	}
	out := *f.w.config
	return &out, nil
}

func (f *fakeFacility) GetScheduleForDay(_ context.Context, configID int64, day time.Weekday) (*domain.Schedule, error) {
	if f.w.config == nil || f.w.config.ID != configID {
		return nil, facilityRepo.ErrScheduleNotFound
	}
	if s := f.w.config.ScheduleFor(day); s != nil {
		out := *s
		return &out, nil
	}
	return nil, facilityRepo.ErrScheduleNotFound
}

type fakeCustomers struct{ w *world }

func (f *fakeCustomers) GetByAccountID(_ context.Context, accountID string) (*domain.Customer, error) {
	c, ok := f.w.customers[accountID]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	out := *c
	return &out, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

// addReservedSpots пополняет пул месячной аренды
func addReservedSpots(w *world, n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("R%03d", 100+i)
		w.spots[id] = &domain.ParkingSpot{ID: id, VehicleType: domain.VehicleRegular, Status: domain.SpotReserved}
	}
}

type scriptedCodes struct {
	codes []string
	i     int
}

func (s *scriptedCodes) Next() string {
	code := s.codes[s.i%len(s.codes)]
	s.i++
	return code
}

// thursday 2023-03-16, день с расписанием 08:00-20:00
func thursday(h, m int) time.Time {
	return time.Date(2023, 3, 16, h, m, 0, 0, time.UTC)
}

func newTestService(w *world, codes ConfirmationGenerator) (*Service, *clock) {
	return newTestServiceIn(w, codes, time.UTC)
}

func newTestServiceIn(w *world, codes ConfirmationGenerator, loc *time.Location) (*Service, *clock) {
	if codes == nil {
		codes = confirmation.NewGenerator(rand.New(rand.NewSource(7)))
	}
	svc := NewService(
		&fakeBookings{w: w},
		&fakeSpots{w: w},
		&fakeServices{w: w},
		&fakeFacility{w: w},
		&fakeCustomers{w: w},
		fakeTx{},
		codes,
		5,
		loc,
		logger.Nop(),
	)
	c := &clock{now: thursday(12, 0)}
	svc.timeProvider = c
	return svc, c
}
