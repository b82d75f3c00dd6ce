package get_service_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetServiceBookingsInRange(ctx context.Context, serviceIDs []string, start, end time.Time) ([]domain.ServiceBookingWindow, error) {
	args := m.Called(ctx, serviceIDs, start, end)
	return args.Get(0).([]domain.ServiceBookingWindow), args.Error(1)
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"serviceId": {"car-wash,oil-change", "detailing"},
		"start":     {"2023-03-16T00:00:00Z"},
		"end":       {"2023-03-17T00:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"car-wash", "oil-change", "detailing"}, q.ServiceIDs)
	assert.Equal(t, 24*time.Hour, q.End.Sub(q.Start))

	_, err = ParseQuery(url.Values{"start": {"2023-03-16T00:00:00Z"}, "end": {"2023-03-17T00:00:00Z"}})
	assert.ErrorIs(t, err, errMissingServices)

	_, err = ParseQuery(url.Values{"serviceId": {"car-wash"}, "start": {"2023-03-16"}, "end": {"2023-03-17T00:00:00Z"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	start := time.Date(2023, 3, 16, 10, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("GetServiceBookingsInRange", mock.Anything, []string{"car-wash"}, mock.Anything, mock.Anything).
		Return([]domain.ServiceBookingWindow{{
			BookingID:   "b-1",
			ServiceID:   "car-wash",
			ServiceName: "Car Wash",
			StartTime:   start,
			EndTime:     start.Add(15 * time.Minute),
		}}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/services/schedule?serviceId=car-wash&start=2023-03-16T00:00:00Z&end=2023-03-17T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"bookings":[{"id":"b-1","name":"Car Wash","startDate":"2023-03-16T10:00:00Z","endDate":"2023-03-16T10:15:00Z"}]}`,
		rec.Body.String())
}
