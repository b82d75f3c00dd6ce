package delete_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) DeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func del(h *Handler, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}", h.Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/bookings/"+id, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("DeleteBooking", mock.Anything, "b-1").Return(nil)
	svc.On("DeleteBooking", mock.Anything, "b-2").Return(fmt.Errorf("%w: booking b-2", bookings.ErrNotFound))
	svc.On("DeleteBooking", mock.Anything, "b-3").Return(fmt.Errorf("%w: db down", bookings.ErrInternal))

	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusNoContent, del(h, "b-1").Code)
	assert.Equal(t, http.StatusNotFound, del(h, "b-2").Code)
	assert.Equal(t, http.StatusInternalServerError, del(h, "b-3").Code)
}
