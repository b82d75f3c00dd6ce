package export_bookings

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) ExportBookings(ctx context.Context, w io.Writer, status *domain.BookingStatus) error {
	args := m.Called(ctx, w, status)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("PK-workbook"))
	return err
}

func get(h *Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("workbook", func(t *testing.T) {
		svc := new(mockService)
		paid := domain.StatusPaid
		svc.On("ExportBookings", mock.Anything, mock.Anything, &paid).Return(nil)

		rec := get(NewHandler(svc, logger.Nop()), "/admin/reports/bookings?status=paid")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "bookings-PAID.xlsx")
		assert.Equal(t, "PK-workbook", rec.Body.String())
	})

	t.Run("failure returns json", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ExportBookings", mock.Anything, mock.Anything, (*domain.BookingStatus)(nil)).Return(errors.New("db down"))

		rec := get(NewHandler(svc, logger.Nop()), "/admin/reports/bookings")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	})

	t.Run("bad status", func(t *testing.T) {
		rec := get(NewHandler(new(mockService), logger.Nop()), "/admin/reports/bookings?status=lost")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
