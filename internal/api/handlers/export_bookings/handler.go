package export_bookings

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	contentTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports/bookings
// Query params: status (опционально)
// Книга собирается в памяти, чтобы при ошибке вернуть JSON, а не обрезанный файл
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := domain.ParseBookingStatus(raw)
		if err != nil {
			h.logger.Warn("GET /admin/reports/bookings - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	var buf bytes.Buffer
	if err := h.service.ExportBookings(r.Context(), &buf, status); err != nil {
		h.logger.Error("GET /admin/reports/bookings - Failed to export bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := "bookings.xlsx"
	if status != nil {
		filename = fmt.Sprintf("bookings-%s.xlsx", *status)
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/reports/bookings - Failed to send workbook: %v", err)
		return
	}

	h.logger.Info("GET /admin/reports/bookings - Report exported: status=%v", status)
}
