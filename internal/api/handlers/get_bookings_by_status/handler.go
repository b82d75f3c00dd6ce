package get_bookings_by_status

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const msgInvalidParams = "некорректные параметры запроса: status обязателен (REQUESTED, PAID, CONFIRMED, COMPLETED), kind опционален"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: status (обязательно), kind (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, err := ParseQuery(r.URL.Query().Get("status"), r.URL.Query().Get("kind"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetByStatus(r.Context(), query.Kind, query.Status)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to get bookings: status=%s, error=%v", query.Status, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: status=%s, count=%d",
		query.Status, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
