package get_service_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const msgInvalidParams = "некорректные параметры: serviceId обязателен, start и end в формате RFC 3339"

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

// Handle GET /api/v1/services/schedule
// Query params: serviceId (один или несколько), start, end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /services/schedule - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	windows, err := h.service.GetServiceBookingsInRange(r.Context(), query.ServiceIDs, query.Start, query.End)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidRequest):
			h.logger.Warn("GET /services/schedule - Invalid range: %v", err)
			handlers.RespondBookingError(w, err)

		default:
			h.logger.Error("GET /services/schedule - Failed to get schedule: services=%v, error=%v", query.ServiceIDs, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/schedule - Schedule retrieved successfully: services=%v, count=%d",
		query.ServiceIDs, len(windows))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainWindows(windows))
}
