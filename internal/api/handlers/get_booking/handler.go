package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidKind = "некорректный тип бронирования, ожидается parking или service"
	msgNotFound    = "бронирование не найдено"
)

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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, "GET /bookings/{id}", bookingID, err)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}

// HandleByConfirmation GET /api/v1/bookings/{kind}/confirmation/{code}
// Код сравнивается без учета регистра
func (h *Handler) HandleByConfirmation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseBookingKind(vars["kind"])
	if err != nil {
		h.logger.Warn("GET /bookings/{kind}/confirmation/{code} - Invalid kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	code := vars["code"]
	booking, err := h.service.GetByConfirmationNumber(r.Context(), kind, code)
	if err != nil {
		h.respondError(w, "GET /bookings/{kind}/confirmation/{code}", code, err)
		return
	}

	h.logger.Info("GET /bookings/{kind}/confirmation/{code} - Booking retrieved successfully: booking_id=%s", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}

func (h *Handler) respondError(w http.ResponseWriter, route, key string, err error) {
	switch {
	case errors.Is(err, bookings.ErrNotFound):
		h.logger.Warn("%s - Booking not found: %s", route, key)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidRequest):
		h.logger.Warn("%s - Invalid request: %s, error=%v", route, key, err)
		handlers.RespondBookingError(w, err)

	default:
		h.logger.Error("%s - Failed to get booking: %s, error=%v", route, key, err)
		handlers.RespondInternalError(w)
	}
}
