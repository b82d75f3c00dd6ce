package patch_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPatch       = "укажите parkingSpotId и/или корректный status"
	msgNotFound           = "бронирование не найдено"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}
// Переназначение места повторно проверяет его занятость; статус перезаписывается безусловно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req PatchBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	spotID, status, err := req.Parse()
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid patch: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidPatch)
		return
	}

	booking, err := h.service.PatchBooking(r.Context(), bookingID, spotID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrConflict), errors.Is(err, bookings.ErrInvalidRequest):
			h.logger.Warn("PATCH /admin/bookings/{id} - Patch rejected: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBookingError(w, err)

		default:
			h.logger.Error("PATCH /admin/bookings/{id} - Failed to patch booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id} - Booking patched successfully: booking_id=%s, status=%s",
		bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
