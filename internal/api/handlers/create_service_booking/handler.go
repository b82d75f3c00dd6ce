package create_service_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, startDate ожидается в формате RFC 3339"
	msgMissingServiceID   = "ID услуги обязателен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]
	if serviceID == "" {
		h.logger.Warn("POST /services/{id}/bookings - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	var req ServiceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payer := createBooking.Payer{IsEmployee: middleware.IsEmployee(r.Context())}
	if accountID, ok := middleware.GetAccountID(r.Context()); ok {
		payer.AccountID = &accountID
	}

	booking, err := h.useCase.ExecuteService(r.Context(), req.ToUseCaseRequest(serviceID, payer))
	if err != nil {
		if bookings.KindOf(err) == bookings.CodeInternal {
			h.logger.Error("POST /services/{id}/bookings - Failed to create booking: service_id=%s, error=%v", serviceID, err)
		} else {
			h.logger.Warn("POST /services/{id}/bookings - Booking rejected: service_id=%s, error=%v", serviceID, err)
		}
		handlers.RespondBookingError(w, err)
		return
	}

	h.logger.Info("POST /services/{id}/bookings - Booking created: id=%s, service_id=%s, code=%s",
		booking.ID, serviceID, booking.ConfirmationNumber)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainServiceBooking(booking))
}
