package create_parking_booking

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты начала, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// HandleIncremental POST /api/v1/parking/bookings/incremental
func (h *Handler) HandleIncremental(w http.ResponseWriter, r *http.Request) {
	var req IncrementalBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/bookings/incremental - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.ExecuteIncremental(r.Context(), req.ToUseCaseRequest(payerFromRequest(r)))
	if err != nil {
		h.logError("POST /parking/bookings/incremental", err)
		handlers.RespondBookingError(w, err)
		return
	}

	h.logger.Info("POST /parking/bookings/incremental - Booking created: id=%s, spot=%s, code=%s",
		booking.ID, req.ParkingSpotID, booking.ConfirmationNumber)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainParkingBooking(booking))
}

// HandleMonthly POST /api/v1/parking/bookings/monthly
func (h *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	var req MonthlyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parking/bookings/monthly - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(payerFromRequest(r), h.location)
	if err != nil {
		h.logger.Warn("POST /parking/bookings/monthly - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	booking, err := h.useCase.ExecuteMonthly(r.Context(), useCaseReq)
	if err != nil {
		h.logError("POST /parking/bookings/monthly", err)
		handlers.RespondBookingError(w, err)
		return
	}

	h.logger.Info("POST /parking/bookings/monthly - Booking created: id=%s, code=%s, status=%s",
		booking.ID, booking.ConfirmationNumber, booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainParkingBooking(booking))
}

func (h *Handler) logError(route string, err error) {
	if bookings.KindOf(err) == bookings.CodeInternal {
		h.logger.Error("%s - Failed to create booking: %v", route, err)
		return
	}
	h.logger.Warn("%s - Booking rejected: %v", route, err)
}

// payerFromRequest данные плательщика из контекста аутентификации
func payerFromRequest(r *http.Request) createBooking.Payer {
	payer := createBooking.Payer{IsEmployee: middleware.IsEmployee(r.Context())}
	if accountID, ok := middleware.GetAccountID(r.Context()); ok {
		payer.AccountID = &accountID
	}
	return payer
}
