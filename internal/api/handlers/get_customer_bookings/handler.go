package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgMissingAccountID = "отсутствует ID аккаунта"
	msgInvalidKind      = "некорректный тип бронирования, ожидается parking или service"
	msgCustomerNotFound = "клиент не найден"
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

// Handle GET /api/v1/customers/me/bookings
// Query params: kind (опционально: parking | service)
// Возвращаются только активные бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /customers/me/bookings - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var kind *domain.BookingKind
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, err := domain.ParseBookingKind(raw)
		if err != nil {
			h.logger.Warn("GET /customers/me/bookings - Invalid kind: %v", err)
			handlers.RespondBadRequest(w, msgInvalidKind)
			return
		}
		kind = &k
	}

	result, err := h.service.GetCustomerBookings(r.Context(), accountID, kind)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			h.logger.Warn("GET /customers/me/bookings - Customer not found: account_id=%s", accountID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		default:
			h.logger.Error("GET /customers/me/bookings - Failed to get bookings: account_id=%s, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/me/bookings - Bookings retrieved successfully: account_id=%s, count=%d",
		accountID, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
