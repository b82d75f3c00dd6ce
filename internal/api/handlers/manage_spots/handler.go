package manage_spots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные места"
	msgNotFound           = "парковочное место не найдено"
	msgAlreadyExists      = "место с таким ID уже существует"
	msgInUse              = "на место есть бронирования"
)

type Handler struct {
	service SpotService
	logger  Logger
}

func NewHandler(service SpotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/spots
// Query params: status, vehicleType (опционально)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), ToListRequest(r.URL.Query()))
	if err != nil {
		h.respondError(w, "GET /spots", err)
		return
	}

	h.logger.Info("GET /spots - Spots retrieved: count=%d", len(result.Spots))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/spots/{spotId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spotId"]

	result, err := h.service.GetByID(r.Context(), spotID)
	if err != nil {
		h.respondError(w, "GET /spots/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/admin/spots
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/spots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/spots", err)
		return
	}

	h.logger.Info("POST /admin/spots - Spot created: spot_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PATCH /api/v1/admin/spots/{spotId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spotId"]

	var req models.UpdateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/spots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), spotID, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/spots/{id}", err)
		return
	}

	h.logger.Info("PATCH /admin/spots/{id} - Spot updated: spot_id=%s, status=%s", spotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/spots/{spotId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	spotID := mux.Vars(r)["spotId"]

	if err := h.service.Delete(r.Context(), spotID); err != nil {
		h.respondError(w, "DELETE /admin/spots/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/spots/{id} - Spot deleted: spot_id=%s", spotID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, spots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, spots.ErrSpotNotFound):
		h.logger.Warn("%s - Spot not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, spots.ErrSpotAlreadyExists):
		h.logger.Warn("%s - Spot already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, spots.ErrSpotInUse):
		h.logger.Warn("%s - Spot in use", route)
		handlers.RespondConflict(w, msgInUse)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
