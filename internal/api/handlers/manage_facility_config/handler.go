package manage_facility_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/config"
	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
)

const (
	msgInvalidConfigID    = "некорректный ID конфигурации"
	msgInvalidDay         = "некорректный день недели"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
	msgNotFound           = "конфигурация не найдена"
	msgScheduleNotFound   = "расписание на этот день не задано"
	msgActivationConflict = "конфигурация активируется параллельно, повторите запрос"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/configs
// Новая конфигурация создается неактивной
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/configs", err)
		return
	}

	h.logger.Info("POST /admin/configs - Config created: config_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleActivate POST /api/v1/admin/configs/{configId}/activate
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	configID, ok := h.configID(w, r, "POST /admin/configs/{id}/activate")
	if !ok {
		return
	}

	result, err := h.service.Activate(r.Context(), configID)
	if err != nil {
		h.respondError(w, "POST /admin/configs/{id}/activate", err)
		return
	}

	h.logger.Info("POST /admin/configs/{id}/activate - Config activated: config_id=%d", configID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpsertSchedule PUT /api/v1/admin/configs/{configId}/schedules/{day}
func (h *Handler) HandleUpsertSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/configs/{id}/schedules/{day}"

	configID, ok := h.configID(w, r, route)
	if !ok {
		return
	}

	var req ScheduleBodyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertSchedule(r.Context(), configID, req.ToServiceRequest(mux.Vars(r)["day"]))
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Schedule saved: config_id=%d, day=%s", route, configID, result.Day)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeleteSchedule DELETE /api/v1/admin/configs/{configId}/schedules/{day}
// После удаления парковка в этот день закрыта
func (h *Handler) HandleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/configs/{id}/schedules/{day}"

	configID, ok := h.configID(w, r, route)
	if !ok {
		return
	}

	day, err := domain.ParseWeekday(mux.Vars(r)["day"])
	if err != nil {
		h.logger.Warn("%s - Invalid day: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), configID, day); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Schedule deleted: config_id=%d, day=%s", route, configID, day)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) configID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	configID, err := strconv.ParseInt(mux.Vars(r)["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid config ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return 0, false
	}
	return configID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, config.ErrConfigNotFound):
		h.logger.Warn("%s - Config not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, config.ErrScheduleNotFound):
		h.logger.Warn("%s - Schedule not found", route)
		handlers.RespondNotFound(w, msgScheduleNotFound)

	case errors.Is(err, config.ErrActivationConflict):
		h.logger.Warn("%s - Activation conflict", route)
		handlers.RespondConflict(w, msgActivationConflict)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
