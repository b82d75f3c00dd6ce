package get_facility_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/config"
)

const (
	msgInvalidConfigID = "некорректный ID конфигурации"
	msgNotFound        = "конфигурация не найдена"
	msgNoActiveConfig  = "нет активной конфигурации"
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

// HandleActive GET /api/v1/config
// Публичный endpoint: действующие тарифы и часы работы
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetActive(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, config.ErrNoActiveConfig):
			h.logger.Warn("GET /config - No active config")
			handlers.RespondNotFound(w, msgNoActiveConfig)

		default:
			h.logger.Error("GET /config - Failed to get active config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /config - Active config retrieved: config_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGetByID GET /api/v1/admin/configs/{configId}
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	configID, err := strconv.ParseInt(mux.Vars(r)["configId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/configs/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	result, err := h.service.GetByID(r.Context(), configID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			h.logger.Warn("GET /admin/configs/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/configs/{id} - Failed to get config: config_id=%d, error=%v", configID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/admin/configs
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/configs - Failed to list configs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/configs - Configs retrieved: count=%d", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
