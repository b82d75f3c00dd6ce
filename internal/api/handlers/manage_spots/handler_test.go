package manage_spots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/service/spots"
	"github.com/m04kA/SMC-ParkingService/internal/service/spots/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateSpotRequest) (*models.SpotResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.SpotResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id string) (*models.SpotResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.SpotResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) List(ctx context.Context, req *models.ListSpotsRequest) (*models.SpotListResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.SpotListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id string, req *models.UpdateSpotRequest) (*models.SpotResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.SpotResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/spots", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/spots/{spotId}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/admin/spots", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/admin/spots/{spotId}", h.HandleUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/admin/spots/{spotId}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandleList(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListSpotsRequest) bool {
		return req.Status != nil && *req.Status == "OPEN" && req.VehicleType == nil
	})).Return(&models.SpotListResponse{Spots: []models.SpotResponse{{ID: "A035", Status: "OPEN"}}}, nil)

	rec := do(newRouter(NewHandler(svc, logger.Nop())), http.MethodGet, "/spots?status=OPEN", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"A035"`)
}

func TestHandleCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, &models.CreateSpotRequest{ID: "a035", VehicleType: "REGULAR"}).
		Return(&models.SpotResponse{ID: "A035", VehicleType: "REGULAR", Status: "OPEN"}, nil)
	svc.On("Create", mock.Anything, &models.CreateSpotRequest{ID: "A035", VehicleType: "REGULAR"}).
		Return(nil, spots.ErrSpotAlreadyExists)
	svc.On("Create", mock.Anything, &models.CreateSpotRequest{ID: "35", VehicleType: "REGULAR"}).
		Return(nil, spots.ErrInvalidInput)

	r := newRouter(NewHandler(svc, logger.Nop()))

	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/admin/spots", `{"id":"a035","vehicleType":"REGULAR"}`).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/admin/spots", `{"id":"A035","vehicleType":"REGULAR"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/spots", `{"id":"35","vehicleType":"REGULAR"}`).Code)
}

func TestHandleUpdateAndDelete(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, "A035", mock.Anything).Return(&models.SpotResponse{ID: "A035", Status: "CLOSED"}, nil)
	svc.On("Delete", mock.Anything, "A035").Return(spots.ErrSpotInUse)
	svc.On("Delete", mock.Anything, "B001").Return(nil)
	svc.On("GetByID", mock.Anything, "Z999").Return(nil, spots.ErrSpotNotFound)

	r := newRouter(NewHandler(svc, logger.Nop()))

	rec := do(r, http.MethodPatch, "/admin/spots/A035", `{"status":"CLOSED","message":"resurfacing"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CLOSED"`)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/admin/spots/A035", "").Code)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/spots/B001", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/spots/Z999", "").Code)
}
