package manage_services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id string) (*models.ServiceResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) List(ctx context.Context) (*models.ServiceListResponse, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	args := m.Called(ctx, id, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ServiceResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/services", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/services/{serviceId}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/admin/services", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/admin/services/{serviceId}", h.HandleUpdate).Methods(http.MethodPatch)
	r.HandleFunc("/admin/services/{serviceId}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandleCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateServiceRequest) bool {
		return req.DisplayName == "Car Wash" && req.DurationMinutes == 15 && req.Fee.String() == "50"
	})).Return(&models.ServiceResponse{ID: "car-wash", DisplayName: "Car Wash", DurationMinutes: 15, Fee: "50.00"}, nil)

	rec := do(newRouter(NewHandler(svc, logger.Nop())), http.MethodPost, "/admin/services",
		`{"displayName":"Car Wash","durationMinutes":15,"fee":"50"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"car-wash"`)
}

func TestHandleErrors(t *testing.T) {
	svc := new(mockService)
	svc.On("GetByID", mock.Anything, "valet").Return(nil, catalog.ErrServiceNotFound)
	svc.On("Delete", mock.Anything, "car-wash").Return(catalog.ErrServiceInUse)
	svc.On("Update", mock.Anything, "car-wash", mock.Anything).Return(nil, catalog.ErrInvalidInput)
	svc.On("List", mock.Anything).Return(nil, catalog.ErrInternal)

	r := newRouter(NewHandler(svc, logger.Nop()))

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/services/valet", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/admin/services/car-wash", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, "/admin/services/car-wash", `{"durationMinutes":0}`).Code)
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/services", "").Code)
}
