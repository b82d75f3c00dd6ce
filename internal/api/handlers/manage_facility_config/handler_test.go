package manage_facility_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/service/config"
	"github.com/m04kA/SMC-ParkingService/internal/service/config/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ConfigResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Activate(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ConfigResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) UpsertSchedule(ctx context.Context, configID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	args := m.Called(ctx, configID, req)
	if v := args.Get(0); v != nil {
		return v.(*models.ScheduleResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) DeleteSchedule(ctx context.Context, configID int64, day time.Weekday) error {
	return m.Called(ctx, configID, day).Error(0)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/admin/configs", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/admin/configs/{configId}/activate", h.HandleActivate).Methods(http.MethodPost)
	r.HandleFunc("/admin/configs/{configId}/schedules/{day}", h.HandleUpsertSchedule).Methods(http.MethodPut)
	r.HandleFunc("/admin/configs/{configId}/schedules/{day}", h.HandleDeleteSchedule).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandleCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateConfigRequest) bool {
		return req.MonthlyFee.String() == "60" && req.IncrementMinutes == 15
	})).Return(&models.ConfigResponse{ID: 1, MonthlyFee: "60.00"}, nil)

	rec := do(newRouter(NewHandler(svc, logger.Nop())), http.MethodPost, "/admin/configs",
		`{"monthlyFee":"60","incrementFee":"0.25","incrementMinutes":15,"maxIncrementMinutes":120,"schedules":[]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreate_Invalid(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, config.ErrInvalidInput)

	rec := do(newRouter(NewHandler(svc, logger.Nop())), http.MethodPost, "/admin/configs",
		`{"monthlyFee":"60","incrementFee":"0.25","incrementMinutes":0,"maxIncrementMinutes":120}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleActivate(t *testing.T) {
	svc := new(mockService)
	svc.On("Activate", mock.Anything, int64(2)).Return(&models.ConfigResponse{ID: 2, IsActive: true}, nil)
	svc.On("Activate", mock.Anything, int64(3)).Return(nil, config.ErrActivationConflict)
	svc.On("Activate", mock.Anything, int64(4)).Return(nil, config.ErrConfigNotFound)

	r := newRouter(NewHandler(svc, logger.Nop()))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/admin/configs/2/activate", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/admin/configs/3/activate", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/admin/configs/4/activate", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/configs/x/activate", "").Code)
}

func TestHandleSchedules(t *testing.T) {
	svc := new(mockService)
	svc.On("UpsertSchedule", mock.Anything, int64(1), &models.ScheduleRequest{Day: "saturday", StartTime: "10:00", EndTime: "14:00"}).
		Return(&models.ScheduleResponse{Day: "Saturday", StartTime: "10:00", EndTime: "14:00"}, nil)
	svc.On("DeleteSchedule", mock.Anything, int64(1), time.Sunday).Return(config.ErrScheduleNotFound)

	r := newRouter(NewHandler(svc, logger.Nop()))

	rec := do(r, http.MethodPut, "/admin/configs/1/schedules/saturday", `{"startTime":"10:00","endTime":"14:00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"day":"Saturday"`)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/admin/configs/1/schedules/sunday", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/admin/configs/1/schedules/someday", "").Code)
}
