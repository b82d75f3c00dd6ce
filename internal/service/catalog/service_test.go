package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicleservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, s *domain.VehicleService) (*domain.VehicleService, error) {
	args := m.Called(ctx, s)
	if v := args.Get(0); v != nil {
		return v.(*domain.VehicleService), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*domain.VehicleService, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.VehicleService), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context) ([]*domain.VehicleService, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.VehicleService), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, s *domain.VehicleService) (*domain.VehicleService, error) {
	args := m.Called(ctx, s)
	if v := args.Get(0); v != nil {
		return v.(*domain.VehicleService), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_Create(t *testing.T) {
	t.Run("derives id from name", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, logger.Nop())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.VehicleService) bool {
			return s.ID == "full-detail" && s.DisplayName == "Full Detail"
		})).Return(&domain.VehicleService{ID: "full-detail", DisplayName: "Full Detail", DurationMinutes: 90, Fee: decimal.NewFromInt(120)}, nil)

		resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
			DisplayName: "  Full   Detail ", DurationMinutes: 90, Fee: decimal.NewFromInt(120),
		})
		require.NoError(t, err)
		assert.Equal(t, "full-detail", resp.ID)
		assert.Equal(t, "120.00", resp.Fee)
	})

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{"empty name", models.CreateServiceRequest{DurationMinutes: 15}},
		{"zero duration", models.CreateServiceRequest{DisplayName: "Wash"}},
		{"too long", models.CreateServiceRequest{DisplayName: "Wash", DurationMinutes: domain.MaxServiceDuration + 1}},
		{"negative fee", models.CreateServiceRequest{DisplayName: "Wash", DurationMinutes: 15, Fee: decimal.NewFromInt(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(new(mockRepo), logger.Nop())
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo, logger.Nop())
		repo.On("Create", mock.Anything, mock.Anything).Return(nil, serviceRepo.ErrDuplicateService)

		_, err := svc.Create(context.Background(), &models.CreateServiceRequest{DisplayName: "Car Wash", DurationMinutes: 15})
		assert.ErrorIs(t, err, ErrServiceAlreadyExists)
	})
}

func TestService_Update(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, logger.Nop())

	repo.On("GetByID", mock.Anything, "car-wash").Return(&domain.VehicleService{ID: "car-wash", DisplayName: "Car Wash", DurationMinutes: 15, Fee: decimal.NewFromInt(50)}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.VehicleService) bool {
		return s.ID == "car-wash" && s.DurationMinutes == 20 && s.Fee.Equal(decimal.NewFromInt(50))
	})).Return(&domain.VehicleService{ID: "car-wash", DisplayName: "Car Wash", DurationMinutes: 20, Fee: decimal.NewFromInt(50)}, nil)

	resp, err := svc.Update(context.Background(), "car-wash", &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(20)})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.DurationMinutes)
	repo.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, logger.Nop())

	repo.On("Delete", mock.Anything, "car-wash").Return(serviceRepo.ErrServiceInUse)
	repo.On("Delete", mock.Anything, "nope").Return(serviceRepo.ErrServiceNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "car-wash"), ErrServiceInUse)
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), ErrServiceNotFound)
}
