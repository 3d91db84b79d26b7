package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

var (
	_ service.IProfileService = (*MockProfileService)(nil)
	_ service.IStatsService   = (*MockStatsService)(nil)
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uint) (*types.ProfileView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProfileView), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) ChangePassword(ctx context.Context, userID uint, req *types.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

// MockStatsService is a mock implementation of the StatsService interface
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Counts(ctx context.Context, userID uint) (types.UserStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(types.UserStats), args.Error(1)
}

func (m *MockStatsService) WithActivity(ctx context.Context, userID uint) (*types.UserStatsView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserStatsView), args.Error(1)
}
