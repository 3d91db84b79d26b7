package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

var (
	_ service.IRecipeService    = (*MockRecipeService)(nil)
	_ service.IDashboardService = (*MockDashboardService)(nil)
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ListPublic(ctx context.Context, viewerID uint, params service.RecipeListParams) (response.Page[types.RecipeView], error) {
	args := m.Called(ctx, viewerID, params)
	page, _ := args.Get(0).(response.Page[types.RecipeView])
	return page, args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, viewerID, id uint) (*types.RecipeDetail, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, ownerID uint, req *types.CreateRecipeRequest) (*types.RecipeSummary, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeSummary), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, callerID, id uint, req *types.UpdateRecipeRequest) (*types.RecipeSummary, error) {
	args := m.Called(ctx, callerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeSummary), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, callerID, id uint) (string, error) {
	args := m.Called(ctx, callerID, id)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeService) Save(ctx context.Context, callerID, id uint) (*types.SaveResult, string, error) {
	args := m.Called(ctx, callerID, id)
	saved, _ := args.Get(0).(*types.SaveResult)
	return saved, args.String(1), args.Error(2)
}

func (m *MockRecipeService) Unsave(ctx context.Context, callerID, id uint) (string, error) {
	args := m.Called(ctx, callerID, id)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeService) Cook(ctx context.Context, callerID, id uint, req *types.CookRequest) (*types.CookResult, string, error) {
	args := m.Called(ctx, callerID, id, req)
	cooked, _ := args.Get(0).(*types.CookResult)
	return cooked, args.String(1), args.Error(2)
}

func (m *MockRecipeService) ListSaved(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.SavedRecipeView], error) {
	args := m.Called(ctx, userID, page)
	out, _ := args.Get(0).(response.Page[types.SavedRecipeView])
	return out, args.Error(1)
}

func (m *MockRecipeService) ListCooked(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.CookedRecipeView], error) {
	args := m.Called(ctx, userID, page)
	out, _ := args.Get(0).(response.Page[types.CookedRecipeView])
	return out, args.Error(1)
}

// MockDashboardService is a mock implementation of the dashboard service
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, userID uint, params service.RecipeListParams) (*types.DashboardView[types.RecipeView], error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardView[types.RecipeView]), args.Error(1)
}

func (m *MockDashboardService) MyRecipes(ctx context.Context, userID uint, params service.RecipeListParams) (*types.DashboardView[types.MyRecipeView], error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardView[types.MyRecipeView]), args.Error(1)
}
