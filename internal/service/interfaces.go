package service

import (
	"context"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResult, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*types.AuthResult, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error)
}

// IProfileService defines the interface for the caller's own account
type IProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*types.ProfileView, error)
	UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, req *types.ChangePasswordRequest) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListPublic(ctx context.Context, viewerID uint, params RecipeListParams) (response.Page[types.RecipeView], error)
	Get(ctx context.Context, viewerID, id uint) (*types.RecipeDetail, error)
	Create(ctx context.Context, ownerID uint, req *types.CreateRecipeRequest) (*types.RecipeSummary, error)
	Update(ctx context.Context, callerID, id uint, req *types.UpdateRecipeRequest) (*types.RecipeSummary, error)
	Delete(ctx context.Context, callerID, id uint) (string, error)
	Save(ctx context.Context, callerID, id uint) (*types.SaveResult, string, error)
	Unsave(ctx context.Context, callerID, id uint) (string, error)
	Cook(ctx context.Context, callerID, id uint, req *types.CookRequest) (*types.CookResult, string, error)
	ListSaved(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.SavedRecipeView], error)
	ListCooked(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.CookedRecipeView], error)
}

// IDashboardService defines the interface for the signed-in landing views
type IDashboardService interface {
	Dashboard(ctx context.Context, userID uint, params RecipeListParams) (*types.DashboardView[types.RecipeView], error)
	MyRecipes(ctx context.Context, userID uint, params RecipeListParams) (*types.DashboardView[types.MyRecipeView], error)
}

// IStatsService defines the interface for per-user activity
type IStatsService interface {
	Counts(ctx context.Context, userID uint) (types.UserStats, error)
	WithActivity(ctx context.Context, userID uint) (*types.UserStatsView, error)
}

var (
	_ IAuthService      = (*AuthService)(nil)
	_ IProfileService   = (*ProfileService)(nil)
	_ IRecipeService    = (*RecipeService)(nil)
	_ IDashboardService = (*DashboardService)(nil)
	_ IStatsService     = (*StatsService)(nil)
)
