package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/service"
)

// Env is a fully wired service layer over a fresh SQLite database
type Env struct {
	DB        *gorm.DB
	Tokens    *service.TokenService
	Auth      *service.AuthService
	Stats     *service.StatsService
	Profile   *service.ProfileService
	Recipes   *service.RecipeService
	Dashboard *service.DashboardService
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	return NewEnvWithDB(SetupTestDB(t))
}

// NewEnvWithDB wires the services over an existing database
func NewEnvWithDB(db *gorm.DB) *Env {
	tokens := NewTokenService()
	auth := service.NewAuthService(db, tokens).WithPasswordCost(bcrypt.MinCost)
	stats := service.NewStatsService(db)
	recipes := service.NewRecipeService(db)
	return &Env{
		DB:        db,
		Tokens:    tokens,
		Auth:      auth,
		Stats:     stats,
		Profile:   service.NewProfileService(db, auth, stats),
		Recipes:   recipes,
		Dashboard: service.NewDashboardService(db, recipes, stats),
	}
}
