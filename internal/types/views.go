package types

import (
	"time"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
)

// OwnerSummary is the public slice of a recipe's author
type OwnerSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RecipeSummary is a recipe with its author and aggregate interaction counts
type RecipeSummary struct {
	models.Recipe
	User        OwnerSummary `json:"user"`
	TotalSaves  int64        `json:"totalSaves"`
	TotalCooked int64        `json:"totalCooked"`
}

// RecipeView is a feed item personalised for the caller. Caller fields stay
// false/null for anonymous requests.
type RecipeView struct {
	RecipeSummary
	IsSavedByUser  bool       `json:"isSavedByUser"`
	IsCookedByUser bool       `json:"isCookedByUser"`
	UserRating     *int       `json:"userRating"`
	UserCookedAt   *time.Time `json:"userCookedAt"`
	AverageRating  *string    `json:"averageRating"`
}

// RecipeDetail adds the caller's private notes from their latest cook
type RecipeDetail struct {
	RecipeView
	UserNotes *string `json:"userNotes"`
}

type SavedRecipeView struct {
	RecipeSummary
	SavedAt time.Time `json:"savedAt"`
}

type CookedRecipeView struct {
	RecipeSummary
	CookedAt   time.Time `json:"cookedAt"`
	UserRating *int      `json:"userRating"`
	UserNotes  *string   `json:"userNotes"`
}

type UsernameRef struct {
	Username string `json:"username"`
}

type SaveActivity struct {
	ID      uint        `json:"id"`
	SavedAt time.Time   `json:"savedAt"`
	User    UsernameRef `json:"user"`
}

type CookActivity struct {
	ID       uint        `json:"id"`
	Rating   *int        `json:"rating"`
	CookedAt time.Time   `json:"cookedAt"`
	User     UsernameRef `json:"user"`
}

type RecipeActivity struct {
	LastSaved  *SaveActivity `json:"lastSaved"`
	LastCooked *CookActivity `json:"lastCooked"`
}

// MyRecipeView is an item in the owner's management list
type MyRecipeView struct {
	RecipeSummary
	AverageRating  *string        `json:"averageRating"`
	RecentActivity RecipeActivity `json:"recentActivity"`
}

// UserStats are the per-user activity counters
type UserStats struct {
	RecipesCreated int64 `json:"recipesCreated"`
	RecipesSaved   int64 `json:"recipesSaved"`
	RecipesCooked  int64 `json:"recipesCooked"`
}

type RecipeRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type RecentRecipe struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type RecentSave struct {
	ID       uint      `json:"id"`
	RecipeID uint      `json:"recipeId"`
	SavedAt  time.Time `json:"savedAt"`
	Recipe   RecipeRef `json:"recipe"`
}

type RecentCook struct {
	ID       uint      `json:"id"`
	RecipeID uint      `json:"recipeId"`
	Rating   *int      `json:"rating"`
	Notes    *string   `json:"notes"`
	CookedAt time.Time `json:"cookedAt"`
	Recipe   RecipeRef `json:"recipe"`
}

type RecentActivity struct {
	RecentlyCreated []RecentRecipe `json:"recentlyCreated"`
	RecentlySaved   []RecentSave   `json:"recentlySaved"`
	RecentlyCooked  []RecentCook   `json:"recentlyCooked"`
}

// UserStatsView is the body of the user stats endpoints
type UserStatsView struct {
	UserStats
	RecentActivity RecentActivity `json:"recentActivity"`
}

type FilterEcho struct {
	AppliedFilters map[string]any    `json:"appliedFilters"`
	Sorting        query.SortOptions `json:"sorting"`
}

// DashboardView pairs a recipe page with the caller's stats
type DashboardView[T any] struct {
	response.Page[T]
	UserStats UserStats  `json:"userStats"`
	Filters   FilterEcho `json:"filters"`
}

// AuthResult is returned by register and login
type AuthResult struct {
	User   *models.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// ProfileView is the caller's own account with activity counters
type ProfileView struct {
	*models.User
	Stats UserStats `json:"stats"`
}

// CookResult echoes a newly logged cook attempt
type CookResult struct {
	ID       uint      `json:"id"`
	Rating   *int      `json:"rating"`
	Notes    *string   `json:"notes"`
	CookedAt time.Time `json:"cookedAt"`
}

// SaveResult echoes a newly created bookmark
type SaveResult struct {
	ID      uint      `json:"id"`
	SavedAt time.Time `json:"savedAt"`
}
