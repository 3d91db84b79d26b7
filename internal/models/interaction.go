package models

import (
	"time"
)

// SavedRecipe is a bookmark, unique per user and recipe.
type SavedRecipe struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_saved_user_recipe" json:"userId"`
	RecipeID uint      `gorm:"not null;uniqueIndex:idx_saved_user_recipe;index" json:"recipeId"`
	SavedAt  time.Time `gorm:"not null;index" json:"savedAt"`
}

// CookedRecipe is an append-only cook log entry. A user may cook a recipe many times.
type CookedRecipe struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"userId"`
	RecipeID uint      `gorm:"not null;index" json:"recipeId"`
	Rating   *int      `gorm:"check:rating IS NULL OR rating BETWEEN 1 AND 5" json:"rating"`
	Notes    *string   `gorm:"type:text" json:"notes"`
	CookedAt time.Time `gorm:"not null;index" json:"cookedAt"`
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Recipe{}, &SavedRecipe{}, &CookedRecipe{}}
}
