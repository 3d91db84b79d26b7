package models

import (
	"time"
)

// Difficulty levels
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

type Instruction struct {
	Step int    `json:"step"`
	Text string `json:"text"`
}

// Recipe is owned by UserID for its whole life. Private recipes are visible to
// their owner only.
type Recipe struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	UserID       uint                  `gorm:"not null;index" json:"userId"`
	Title        string                `gorm:"size:255;not null" json:"title"`
	Description  *string               `gorm:"type:text" json:"description"`
	ImageURL     *string               `gorm:"size:500" json:"imageUrl"`
	PrepTime     *int                  `json:"prepTime"`
	CookTime     *int                  `json:"cookTime"`
	Servings     *int                  `json:"servings"`
	Difficulty   string                `gorm:"size:10;not null;index" json:"difficulty"`
	IsPublic     bool                  `gorm:"not null;index" json:"isPublic"`
	Ingredients  JSONList[Ingredient]  `gorm:"not null" json:"ingredients"`
	Instructions JSONList[Instruction] `gorm:"not null" json:"instructions"`
	CreatedAt    time.Time             `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`

	User     User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SavedBy  []SavedRecipe  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CookedBy []CookedRecipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// VisibleTo reports whether userID may read the recipe. Zero is anonymous.
func (r *Recipe) VisibleTo(userID uint) bool {
	return r.IsPublic || (userID != 0 && r.UserID == userID)
}
