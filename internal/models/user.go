package models

import (
	"time"
)

// User is an account. Username and email are stored lowercased.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	SavedRecipes  []SavedRecipe  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CookedRecipes []CookedRecipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
