package types

import (
	"github.com/pageza/recipe-share/backend/internal/models"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

// LoginRequest accepts either an email or a username as the identifier
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileRequest changes only the fields that are present
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string               `json:"title"`
	Description  *string              `json:"description"`
	ImageURL     *string              `json:"imageUrl"`
	PrepTime     *Number              `json:"prepTime"`
	CookTime     *Number              `json:"cookTime"`
	Servings     *Number              `json:"servings"`
	Difficulty   string               `json:"difficulty"`
	IsPublic     *bool                `json:"isPublic"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
}

// UpdateRecipeRequest is a partial merge: absent keys leave the column untouched
type UpdateRecipeRequest struct {
	Title        Optional[string]               `json:"title"`
	Description  Optional[string]               `json:"description"`
	ImageURL     Optional[string]               `json:"imageUrl"`
	PrepTime     Optional[Number]               `json:"prepTime"`
	CookTime     Optional[Number]               `json:"cookTime"`
	Servings     Optional[Number]               `json:"servings"`
	Difficulty   Optional[string]               `json:"difficulty"`
	IsPublic     Optional[bool]                 `json:"isPublic"`
	Ingredients  Optional[[]models.Ingredient]  `json:"ingredients"`
	Instructions Optional[[]models.Instruction] `json:"instructions"`
}

// CookRequest logs a cook attempt. Rating is optional but must be 1-5 when sent.
type CookRequest struct {
	Rating *Number `json:"rating"`
	Notes  *string `json:"notes"`
}
