package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func normalizeDifficulty(raw string) (string, error) {
	d := strings.ToUpper(strings.TrimSpace(raw))
	if d == "" {
		return models.DifficultyEasy, nil
	}
	if !query.IsDifficulty(d) {
		return "", apperror.Validation("Invalid difficulty level")
	}
	return d, nil
}

func normalizeIngredients(in []models.Ingredient) (models.JSONList[models.Ingredient], error) {
	out := make(models.JSONList[models.Ingredient], 0, len(in))
	for _, ing := range in {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.Amount = strings.TrimSpace(ing.Amount)
		ing.Unit = strings.TrimSpace(ing.Unit)
		if ing.Name == "" {
			continue
		}
		out = append(out, ing)
	}
	if len(out) == 0 {
		return nil, apperror.Validation("At least one ingredient is required")
	}
	return out, nil
}

// normalizeInstructions drops blank steps and renumbers the rest from 1
func normalizeInstructions(in []models.Instruction) (models.JSONList[models.Instruction], error) {
	out := make(models.JSONList[models.Instruction], 0, len(in))
	for _, step := range in {
		text := strings.TrimSpace(step.Text)
		if text == "" {
			continue
		}
		out = append(out, models.Instruction{Step: len(out) + 1, Text: text})
	}
	if len(out) == 0 {
		return nil, apperror.Validation("At least one instruction is required")
	}
	return out, nil
}

// MaxRecipeNumber bounds prep time, cook time and servings so they fit an INTEGER column
const MaxRecipeNumber = math.MaxInt32

// minutesField accepts a missing value or a number >= 0. Fractions are truncated.
func minutesField(n *types.Number, label string) (*int, error) {
	if n == nil || n.Null {
		return nil, nil
	}
	if n.Invalid || n.Value < 0 {
		return nil, apperror.Validation(fmt.Sprintf("%s must be a positive number", label))
	}
	if n.Value > MaxRecipeNumber {
		return nil, apperror.Validation(fmt.Sprintf("%s must be at most %d", label, MaxRecipeNumber))
	}
	v := n.Int()
	return &v, nil
}

// servingsField accepts a missing value or a number >= 1
func servingsField(n *types.Number) (*int, error) {
	if n == nil || n.Null {
		return nil, nil
	}
	if n.Invalid || n.Value < 1 {
		return nil, apperror.Validation("Servings must be a positive number")
	}
	if n.Value > MaxRecipeNumber {
		return nil, apperror.Validation(fmt.Sprintf("Servings must be at most %d", MaxRecipeNumber))
	}
	v := n.Int()
	return &v, nil
}

// ratingField accepts a missing value or an integer from 1 to 5
func ratingField(n *types.Number) (*int, error) {
	if n == nil || n.Null {
		return nil, nil
	}
	if !n.IsInteger() || n.Value < 1 || n.Value > 5 {
		return nil, apperror.Validation("Rating must be between 1 and 5")
	}
	v := n.Int()
	return &v, nil
}

func optionalNumber(o types.Optional[types.Number]) *types.Number {
	if !o.Present() {
		return nil
	}
	return &o.Value
}

// optionalText trims s and maps blank to nil
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
