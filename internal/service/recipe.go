package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RecipeListParams bundles the translated list query
type RecipeListParams struct {
	Filter     query.RecipeFilter
	Sort       query.SortOptions
	Pagination query.Pagination
}

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListPublic returns the public feed. The public constraint is applied after
// the caller's filters and cannot be overridden by them.
func (s *RecipeService) ListPublic(ctx context.Context, viewerID uint, params RecipeListParams) (response.Page[types.RecipeView], error) {
	recipes, total, err := s.findPage(ctx, params, func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.is_public = ?", true)
	})
	if err != nil {
		return response.Page[types.RecipeView]{}, err
	}
	items, err := s.views(ctx, recipes, viewerID)
	if err != nil {
		return response.Page[types.RecipeView]{}, err
	}
	return response.NewPage(items, params.Pagination.Page, params.Pagination.Limit, total), nil
}

// findPage loads one page of recipes and the total match count concurrently
func (s *RecipeService) findPage(ctx context.Context, params RecipeListParams, constrain func(*gorm.DB) *gorm.DB) ([]models.Recipe, int64, error) {
	var (
		recipes []models.Recipe
		total   int64
	)
	base := func(ctx context.Context) *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Recipe{}).Scopes(params.Filter.Scope, constrain)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base(gctx).Scopes(params.Sort.Scope, params.Pagination.Scope).Find(&recipes).Error
	})
	g.Go(func() error {
		return base(gctx).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, total, nil
}

func (s *RecipeService) views(ctx context.Context, recipes []models.Recipe, viewerID uint) ([]types.RecipeView, error) {
	d, err := decorate(ctx, s.db, recipes, viewerID)
	if err != nil {
		return nil, err
	}
	items := make([]types.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, d.view(r))
	}
	return items, nil
}

// load fetches a recipe or returns a not-found error
func (s *RecipeService) load(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Recipe not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// loadOwned fetches a recipe and checks that callerID owns it
func (s *RecipeService) loadOwned(ctx context.Context, callerID, id uint, denied string) (*models.Recipe, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != callerID {
		return nil, apperror.Forbidden(denied)
	}
	return recipe, nil
}

// Get returns one recipe personalised for the viewer. Private recipes are
// visible to their owner only.
func (s *RecipeService) Get(ctx context.Context, viewerID, id uint) (*types.RecipeDetail, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(viewerID) {
		return nil, apperror.Forbidden("Access denied to private recipe")
	}
	d, err := decorate(ctx, s.db, []models.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return d.detail(*recipe), nil
}

// Create validates the input and stores a recipe owned by ownerID
func (s *RecipeService) Create(ctx context.Context, ownerID uint, req *types.CreateRecipeRequest) (*types.RecipeSummary, error) {
	recipe := &models.Recipe{UserID: ownerID, IsPublic: true}

	recipe.Title = strings.TrimSpace(req.Title)
	if recipe.Title == "" {
		return nil, apperror.Validation("Recipe title is required")
	}
	ingredients, err := normalizeIngredients(req.Ingredients)
	if err != nil {
		return nil, err
	}
	instructions, err := normalizeInstructions(req.Instructions)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients
	recipe.Instructions = instructions

	if recipe.Difficulty, err = normalizeDifficulty(req.Difficulty); err != nil {
		return nil, err
	}
	if recipe.PrepTime, err = minutesField(req.PrepTime, "Prep time"); err != nil {
		return nil, err
	}
	if recipe.CookTime, err = minutesField(req.CookTime, "Cook time"); err != nil {
		return nil, err
	}
	if recipe.Servings, err = servingsField(req.Servings); err != nil {
		return nil, err
	}
	recipe.Description = optionalText(req.Description)
	recipe.ImageURL = optionalText(req.ImageURL)
	if req.IsPublic != nil {
		recipe.IsPublic = *req.IsPublic
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}
	return s.summary(ctx, recipe)
}

func (s *RecipeService) summary(ctx context.Context, recipe *models.Recipe) (*types.RecipeSummary, error) {
	d, err := decorate(ctx, s.db, []models.Recipe{*recipe}, 0)
	if err != nil {
		return nil, err
	}
	summary := d.summary(*recipe)
	return &summary, nil
}

// Update applies only the fields present in req. Every present field is
// validated with the same rules as Create; an invalid difficulty is rejected.
func (s *RecipeService) Update(ctx context.Context, callerID, id uint, req *types.UpdateRecipeRequest) (*types.RecipeSummary, error) {
	recipe, err := s.loadOwned(ctx, callerID, id, "You can only update your own recipes")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		if title == "" {
			return nil, apperror.Validation("Recipe title is required")
		}
		updates["title"] = title
	}
	if req.Description.Set {
		updates["description"] = optionalText(&req.Description.Value)
	}
	if req.ImageURL.Set {
		updates["image_url"] = optionalText(&req.ImageURL.Value)
	}
	if req.PrepTime.Set {
		v, err := minutesField(optionalNumber(req.PrepTime), "Prep time")
		if err != nil {
			return nil, err
		}
		updates["prep_time"] = v
	}
	if req.CookTime.Set {
		v, err := minutesField(optionalNumber(req.CookTime), "Cook time")
		if err != nil {
			return nil, err
		}
		updates["cook_time"] = v
	}
	if req.Servings.Set {
		v, err := servingsField(optionalNumber(req.Servings))
		if err != nil {
			return nil, err
		}
		updates["servings"] = v
	}
	if req.Difficulty.Present() {
		d, err := normalizeDifficulty(req.Difficulty.Value)
		if err != nil {
			return nil, err
		}
		updates["difficulty"] = d
	}
	if req.IsPublic.Present() {
		updates["is_public"] = req.IsPublic.Value
	}
	if req.Ingredients.Set {
		v, err := normalizeIngredients(req.Ingredients.Value)
		if err != nil {
			return nil, err
		}
		updates["ingredients"] = v
	}
	if req.Instructions.Set {
		v, err := normalizeInstructions(req.Instructions.Value)
		if err != nil {
			return nil, err
		}
		updates["instructions"] = v
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("updating recipe: %w", err)
		}
	}
	if recipe, err = s.load(ctx, id); err != nil {
		return nil, err
	}
	return s.summary(ctx, recipe)
}

// Delete removes an owned recipe with its saves and cooks and returns its title
func (s *RecipeService) Delete(ctx context.Context, callerID, id uint) (string, error) {
	recipe, err := s.loadOwned(ctx, callerID, id, "You can only delete your own recipes")
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Select("SavedBy", "CookedBy").Delete(recipe).Error; err != nil {
		return "", fmt.Errorf("deleting recipe: %w", err)
	}
	return recipe.Title, nil
}

// Save bookmarks a visible recipe. A second save of the same recipe conflicts.
func (s *RecipeService) Save(ctx context.Context, callerID, id uint) (*types.SaveResult, string, error) {
	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !recipe.VisibleTo(callerID) {
		return nil, "", apperror.Forbidden("Cannot save private recipe")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", callerID, id).
		Count(&existing).Error; err != nil {
		return nil, "", fmt.Errorf("checking saved recipe: %w", err)
	}
	if existing > 0 {
		return nil, "", apperror.Conflict("Recipe already saved")
	}

	saved := &models.SavedRecipe{UserID: callerID, RecipeID: id, SavedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperror.Conflict("Recipe already saved")
		}
		return nil, "", fmt.Errorf("saving recipe: %w", err)
	}
	return &types.SaveResult{ID: saved.ID, SavedAt: saved.SavedAt}, recipe.Title, nil
}

// Unsave removes the caller's bookmark and returns the recipe title
func (s *RecipeService) Unsave(ctx context.Context, callerID, id uint) (string, error) {
	var row struct {
		ID    uint
		Title string
	}
	err := s.db.WithContext(ctx).Table("saved_recipes").
		Select("saved_recipes.id, recipes.title").
		Joins("JOIN recipes ON recipes.id = saved_recipes.recipe_id").
		Where("saved_recipes.user_id = ? AND saved_recipes.recipe_id = ?", callerID, id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.NotFound("Recipe not found in saved recipes")
	}
	if err != nil {
		return "", fmt.Errorf("loading saved recipe: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.SavedRecipe{}, row.ID).Error; err != nil {
		return "", fmt.Errorf("unsaving recipe: %w", err)
	}
	return row.Title, nil
}

// Cook appends a cook attempt. It never updates an earlier attempt.
func (s *RecipeService) Cook(ctx context.Context, callerID, id uint, req *types.CookRequest) (*types.CookResult, string, error) {
	rating, err := ratingField(req.Rating)
	if err != nil {
		return nil, "", err
	}

	recipe, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !recipe.VisibleTo(callerID) {
		return nil, "", apperror.Forbidden("Cannot cook private recipe")
	}

	cooked := &models.CookedRecipe{
		UserID:   callerID,
		RecipeID: id,
		Rating:   rating,
		Notes:    optionalText(req.Notes),
		CookedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(cooked).Error; err != nil {
		return nil, "", fmt.Errorf("logging cook: %w", err)
	}
	return &types.CookResult{
		ID:       cooked.ID,
		Rating:   cooked.Rating,
		Notes:    cooked.Notes,
		CookedAt: cooked.CookedAt,
	}, recipe.Title, nil
}

// ListSaved pages the caller's bookmarks, newest first
func (s *RecipeService) ListSaved(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.SavedRecipeView], error) {
	var (
		rows  []models.SavedRecipe
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("user_id = ?", userID).
			Order("saved_at DESC").Order("id DESC").
			Scopes(page.Scope).
			Find(&rows).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.SavedRecipe{}).Where("user_id = ?", userID).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return response.Page[types.SavedRecipeView]{}, fmt.Errorf("listing saved recipes: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RecipeID)
	}
	recipes, d, err := s.loadDecorated(ctx, ids)
	if err != nil {
		return response.Page[types.SavedRecipeView]{}, err
	}

	items := make([]types.SavedRecipeView, 0, len(rows))
	for _, r := range rows {
		if recipe, ok := recipes[r.RecipeID]; ok {
			items = append(items, types.SavedRecipeView{RecipeSummary: d.summary(recipe), SavedAt: r.SavedAt})
		}
	}
	return response.NewPage(items, page.Page, page.Limit, total), nil
}

// ListCooked pages the caller's cook log, newest first. A recipe cooked twice appears twice.
func (s *RecipeService) ListCooked(ctx context.Context, userID uint, page query.Pagination) (response.Page[types.CookedRecipeView], error) {
	var (
		rows  []models.CookedRecipe
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Where("user_id = ?", userID).
			Order("cooked_at DESC").Order("id DESC").
			Scopes(page.Scope).
			Find(&rows).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.CookedRecipe{}).Where("user_id = ?", userID).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return response.Page[types.CookedRecipeView]{}, fmt.Errorf("listing cooked recipes: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RecipeID)
	}
	recipes, d, err := s.loadDecorated(ctx, ids)
	if err != nil {
		return response.Page[types.CookedRecipeView]{}, err
	}

	items := make([]types.CookedRecipeView, 0, len(rows))
	for _, r := range rows {
		if recipe, ok := recipes[r.RecipeID]; ok {
			items = append(items, types.CookedRecipeView{
				RecipeSummary: d.summary(recipe),
				CookedAt:      r.CookedAt,
				UserRating:    r.Rating,
				UserNotes:     r.Notes,
			})
		}
	}
	return response.NewPage(items, page.Page, page.Limit, total), nil
}

// loadDecorated fetches recipes by id, keyed by id, with owner and count decoration
func (s *RecipeService) loadDecorated(ctx context.Context, ids []uint) (map[uint]models.Recipe, *decoration, error) {
	byID := map[uint]models.Recipe{}
	if len(ids) == 0 {
		return byID, &decoration{}, nil
	}
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, nil, fmt.Errorf("loading recipes: %w", err)
	}
	d, err := decorate(ctx, s.db, recipes, 0)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range recipes {
		byID[r.ID] = r
	}
	return byID, d, nil
}
