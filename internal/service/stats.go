package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// recentLimit is how many items of each activity type the stats view returns
const recentLimit = 3

// StatsService aggregates per-user activity
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Counts runs the three counting queries concurrently
func (s *StatsService) Counts(ctx context.Context, userID uint) (types.UserStats, error) {
	var stats types.UserStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", userID).Count(&stats.RecipesCreated).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.SavedRecipe{}).Where("user_id = ?", userID).Count(&stats.RecipesSaved).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.CookedRecipe{}).Where("user_id = ?", userID).Count(&stats.RecipesCooked).Error
	})
	if err := g.Wait(); err != nil {
		return types.UserStats{}, fmt.Errorf("counting user activity: %w", err)
	}
	return stats, nil
}

// WithActivity returns the counters plus the most recent created, saved and cooked items
func (s *StatsService) WithActivity(ctx context.Context, userID uint) (*types.UserStatsView, error) {
	view := &types.UserStatsView{RecentActivity: types.RecentActivity{
		RecentlyCreated: []types.RecentRecipe{},
		RecentlySaved:   []types.RecentSave{},
		RecentlyCooked:  []types.RecentCook{},
	}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.Counts(gctx, userID)
		view.UserStats = stats
		return err
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Recipe{}).
			Select("id, title, created_at").
			Where("user_id = ?", userID).
			Order("created_at DESC").Order("id DESC").
			Limit(recentLimit).
			Scan(&view.RecentActivity.RecentlyCreated).Error
	})
	g.Go(func() error {
		var rows []recentRow
		err := s.db.WithContext(gctx).Table("saved_recipes").
			Select("saved_recipes.id, saved_recipes.recipe_id, saved_recipes.saved_at AS at, recipes.title").
			Joins("JOIN recipes ON recipes.id = saved_recipes.recipe_id").
			Where("saved_recipes.user_id = ?", userID).
			Order("saved_recipes.saved_at DESC").Order("saved_recipes.id DESC").
			Limit(recentLimit).
			Scan(&rows).Error
		for _, r := range rows {
			view.RecentActivity.RecentlySaved = append(view.RecentActivity.RecentlySaved, types.RecentSave{
				ID: r.ID, RecipeID: r.RecipeID, SavedAt: r.At,
				Recipe: types.RecipeRef{ID: r.RecipeID, Title: r.Title},
			})
		}
		return err
	})
	g.Go(func() error {
		var rows []recentRow
		err := s.db.WithContext(gctx).Table("cooked_recipes").
			Select("cooked_recipes.id, cooked_recipes.recipe_id, cooked_recipes.cooked_at AS at, cooked_recipes.rating, cooked_recipes.notes, recipes.title").
			Joins("JOIN recipes ON recipes.id = cooked_recipes.recipe_id").
			Where("cooked_recipes.user_id = ?", userID).
			Order("cooked_recipes.cooked_at DESC").Order("cooked_recipes.id DESC").
			Limit(recentLimit).
			Scan(&rows).Error
		for _, r := range rows {
			view.RecentActivity.RecentlyCooked = append(view.RecentActivity.RecentlyCooked, types.RecentCook{
				ID: r.ID, RecipeID: r.RecipeID, Rating: r.Rating, Notes: r.Notes, CookedAt: r.At,
				Recipe: types.RecipeRef{ID: r.RecipeID, Title: r.Title},
			})
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading user stats: %w", err)
	}
	return view, nil
}
