package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// DashboardService builds the signed-in landing views
type DashboardService struct {
	db      *gorm.DB
	recipes *RecipeService
	stats   *StatsService
}

func NewDashboardService(db *gorm.DB, recipes *RecipeService, stats *StatsService) *DashboardService {
	return &DashboardService{db: db, recipes: recipes, stats: stats}
}

func echo(params RecipeListParams) types.FilterEcho {
	return types.FilterEcho{AppliedFilters: params.Filter.Applied(), Sorting: params.Sort}
}

// Dashboard returns the public feed personalised for userID together with
// the caller's counters. The page and the counters load concurrently.
func (s *DashboardService) Dashboard(ctx context.Context, userID uint, params RecipeListParams) (*types.DashboardView[types.RecipeView], error) {
	view := &types.DashboardView[types.RecipeView]{Filters: echo(params)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.recipes.ListPublic(gctx, userID, params)
		view.Page = page
		return err
	})
	g.Go(func() error {
		stats, err := s.stats.Counts(gctx, userID)
		view.UserStats = stats
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// MyRecipes lists every recipe owned by userID, public or private, with
// rating averages and the latest save and cook on each.
func (s *DashboardService) MyRecipes(ctx context.Context, userID uint, params RecipeListParams) (*types.DashboardView[types.MyRecipeView], error) {
	view := &types.DashboardView[types.MyRecipeView]{Filters: echo(params)}

	var (
		recipes []models.Recipe
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, total, err = s.recipes.findPage(gctx, params, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.user_id = ?", userID)
		})
		return err
	})
	g.Go(func() error {
		stats, err := s.stats.Counts(gctx, userID)
		view.UserStats = stats
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		d        *decoration
		activity map[uint]types.RecipeActivity
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d, err = decorate(gctx, s.db, recipes, 0)
		return err
	})
	g.Go(func() error {
		var err error
		activity, err = s.latestActivity(gctx, recipes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]types.MyRecipeView, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, types.MyRecipeView{
			RecipeSummary:  d.summary(r),
			AverageRating:  FormatAverageRating(d.counts[r.ID].avgRating),
			RecentActivity: activity[r.ID],
		})
	}
	view.Page = response.NewPage(items, params.Pagination.Page, params.Pagination.Limit, total)
	return view, nil
}

// latestActivity finds the most recent save and cook of each recipe and who made it
func (s *DashboardService) latestActivity(ctx context.Context, recipes []models.Recipe) (map[uint]types.RecipeActivity, error) {
	out := map[uint]types.RecipeActivity{}
	if len(recipes) == 0 {
		return out, nil
	}
	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}

	var saves, cooks []recentRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Table("saved_recipes").
			Select("saved_recipes.id, saved_recipes.recipe_id, saved_recipes.saved_at AS at, users.username").
			Joins("JOIN users ON users.id = saved_recipes.user_id").
			Where("saved_recipes.recipe_id IN ?", ids).
			Order("saved_recipes.saved_at DESC").Order("saved_recipes.id DESC").
			Scan(&saves).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Table("cooked_recipes").
			Select("cooked_recipes.id, cooked_recipes.recipe_id, cooked_recipes.cooked_at AS at, cooked_recipes.rating, users.username").
			Joins("JOIN users ON users.id = cooked_recipes.user_id").
			Where("cooked_recipes.recipe_id IN ?", ids).
			Order("cooked_recipes.cooked_at DESC").Order("cooked_recipes.id DESC").
			Scan(&cooks).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading recipe activity: %w", err)
	}

	for _, r := range saves {
		a := out[r.RecipeID]
		if a.LastSaved == nil {
			a.LastSaved = &types.SaveActivity{ID: r.ID, SavedAt: r.At, User: types.UsernameRef{Username: r.Username}}
			out[r.RecipeID] = a
		}
	}
	for _, r := range cooks {
		a := out[r.RecipeID]
		if a.LastCooked == nil {
			a.LastCooked = &types.CookActivity{ID: r.ID, Rating: r.Rating, CookedAt: r.At, User: types.UsernameRef{Username: r.Username}}
			out[r.RecipeID] = a
		}
	}
	return out, nil
}
