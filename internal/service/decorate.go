package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// recentRow is the shape of joined activity queries
type recentRow struct {
	ID       uint
	RecipeID uint
	At       time.Time
	Rating   *int
	Notes    *string
	Title    string
	Username string
}

type recipeCounts struct {
	saves     int64
	cooks     int64
	avgRating *float64
}

// viewerCook is the caller's most recent cook of a recipe
type viewerCook struct {
	rating   *int
	notes    *string
	cookedAt time.Time
}

// decoration holds everything needed to turn recipes into views
type decoration struct {
	owners map[uint]types.OwnerSummary
	counts map[uint]recipeCounts
	saved  map[uint]bool
	cooked map[uint]viewerCook
}

// decorate loads owners, counts and (for a signed-in viewer) the viewer's own
// save and cook state for the given recipes, concurrently.
func decorate(ctx context.Context, db *gorm.DB, recipes []models.Recipe, viewerID uint) (*decoration, error) {
	d := &decoration{
		owners: map[uint]types.OwnerSummary{},
		counts: map[uint]recipeCounts{},
		saved:  map[uint]bool{},
		cooked: map[uint]viewerCook{},
	}
	if len(recipes) == 0 {
		return d, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	ownerSet := map[uint]struct{}{}
	ownerIDs := []uint{}
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if _, ok := ownerSet[r.UserID]; !ok {
			ownerSet[r.UserID] = struct{}{}
			ownerIDs = append(ownerIDs, r.UserID)
		}
	}

	var (
		owners     []types.OwnerSummary
		saveCounts []struct {
			RecipeID uint
			Total    int64
		}
		cookCounts []struct {
			RecipeID  uint
			Total     int64
			AvgRating *float64
		}
		savedIDs []uint
		cooks    []models.CookedRecipe
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.WithContext(gctx).Model(&models.User{}).
			Select("id, username, first_name, last_name").
			Where("id IN ?", ownerIDs).
			Scan(&owners).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&models.SavedRecipe{}).
			Select("recipe_id, COUNT(*) AS total").
			Where("recipe_id IN ?", recipeIDs).
			Group("recipe_id").
			Scan(&saveCounts).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&models.CookedRecipe{}).
			Select("recipe_id, COUNT(*) AS total, AVG(CAST(rating AS FLOAT)) AS avg_rating").
			Where("recipe_id IN ?", recipeIDs).
			Group("recipe_id").
			Scan(&cookCounts).Error
	})
	if viewerID != 0 {
		g.Go(func() error {
			return db.WithContext(gctx).Model(&models.SavedRecipe{}).
				Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
				Pluck("recipe_id", &savedIDs).Error
		})
		g.Go(func() error {
			return db.WithContext(gctx).
				Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
				Order("cooked_at DESC").Order("id DESC").
				Find(&cooks).Error
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("decorating recipes: %w", err)
	}

	for _, o := range owners {
		d.owners[o.ID] = o
	}
	for _, c := range saveCounts {
		rc := d.counts[c.RecipeID]
		rc.saves = c.Total
		d.counts[c.RecipeID] = rc
	}
	for _, c := range cookCounts {
		rc := d.counts[c.RecipeID]
		rc.cooks = c.Total
		rc.avgRating = c.AvgRating
		d.counts[c.RecipeID] = rc
	}
	for _, id := range savedIDs {
		d.saved[id] = true
	}
	for _, c := range cooks {
		if _, seen := d.cooked[c.RecipeID]; !seen {
			d.cooked[c.RecipeID] = viewerCook{rating: c.Rating, notes: c.Notes, cookedAt: c.CookedAt}
		}
	}
	return d, nil
}

func (d *decoration) summary(r models.Recipe) types.RecipeSummary {
	owner, ok := d.owners[r.UserID]
	if !ok {
		owner = types.OwnerSummary{ID: r.UserID}
	}
	c := d.counts[r.ID]
	return types.RecipeSummary{Recipe: r, User: owner, TotalSaves: c.saves, TotalCooked: c.cooks}
}

func (d *decoration) view(r models.Recipe) types.RecipeView {
	v := types.RecipeView{
		RecipeSummary: d.summary(r),
		IsSavedByUser: d.saved[r.ID],
		AverageRating: FormatAverageRating(d.counts[r.ID].avgRating),
	}
	if cook, ok := d.cooked[r.ID]; ok {
		cookedAt := cook.cookedAt
		v.IsCookedByUser = true
		v.UserRating = cook.rating
		v.UserCookedAt = &cookedAt
	}
	return v
}

func (d *decoration) detail(r models.Recipe) *types.RecipeDetail {
	detail := &types.RecipeDetail{RecipeView: d.view(r)}
	if cook, ok := d.cooked[r.ID]; ok {
		detail.UserNotes = cook.notes
	}
	return detail
}

// FormatAverageRating renders a mean rating to one decimal place; nil means no ratings
func FormatAverageRating(avg *float64) *string {
	if avg == nil {
		return nil
	}
	// half away from zero, so 4.25 renders 4.3
	s := fmt.Sprintf("%.1f", math.Round(*avg*10)/10)
	return &s
}
