package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

func intPtr(n int) *int { return &n }

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         string
		wantPage, wantLimit int
	}{
		{"defaults", "", "", 1, 12},
		{"explicit", "3", "20", 3, 20},
		{"non numeric", "abc", "xyz", 1, 12},
		{"negative page", "-4", "5", 1, 5},
		{"zero page", "0", "5", 1, 5},
		{"zero limit uses default", "2", "0", 2, 12},
		{"negative limit", "1", "-3", 1, 1},
		{"limit above max", "1", "500", 1, 100},
		{"decimal truncates", "2.5", "10", 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPagination(values("page", tt.page, "limit", tt.limit))
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, (p.Page-1)*p.Limit, p.Skip)
		})
	}
}

func TestBuildPaginationBounds(t *testing.T) {
	for _, page := range []string{"-100", "0", "1", "7", "junk", "99999999999999999999"} {
		for _, limit := range []string{"-1", "0", "1", "50", "100", "101", "junk"} {
			p := BuildPagination(values("page", page, "limit", limit))
			assert.GreaterOrEqual(t, p.Page, 1)
			assert.GreaterOrEqual(t, p.Limit, 1)
			assert.LessOrEqual(t, p.Limit, MaxLimit)
			assert.Equal(t, (p.Page-1)*p.Limit, p.Skip)
		}
	}
}

func TestBuildSortOptions(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder string
		want              SortOptions
	}{
		{"", "", SortOptions{"createdAt", "desc"}},
		{"title", "asc", SortOptions{"title", "asc"}},
		{"prepTime", "ASC", SortOptions{"prepTime", "asc"}},
		{"cookTime", "Desc", SortOptions{"cookTime", "desc"}},
		{"password_hash", "asc", SortOptions{"createdAt", "asc"}},
		{"servings", "sideways", SortOptions{"servings", "desc"}},
		{"Title", "", SortOptions{"createdAt", "desc"}},
	}
	for _, tt := range tests {
		got := BuildSortOptions(values("sortBy", tt.sortBy, "sortOrder", tt.sortOrder))
		assert.Equal(t, tt.want, got, "sortBy=%q sortOrder=%q", tt.sortBy, tt.sortOrder)
	}
}

func TestBuildRecipeFilters(t *testing.T) {
	f := BuildRecipeFilters(values(
		"search", "  pasta ",
		"difficulty", "medium",
		"minServings", "2",
		"maxServings", "abc",
		"maxPrepTime", "30.9",
		"maxCookTime", "",
	))
	assert.Equal(t, "pasta", f.Search)
	assert.Equal(t, "MEDIUM", f.Difficulty)
	assert.Equal(t, intPtr(2), f.MinServings)
	assert.Nil(t, f.MaxServings)
	assert.Equal(t, intPtr(30), f.MaxPrepTime)
	assert.Nil(t, f.MaxCookTime)

	assert.Equal(t, map[string]any{
		"search":      "pasta",
		"difficulty":  "MEDIUM",
		"minServings": 2,
		"maxPrepTime": 30,
	}, f.Applied())
}

func TestBuildRecipeFiltersIgnoresUnknownDifficulty(t *testing.T) {
	f := BuildRecipeFilters(values("difficulty", "impossible", "minServings", "NaN"))
	assert.Empty(t, f.Difficulty)
	assert.Nil(t, f.MinServings)
	assert.Empty(t, f.Applied())
}

type recipeRow struct {
	ID          uint
	Title       string
	Description *string
	Difficulty  string
	Servings    *int
	PrepTime    *int
	CookTime    *int
	CreatedAt   time.Time
}

func (recipeRow) TableName() string { return "recipes" }

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&recipeRow{}))

	desc := "Creamy 100% comfort"
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []recipeRow{
		{Title: "Pasta Carbonara", Difficulty: "MEDIUM", Servings: intPtr(4), PrepTime: intPtr(10), CookTime: intPtr(15), CreatedAt: base},
		{Title: "Tomato Soup", Description: &desc, Difficulty: "EASY", Servings: intPtr(2), PrepTime: intPtr(5), CookTime: intPtr(30), CreatedAt: base.Add(time.Hour)},
		{Title: "Beef_Wellington", Difficulty: "HARD", Servings: intPtr(8), PrepTime: intPtr(60), CookTime: intPtr(90), CreatedAt: base.Add(2 * time.Hour)},
		{Title: "Toast", Difficulty: "EASY", CreatedAt: base.Add(3 * time.Hour)},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func titles(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var out []string
	require.NoError(t, db.Model(&recipeRow{}).Pluck("recipes.title", &out).Error)
	return out
}

func TestFilterScope(t *testing.T) {
	db := setupDB(t)

	tests := []struct {
		name   string
		params url.Values
		want   []string
	}{
		{"search title case-insensitive", values("search", "PASTA"), []string{"Pasta Carbonara"}},
		{"search description", values("search", "creamy"), []string{"Tomato Soup"}},
		{"percent is literal", values("search", "100%"), []string{"Tomato Soup"}},
		{"underscore is literal", values("search", "f_w"), []string{"Beef_Wellington"}},
		{"difficulty", values("difficulty", "easy"), []string{"Tomato Soup", "Toast"}},
		{"servings range inclusive", values("minServings", "2", "maxServings", "4"), []string{"Pasta Carbonara", "Tomato Soup"}},
		{"max prep inclusive", values("maxPrepTime", "10"), []string{"Pasta Carbonara", "Tomato Soup"}},
		{"max cook", values("maxCookTime", "20"), []string{"Pasta Carbonara"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := BuildRecipeFilters(tt.params)
			got := titles(t, db.Scopes(f.Scope).Order("recipes.id"))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortAndPaginationScopes(t *testing.T) {
	db := setupDB(t)

	sort := BuildSortOptions(values("sortBy", "title", "sortOrder", "asc"))
	assert.Equal(t, []string{"Beef_Wellington", "Pasta Carbonara", "Toast", "Tomato Soup"}, titles(t, db.Scopes(sort.Scope)))

	sort = BuildSortOptions(values())
	page := BuildPagination(values("page", "2", "limit", "3"))
	assert.Equal(t, []string{"Pasta Carbonara"}, titles(t, db.Scopes(sort.Scope, page.Scope)))
}
