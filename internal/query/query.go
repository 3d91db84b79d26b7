// Package query turns untrusted list query strings into filter, sort and
// pagination directives. Malformed values are dropped, never rejected.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
	// maxPage keeps the computed offset from overflowing
	maxPage = 1_000_000

	DefaultSortBy    = "createdAt"
	DefaultSortOrder = "desc"
)

// Difficulties is the closed set of recipe difficulty levels.
var Difficulties = []string{"EASY", "MEDIUM", "HARD"}

// sortColumns maps the sortBy allow-list to recipe columns.
var sortColumns = map[string]string{
	"createdAt":  "recipes.created_at",
	"title":      "recipes.title",
	"prepTime":   "recipes.prep_time",
	"cookTime":   "recipes.cook_time",
	"servings":   "recipes.servings",
	"difficulty": "recipes.difficulty",
}

// IsDifficulty reports whether d (already uppercased) is a known level.
func IsDifficulty(d string) bool {
	for _, v := range Difficulties {
		if v == d {
			return true
		}
	}
	return false
}

// RecipeFilter holds the accepted list filters. Nil bounds are not applied.
type RecipeFilter struct {
	Search      string
	Difficulty  string
	MinServings *int
	MaxServings *int
	MaxPrepTime *int
	MaxCookTime *int
}

// BuildRecipeFilters reads search, difficulty, minServings, maxServings,
// maxPrepTime and maxCookTime from params.
func BuildRecipeFilters(params url.Values) RecipeFilter {
	var f RecipeFilter
	f.Search = strings.TrimSpace(params.Get("search"))
	if d := strings.ToUpper(strings.TrimSpace(params.Get("difficulty"))); IsDifficulty(d) {
		f.Difficulty = d
	}
	f.MinServings = parseNumber(params.Get("minServings"))
	f.MaxServings = parseNumber(params.Get("maxServings"))
	f.MaxPrepTime = parseNumber(params.Get("maxPrepTime"))
	f.MaxCookTime = parseNumber(params.Get("maxCookTime"))
	return f
}

// parseNumber accepts any finite number and truncates it toward zero.
func parseNumber(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v = math.Max(-math.MaxInt32, math.Min(math.MaxInt32, math.Trunc(v)))
	n := int(v)
	return &n
}

// Applied returns the filters that took effect, keyed by their query names.
func (f RecipeFilter) Applied() map[string]any {
	out := map[string]any{}
	if f.Search != "" {
		out["search"] = f.Search
	}
	if f.Difficulty != "" {
		out["difficulty"] = f.Difficulty
	}
	for name, v := range map[string]*int{
		"minServings": f.MinServings,
		"maxServings": f.MaxServings,
		"maxPrepTime": f.MaxPrepTime,
		"maxCookTime": f.MaxCookTime,
	} {
		if v != nil {
			out[name] = *v
		}
	}
	return out
}

// Scope applies the filter to a query over the recipes table.
func (f RecipeFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		db = db.Where("(LOWER(recipes.title) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(recipes.description, '')) LIKE ? ESCAPE '\\')", like, like)
	}
	if f.Difficulty != "" {
		db = db.Where("recipes.difficulty = ?", f.Difficulty)
	}
	if f.MinServings != nil {
		db = db.Where("recipes.servings >= ?", *f.MinServings)
	}
	if f.MaxServings != nil {
		db = db.Where("recipes.servings <= ?", *f.MaxServings)
	}
	if f.MaxPrepTime != nil {
		db = db.Where("recipes.prep_time <= ?", *f.MaxPrepTime)
	}
	if f.MaxCookTime != nil {
		db = db.Where("recipes.cook_time <= ?", *f.MaxCookTime)
	}
	return db
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// SortOptions is a validated sort directive.
type SortOptions struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// BuildSortOptions falls back to createdAt/desc for anything outside the allow-lists.
func BuildSortOptions(params url.Values) SortOptions {
	s := SortOptions{SortBy: DefaultSortBy, SortOrder: DefaultSortOrder}
	if by := params.Get("sortBy"); sortColumns[by] != "" {
		s.SortBy = by
	}
	switch order := strings.ToLower(params.Get("sortOrder")); order {
	case "asc", "desc":
		s.SortOrder = order
	}
	return s
}

// Scope orders recipes by the chosen column, with id as a tiebreaker.
func (s SortOptions) Scope(db *gorm.DB) *gorm.DB {
	column, ok := sortColumns[s.SortBy]
	if !ok {
		column = sortColumns[DefaultSortBy]
	}
	dir := "DESC"
	if s.SortOrder == "asc" {
		dir = "ASC"
	}
	return db.Order(column + " " + dir).Order("recipes.id " + dir)
}

// Pagination is a validated page request.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// BuildPagination clamps page to >= 1 and limit to [1, MaxLimit]. Missing,
// non-numeric or zero values fall back to the defaults.
func BuildPagination(params url.Values) Pagination {
	page := atoiOr(params.Get("page"), DefaultPage)
	limit := atoiOr(params.Get("limit"), DefaultLimit)

	page = min(maxPage, max(1, page))
	limit = min(MaxLimit, max(1, limit))
	return Pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

func atoiOr(raw string, fallback int) int {
	n := parseNumber(raw)
	if n == nil || *n == 0 {
		return fallback
	}
	return *n
}

// Scope applies offset and limit.
func (p Pagination) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Skip).Limit(p.Limit)
}
