package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// RecipeGuards are the middleware chains the recipe routes are mounted with
type RecipeGuards struct {
	Required    gin.HandlerFunc
	Optional    gin.HandlerFunc
	CreateLimit gin.HandlerFunc
	ModifyLimit gin.HandlerFunc
}

type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(recipes *gin.RouterGroup, g RecipeGuards) {
	validID := middleware.ValidateRecipeID()

	recipes.GET("", g.Optional, h.ListRecipes)
	recipes.GET("/saved/list", g.Required, h.ListSaved)
	recipes.GET("/cooked/list", g.Required, h.ListCooked)
	recipes.GET("/:id", g.Optional, validID, h.GetRecipe)
	recipes.POST("", g.Required, g.CreateLimit, h.CreateRecipe)
	recipes.PUT("/:id", g.Required, validID, g.ModifyLimit, h.UpdateRecipe)
	recipes.DELETE("/:id", g.Required, validID, g.ModifyLimit, h.DeleteRecipe)
	recipes.POST("/:id/save", g.Required, validID, h.SaveRecipe)
	recipes.DELETE("/:id/save", g.Required, validID, h.UnsaveRecipe)
	recipes.POST("/:id/cook", g.Required, validID, h.CookRecipe)
}

// ListRecipes serves the public feed, personalised when a token is sent
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, err := h.recipes.ListPublic(c.Request.Context(), middleware.CurrentUserID(c), listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", page)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Recipe created successfully", recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.UpdateRecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipes.Update(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "Recipe updated successfully", recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	title, err := h.recipes.Delete(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, fmt.Sprintf("Recipe %q deleted successfully", title), nil)
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	saved, title, err := h.recipes.Save(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, fmt.Sprintf("Recipe %q saved successfully", title), saved)
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	title, err := h.recipes.Unsave(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, fmt.Sprintf("Recipe %q removed from saved recipes", title), nil)
}

// CookRecipe accepts an empty body as a cook without rating or notes
func (h *RecipeHandler) CookRecipe(c *gin.Context) {
	var req types.CookRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	cooked, title, err := h.recipes.Cook(c.Request.Context(), middleware.CurrentUserID(c), middleware.RecipeID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, fmt.Sprintf("Recipe %q marked as cooked", title), cooked)
}

func (h *RecipeHandler) ListSaved(c *gin.Context) {
	page, err := h.recipes.ListSaved(c.Request.Context(), middleware.CurrentUserID(c), query.BuildPagination(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", page)
}

func (h *RecipeHandler) ListCooked(c *gin.Context) {
	page, err := h.recipes.ListCooked(c.Request.Context(), middleware.CurrentUserID(c), query.BuildPagination(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", page)
}
