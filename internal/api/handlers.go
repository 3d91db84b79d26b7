package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// Options carries everything the routes need. Nil limiters disable limiting.
type Options struct {
	Auth      service.IAuthService
	Profile   service.IProfileService
	Recipes   service.IRecipeService
	Dashboard service.IDashboardService
	Stats     service.IStatsService

	// Ready reports whether backing stores are reachable
	Ready func(ctx context.Context) error

	CreateLimiter *middleware.RateLimiter
	ModifyLimiter *middleware.RateLimiter
	AuthLimiter   *middleware.IPRateLimiter
}

// HealthCheck returns the liveness status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func readinessCheck(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "Service unavailable", nil)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, opts Options) {
	router.GET("/health", HealthCheck)
	router.GET("/health/ready", readinessCheck(opts.Ready))

	requireAuth := middleware.RequireAuth(opts.Auth)
	optionalAuth := middleware.OptionalAuth(opts.Auth)

	authLimit := passthrough
	if opts.AuthLimiter != nil {
		authLimit = opts.AuthLimiter.Middleware()
	}
	createLimit, modifyLimit := passthrough, passthrough
	if opts.CreateLimiter != nil {
		createLimit = opts.CreateLimiter.PerUser()
	}
	if opts.ModifyLimiter != nil {
		modifyLimit = opts.ModifyLimiter.PerRecipe()
	}

	api := router.Group("/api")

	NewAuthHandler(opts.Auth, opts.Profile).RegisterRoutes(api.Group("/auth"), requireAuth, authLimit)
	NewRecipeHandler(opts.Recipes).RegisterRoutes(api.Group("/recipes"), RecipeGuards{
		Required:    requireAuth,
		Optional:    optionalAuth,
		CreateLimit: createLimit,
		ModifyLimit: modifyLimit,
	})

	owner := api.Group("", requireAuth, middleware.ValidateUserID(), middleware.RequireOwnership())
	NewDashboardHandler(opts.Dashboard).RegisterRoutes(owner)

	NewUserHandler(opts.Auth, opts.Stats).RegisterRoutes(api.Group("/users"), requireAuth)
	NewAdminHandler(opts.Auth).RegisterRoutes(api.Group("/admin", requireAuth, middleware.RequireAdmin()))
}

func passthrough(c *gin.Context) {
	c.Next()
}

// bindJSON decodes the request body or records a validation error
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(apperror.Wrap(err, apperror.KindValidation, "Invalid JSON in request body"))
		return false
	}
	return true
}

// listParams translates the recipe list query string
func listParams(c *gin.Context) service.RecipeListParams {
	values := c.Request.URL.Query()
	return service.RecipeListParams{
		Filter:     query.BuildRecipeFilters(values),
		Sort:       query.BuildSortOptions(values),
		Pagination: query.BuildPagination(values),
	}
}
