package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// UserHandler serves per-user activity stats
type UserHandler struct {
	auth  service.IAuthService
	stats service.IStatsService
}

func NewUserHandler(auth service.IAuthService, stats service.IStatsService) *UserHandler {
	return &UserHandler{auth: auth, stats: stats}
}

func (h *UserHandler) RegisterRoutes(users *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	users.GET("/stats", requireAuth, h.MyStats)
	users.GET("/:userId/stats", middleware.ValidateUserID(), h.UserStats)
}

func (h *UserHandler) MyStats(c *gin.Context) {
	h.render(c, middleware.CurrentUserID(c))
}

// UserStats is public; unknown users are a 404
func (h *UserHandler) UserStats(c *gin.Context) {
	userID := middleware.TargetUserID(c)
	if _, err := h.auth.GetUserByID(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}
	h.render(c, userID)
}

func (h *UserHandler) render(c *gin.Context, userID uint) {
	stats, err := h.stats.WithActivity(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", stats)
}
