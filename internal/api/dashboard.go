package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
)

type DashboardHandler struct {
	dashboard service.IDashboardService
}

func NewDashboardHandler(dashboard service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// RegisterRoutes expects a group already guarded by auth, userId validation and ownership
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/my-recipes", h.GetMyRecipes)
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view, err := h.dashboard.Dashboard(c.Request.Context(), middleware.TargetUserID(c), listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", view)
}

func (h *DashboardHandler) GetMyRecipes(c *gin.Context) {
	view, err := h.dashboard.MyRecipes(c.Request.Context(), middleware.TargetUserID(c), listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", view)
}
