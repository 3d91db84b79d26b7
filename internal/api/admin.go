package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/query"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
)

type AdminHandler struct {
	auth service.IAuthService
}

func NewAdminHandler(auth service.IAuthService) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// RegisterRoutes expects a group guarded by auth and the admin role
func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.ListUsers)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := query.BuildPagination(c.Request.URL.Query())
	users, total, err := h.auth.ListUsers(c.Request.Context(), page.Skip, page.Limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", response.NewPage[models.User](users, page.Page, page.Limit, total))
}
