package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// AuthHandler serves registration, sessions and the caller's own account
type AuthHandler struct {
	auth    service.IAuthService
	profile service.IProfileService
}

func NewAuthHandler(auth service.IAuthService, profile service.IProfileService) *AuthHandler {
	return &AuthHandler{auth: auth, profile: profile}
}

func (h *AuthHandler) RegisterRoutes(auth *gin.RouterGroup, requireAuth, limit gin.HandlerFunc) {
	auth.POST("/register", limit, h.Register)
	auth.POST("/login", limit, h.Login)
	auth.POST("/refresh", limit, h.Refresh)
	auth.POST("/logout", requireAuth, h.Logout)
	auth.GET("/profile", requireAuth, h.GetProfile)
	auth.PUT("/profile", requireAuth, h.UpdateProfile)
	auth.PUT("/change-password", requireAuth, h.ChangePassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "User registered successfully", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "Login successful", result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "Token refreshed successfully", result)
}

// Logout is an acknowledgement only; tokens stay valid until they expire
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logout successful", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	profile, err := h.profile.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "", profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.profile.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "Profile updated successfully", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req types.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.profile.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), &req); err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, "Password changed successfully", nil)
}
