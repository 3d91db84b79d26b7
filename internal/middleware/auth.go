package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// Context keys set by the auth middleware
const (
	UserIDKey   = "user_id"
	IdentityKey = "identity"
)

// TokenValidator is an interface for validating JWT access tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// bearerToken returns the token of a "Bearer <token>" header, or ""
func bearerToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func setIdentity(c *gin.Context, claims *types.TokenClaims) {
	c.Set(IdentityKey, claims.Identity())
	c.Set(UserIDKey, claims.UserID)
}

// RequireAuth rejects requests without a valid access token
func RequireAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access token required", nil)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is sent and proceeds
// anonymously otherwise. It never rejects.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := validator.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAdmin {
			response.Error(c, http.StatusForbidden, "Admin access required", nil)
			return
		}
		c.Next()
	}
}

// RequireOwnership compares the caller with the validated userId param and
// must run after RequireAuth and ValidateUserID.
func RequireOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		if TargetUserID(c) != CurrentUserID(c) {
			response.Error(c, http.StatusForbidden, "Access denied: You can only access your own resources", nil)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller, or types.Anonymous
func CurrentIdentity(c *gin.Context) types.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(types.Identity); ok {
			return id
		}
	}
	return types.Anonymous
}

// CurrentUserID returns the caller's id, zero when anonymous
func CurrentUserID(c *gin.Context) uint {
	return CurrentIdentity(c).UserID
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
