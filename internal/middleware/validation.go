package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/response"
)

const (
	RecipeIDKey     = "recipe_id"
	TargetUserIDKey = "target_user_id"
)

// ValidateRecipeID parses the :id path parameter into a positive integer
func ValidateRecipeID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			response.Error(c, http.StatusBadRequest, "Valid recipe ID is required", nil)
			return
		}
		c.Set(RecipeIDKey, id)
		c.Next()
	}
}

// ValidateUserID reads userId from the path or, failing that, the query string
func ValidateUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("userId")
		if raw == "" {
			raw = c.Query("userId")
		}
		if raw == "" {
			response.Error(c, http.StatusBadRequest, "userId is required", nil)
			return
		}
		id, ok := parseID(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "userId must be a valid number", nil)
			return
		}
		c.Set(TargetUserIDKey, id)
		c.Next()
	}
}

// RecipeID returns the id stored by ValidateRecipeID
func RecipeID(c *gin.Context) uint {
	return c.GetUint(RecipeIDKey)
}

// TargetUserID returns the id stored by ValidateUserID
func TargetUserID(c *gin.Context) uint {
	return c.GetUint(TargetUserIDKey)
}
