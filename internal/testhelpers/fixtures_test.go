package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
)

func TestFixtures(t *testing.T) {
	db := SetupTestDB(t)

	owner := CreateTestUser(t, db, "Owner")
	assert.Equal(t, "owner", owner.Username)
	assert.True(t, service.CheckPassword(owner.PasswordHash, TestPassword))

	admin := CreateTestAdmin(t, db)
	var stored models.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.True(t, stored.IsAdmin)

	recipe := CreateTestRecipe(t, db, owner.ID, Private)
	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, recipe.ID).Error)
	assert.False(t, loaded.IsPublic)
	assert.Len(t, loaded.Ingredients, 1)

	claims, err := NewTokenService().ValidateToken(AccessToken(t, owner))
	require.NoError(t, err)
	assert.Equal(t, owner.ID, claims.UserID)
}
