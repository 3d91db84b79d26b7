package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func newProfileService(t *testing.T) (*service.ProfileService, *testhelpers.Env) {
	env := testhelpers.NewEnv(t)
	return env.Profile, env
}

func TestGetProfile(t *testing.T) {
	profiles, env := newProfileService(t)
	user := testhelpers.CreateTestUser(t, env.DB, "")
	other := testhelpers.CreateTestUser(t, env.DB, "")
	recipe := testhelpers.CreateTestRecipe(t, env.DB, other.ID)
	testhelpers.CreateTestRecipe(t, env.DB, user.ID)
	require.NoError(t, env.DB.Create(&models.SavedRecipe{UserID: user.ID, RecipeID: recipe.ID}).Error)

	view, err := profiles.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, view.Username)
	assert.Equal(t, types.UserStats{RecipesCreated: 1, RecipesSaved: 1}, view.Stats)
}

func TestUpdateProfile(t *testing.T) {
	profiles, env := newProfileService(t)
	user := testhelpers.CreateTestUser(t, env.DB, "original")
	testhelpers.CreateTestUser(t, env.DB, "taken")

	updated, err := profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{
		FirstName: testhelpers.StrPtr(" Julia "),
		Username:  testhelpers.StrPtr("JuliaC"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Julia", updated.FirstName)
	assert.Equal(t, "User", updated.LastName)
	assert.Equal(t, "juliac", updated.Username)

	_, err = profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{Username: testhelpers.StrPtr("taken")})
	requireAppError(t, err, apperror.KindConflict, "Username already taken")

	_, err = profiles.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{LastName: testhelpers.StrPtr("")})
	requireAppError(t, err, apperror.KindValidation, "Last name cannot be empty")
}

func TestChangePassword(t *testing.T) {
	profiles, env := newProfileService(t)
	user := testhelpers.CreateTestUser(t, env.DB, "")
	ctx := context.Background()

	err := profiles.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{CurrentPassword: "wrong-one", NewPassword: "brand-new"})
	requireAppError(t, err, apperror.KindAuth, "Current password is incorrect")

	err = profiles.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{CurrentPassword: testhelpers.TestPassword, NewPassword: "short"})
	requireAppError(t, err, apperror.KindValidation, "New password must be at least 6 characters")

	err = profiles.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{CurrentPassword: testhelpers.TestPassword, NewPassword: strings.Repeat("p", 80)})
	requireAppError(t, err, apperror.KindValidation, "New password must be at most 72 bytes")

	err = profiles.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{NewPassword: "brand-new"})
	requireAppError(t, err, apperror.KindValidation, "Current password and new password are required")

	require.NoError(t, profiles.ChangePassword(ctx, user.ID, &types.ChangePasswordRequest{
		CurrentPassword: testhelpers.TestPassword,
		NewPassword:     "brand-new",
	}))

	_, err = env.Auth.Login(ctx, &types.LoginRequest{Username: user.Username, Password: "brand-new"})
	assert.NoError(t, err)
	_, err = env.Auth.Login(ctx, &types.LoginRequest{Username: user.Username, Password: testhelpers.TestPassword})
	requireAppError(t, err, apperror.KindAuth, "Invalid credentials")
}
