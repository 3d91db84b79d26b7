package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
	"github.com/pageza/recipe-share/backend/internal/types"
)

func TestUserStats(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.DB, "")
	testhelpers.CreateTestRecipe(t, a.DB, user.ID)

	env := decode(t, a.do(http.MethodGet, "/api/users/stats", testhelpers.AccessToken(t, user), nil), http.StatusOK)
	var stats types.UserStatsView
	decodeData(t, env, &stats)
	assert.Equal(t, int64(1), stats.RecipesCreated)

	env = decode(t, a.do(http.MethodGet, fmt.Sprintf("/api/users/%d/stats", user.ID), "", nil), http.StatusOK)
	decodeData(t, env, &stats)
	assert.Equal(t, int64(1), stats.RecipesCreated)

	env = decode(t, a.do(http.MethodGet, "/api/users/9999/stats", "", nil), http.StatusNotFound)
	assert.Equal(t, "User not found", env.Error)

	decode(t, a.do(http.MethodGet, "/api/users/0/stats", "", nil), http.StatusBadRequest)
	decode(t, a.do(http.MethodGet, "/api/users/stats", "", nil), http.StatusUnauthorized)
}

func TestAdminListUsers(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.DB, "")
	admin := testhelpers.CreateTestAdmin(t, a.DB)

	env := decode(t, a.do(http.MethodGet, "/api/admin/users", testhelpers.AccessToken(t, user), nil), http.StatusForbidden)
	assert.Equal(t, "Admin access required", env.Error)

	env = decode(t, a.do(http.MethodGet, "/api/admin/users?limit=1", testhelpers.AccessToken(t, admin), nil), http.StatusOK)
	var page response.Page[map[string]any]
	decodeData(t, env, &page)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
