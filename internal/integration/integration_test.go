package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/server"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) call(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func setupServer(t *testing.T, createLimit int) http.Handler {
	t.Helper()
	db := testhelpers.SetupPostgresDB(t, "../../migrations")
	env := testhelpers.NewEnvWithDB(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Env:                config.Test,
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		ShutdownTimeout:    time.Second,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	log := zap.NewNop()
	srv := server.New(cfg, log, api.Options{
		Auth:          env.Auth,
		Profile:       env.Profile,
		Recipes:       env.Recipes,
		Dashboard:     env.Dashboard,
		Stats:         env.Stats,
		Ready:         func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
		CreateLimiter: middleware.NewRecipeCreationRateLimiter(rdb, createLimit, time.Hour, log),
		ModifyLimiter: middleware.NewRecipeModificationRateLimiter(rdb, 100, time.Hour, log),
		AuthLimiter:   middleware.NewIPRateLimiter(100, 100),
	})
	return srv.Handler()
}

func register(t *testing.T, h http.Handler, email string) *client {
	t.Helper()
	c := &client{t: t, handler: h}
	status, body := c.call(http.MethodPost, "/api/auth/register", map[string]string{
		"email":     email,
		"password":  "password123",
		"firstName": "Int",
		"lastName":  "Test",
	})
	require.Equal(t, http.StatusCreated, status, body)

	data := body["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	c.token = tokens["accessToken"].(string)
	return c
}

func TestRecipeLifecycle(t *testing.T) {
	h := setupServer(t, 10)

	status, _ := (&client{t: t, handler: h}).call(http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, status)

	chef := register(t, h, "chef@example.com")
	fan := register(t, h, "fan@example.com")

	status, body := chef.call(http.MethodPost, "/api/recipes", map[string]any{
		"title":        "Shakshuka",
		"prepTime":     10,
		"cookTime":     "20",
		"servings":     2,
		"difficulty":   "medium",
		"ingredients":  []any{},
		"instructions": []map[string]any{{"step": 3, "text": "Poach eggs in sauce"}, {"step": 9, "text": " "}},
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "At least one ingredient is required", body["error"])

	status, body = chef.call(http.MethodPost, "/api/recipes", map[string]any{
		"title":        "Shakshuka",
		"prepTime":     10,
		"cookTime":     "20",
		"servings":     2,
		"difficulty":   "medium",
		"ingredients":  []map[string]string{{"name": "Eggs", "amount": "4"}, {"name": "Tomatoes", "amount": "400g"}},
		"instructions": []map[string]any{{"step": 3, "text": "Poach eggs in sauce"}, {"step": 9, "text": " "}},
	})
	require.Equal(t, http.StatusCreated, status, body)
	recipe := body["data"].(map[string]any)
	id := int(recipe["id"].(float64))
	assert.Equal(t, "MEDIUM", recipe["difficulty"])
	steps := recipe["instructions"].([]any)
	require.Len(t, steps, 1)
	assert.Equal(t, float64(1), steps[0].(map[string]any)["step"])

	path := fmt.Sprintf("/api/recipes/%d", id)

	status, _ = fan.call(http.MethodPost, path+"/save", nil)
	require.Equal(t, http.StatusCreated, status)
	status, _ = fan.call(http.MethodPost, path+"/save", nil)
	require.Equal(t, http.StatusConflict, status)

	status, _ = fan.call(http.MethodPost, path+"/cook", map[string]any{"rating": 5})
	require.Equal(t, http.StatusCreated, status)
	status, _ = fan.call(http.MethodPost, path+"/cook", map[string]any{"rating": 4})
	require.Equal(t, http.StatusCreated, status)

	status, body = fan.call(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	detail := body["data"].(map[string]any)
	assert.Equal(t, true, detail["isSavedByUser"])
	assert.Equal(t, true, detail["isCookedByUser"])
	assert.Equal(t, float64(4), detail["userRating"])
	assert.Equal(t, "4.5", detail["averageRating"])
	assert.Equal(t, float64(1), detail["totalSaves"])
	assert.Equal(t, float64(2), detail["totalCooked"])

	status, body = fan.call(http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["data"].(map[string]any)
	assert.Equal(t, float64(1), stats["recipesSaved"])
	assert.Equal(t, float64(2), stats["recipesCooked"])

	status, _ = fan.call(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusForbidden, status)

	status, body = chef.call(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, `Recipe "Shakshuka" deleted successfully`, body["message"])

	status, body = fan.call(http.MethodGet, "/api/recipes/saved/list", nil)
	require.Equal(t, http.StatusOK, status)
	page := body["data"].(map[string]any)
	assert.Empty(t, page["items"])
}

func TestRecipeCreationIsRateLimited(t *testing.T) {
	h := setupServer(t, 1)
	chef := register(t, h, "limited@example.com")

	recipe := map[string]any{
		"title":        "Toast",
		"ingredients":  []map[string]string{{"name": "Bread"}},
		"instructions": []map[string]any{{"step": 1, "text": "Toast it"}},
	}
	status, _ := chef.call(http.MethodPost, "/api/recipes", recipe)
	require.Equal(t, http.StatusCreated, status)

	status, body := chef.call(http.MethodPost, "/api/recipes", recipe)
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, body["error"], "Rate limit exceeded")
}
