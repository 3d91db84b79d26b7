package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	*testhelpers.Env
	router *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	env := testhelpers.NewEnv(t)
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop(), false))
	RegisterRoutes(router, Options{
		Auth:      env.Auth,
		Profile:   env.Profile,
		Recipes:   env.Recipes,
		Dashboard: env.Dashboard,
		Stats:     env.Stats,
		Ready:     nil,
	})
	return &testAPI{Env: env, router: router}
}

func (a *testAPI) do(method, target, token string, body any) *httptest.ResponseRecorder {
	return serve(a.router, method, target, token, body)
}

// serve sends body (marshalled unless it is already a string) with an optional bearer token
func serve(router *gin.Engine, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, status int) envelope {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

