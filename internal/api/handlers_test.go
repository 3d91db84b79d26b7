package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/mocks"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/response"
	"github.com/pageza/recipe-share/backend/internal/service"
	"github.com/pageza/recipe-share/backend/internal/types"
)

type mockedAPI struct {
	auth    *mocks.MockAuthService
	recipes *mocks.MockRecipeService
	stats   *mocks.MockStatsService
	router  *gin.Engine
}

func newMockedAPI(t *testing.T) *mockedAPI {
	m := &mockedAPI{
		auth:    new(mocks.MockAuthService),
		recipes: new(mocks.MockRecipeService),
		stats:   new(mocks.MockStatsService),
		router:  gin.New(),
	}
	m.router.Use(middleware.ErrorHandler(zap.NewNop(), false))
	RegisterRoutes(m.router, Options{
		Auth:      m.auth,
		Profile:   new(mocks.MockProfileService),
		Recipes:   m.recipes,
		Dashboard: new(mocks.MockDashboardService),
		Stats:     m.stats,
	})
	t.Cleanup(func() {
		m.auth.AssertExpectations(t)
		m.recipes.AssertExpectations(t)
		m.stats.AssertExpectations(t)
	})
	return m
}

func (m *mockedAPI) do(method, target, token string, body any) *httptest.ResponseRecorder {
	return serve(m.router, method, target, token, body)
}

func (m *mockedAPI) signIn(token string, userID uint) {
	m.auth.On("ValidateToken", token).Return(&types.TokenClaims{UserID: userID, Username: "cook"}, nil)
}

func TestListRecipesParsesQuery(t *testing.T) {
	m := newMockedAPI(t)
	m.recipes.On("ListPublic", mock.Anything, uint(0), mock.MatchedBy(func(p service.RecipeListParams) bool {
		return p.Filter.Difficulty == models.DifficultyHard &&
			p.Filter.Search == "stew" &&
			p.Pagination.Page == 2 &&
			p.Pagination.Limit == 5
	})).Return(response.NewPage[types.RecipeView](nil, 2, 5, 0), nil)

	w := m.do(http.MethodGet, "/api/recipes?difficulty=hard&search=stew&page=2&limit=5", "", nil)
	env := decode(t, w, http.StatusOK)
	assert.Contains(t, string(env.Data), `"items":[]`)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	m := newMockedAPI(t)
	m.signIn("tok", 7)
	m.recipes.On("Delete", mock.Anything, uint(7), uint(3)).Return("", errors.New("connection reset by peer"))

	w := m.do(http.MethodDelete, "/api/recipes/3", "tok", nil)
	env := decode(t, w, http.StatusInternalServerError)
	assert.Equal(t, "Internal server error", env.Error)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestCookWithoutBody(t *testing.T) {
	m := newMockedAPI(t)
	m.signIn("tok", 7)
	m.recipes.On("Cook", mock.Anything, uint(7), uint(3), &types.CookRequest{}).
		Return(&types.CookResult{ID: 1}, "Soup", nil)

	w := m.do(http.MethodPost, "/api/recipes/3/cook", "tok", nil)
	env := decode(t, w, http.StatusCreated)
	assert.Equal(t, `Recipe "Soup" marked as cooked`, env.Message)
}

func TestPublicStatsUnknownUser(t *testing.T) {
	m := newMockedAPI(t)
	m.auth.On("GetUserByID", mock.Anything, uint(42)).Return(nil, apperror.NotFound("User not found"))

	w := m.do(http.MethodGet, "/api/users/42/stats", "", nil)
	decode(t, w, http.StatusNotFound)
	m.stats.AssertNotCalled(t, "WithActivity", mock.Anything, mock.Anything)
}
