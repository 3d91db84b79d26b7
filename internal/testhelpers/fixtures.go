package testhelpers

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/service"
)

const (
	TestJWTSecret = "test-jwt-secret"
	TestPassword  = "password123"
)

var (
	seq          atomic.Int64
	passwordHash = func() string {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		return string(hash)
	}()
)

// NewTokenService returns a token service signed with TestJWTSecret
func NewTokenService() *service.TokenService {
	return service.NewTokenService(TestJWTSecret, time.Hour, 24*time.Hour)
}

// NewAuthService wires an auth service using the cheapest bcrypt cost
func NewAuthService(db *gorm.DB) *service.AuthService {
	return service.NewAuthService(db, NewTokenService()).WithPasswordCost(bcrypt.MinCost)
}

// CreateTestUser inserts a user whose password is TestPassword. An empty
// username generates a unique one.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	if username == "" {
		username = fmt.Sprintf("user%d", seq.Add(1))
	}
	username = strings.ToLower(username)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin inserts a user with the admin role
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := CreateTestUser(t, db, "")
	if err := db.Model(user).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote admin: %v", err)
	}
	user.IsAdmin = true
	return user
}

// CreateTestRecipe inserts a public EASY recipe owned by ownerID. Options run
// before the insert.
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID uint, opts ...func(*models.Recipe)) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:       ownerID,
		Title:        fmt.Sprintf("Test Recipe %d", seq.Add(1)),
		Difficulty:   models.DifficultyEasy,
		IsPublic:     true,
		Ingredients:  models.JSONList[models.Ingredient]{{Name: "flour", Amount: "2", Unit: "cups"}},
		Instructions: models.JSONList[models.Instruction]{{Step: 1, Text: "Mix"}},
	}
	for _, opt := range opts {
		opt(recipe)
	}
	if err := db.Omit("User", "SavedBy", "CookedBy").Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// Private marks a test recipe as visible to its owner only
func Private(r *models.Recipe) {
	r.IsPublic = false
}

// AccessToken mints an access token for user with NewTokenService
func AccessToken(t *testing.T, user *models.User) string {
	t.Helper()
	pair, err := NewTokenService().GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return pair.AccessToken
}

// IntPtr and StrPtr build optional fields
func IntPtr(v int) *int { return &v }

func StrPtr(v string) *string { return &v }
