package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

var validate = validator.New()

type AuthService struct {
	db           *gorm.DB
	tokens       *TokenService
	passwordCost int
}

func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{
		db:           db,
		tokens:       tokens,
		passwordCost: PasswordCost,
	}
}

// WithPasswordCost overrides the bcrypt cost, for tests and seeding
func (s *AuthService) WithPasswordCost(cost int) *AuthService {
	s.passwordCost = cost
	return s
}

// ValidateToken verifies an access token
func (s *AuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.tokens.ValidateToken(token)
}

// Register creates an account and signs the user in. Username defaults to the
// local part of the email.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if email == "" || req.Password == "" || firstName == "" || lastName == "" {
		return nil, apperror.Validation("Email, password, firstName, and lastName are required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, apperror.Validation("A valid email address is required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperror.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if len(req.Password) > MaxPasswordLength {
		return nil, apperror.Validation(fmt.Sprintf("Password must be at most %d bytes", MaxPasswordLength))
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}
	if existing > 0 {
		return nil, apperror.Conflict("User with this email or username already exists")
	}

	hash, err := HashPassword(req.Password, s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User with this email or username already exists")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issue(user)
}

// Login accepts an email or a username. Unknown users and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResult, error) {
	identifier := strings.ToLower(strings.TrimSpace(req.Email))
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(req.Username))
	}
	if identifier == "" || req.Password == "" {
		return nil, apperror.Validation("Email/username and password are required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Auth("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperror.Auth("Invalid credentials")
	}

	return s.issue(&user)
}

// Refresh re-resolves the user behind a refresh token and issues a new pair.
// Refresh tokens are not tracked, so an old one stays usable until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.AuthResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperror.Validation("Refresh token is required")
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.KindAuth, "Invalid or expired refresh token")
	}

	var user models.User
	err = s.db.WithContext(ctx).First(&user, claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Auth("Invalid refresh token")
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*types.AuthResult, error) {
	tokens, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}
	return &types.AuthResult{User: user, Tokens: tokens}, nil
}

// GetUserByID loads an account
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return &user, nil
}

// ListUsers pages through all accounts, newest first
func (s *AuthService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}
	var users []models.User
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	return users, total, nil
}
