package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/apperror"
	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// ProfileService manages the caller's own account
type ProfileService struct {
	db    *gorm.DB
	auth  *AuthService
	stats *StatsService
}

func NewProfileService(db *gorm.DB, auth *AuthService, stats *StatsService) *ProfileService {
	return &ProfileService{db: db, auth: auth, stats: stats}
}

// GetProfile returns the account with its activity counters
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*types.ProfileView, error) {
	user, err := s.auth.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.ProfileView{User: user, Stats: stats}, nil
}

// UpdateProfile changes first name, last name and username when present
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.User, error) {
	user, err := s.auth.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, apperror.Validation("First name cannot be empty")
		}
		updates["first_name"] = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, apperror.Validation("Last name cannot be empty")
		}
		updates["last_name"] = name
	}
	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username == "" {
			return nil, apperror.Validation("Username cannot be empty")
		}
		if username != user.Username {
			var taken int64
			if err := s.db.WithContext(ctx).Model(&models.User{}).
				Where("username = ? AND id <> ?", username, userID).
				Count(&taken).Error; err != nil {
				return nil, fmt.Errorf("checking username: %w", err)
			}
			if taken > 0 {
				return nil, apperror.Conflict("Username already taken")
			}
			updates["username"] = username
		}
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.Conflict("Username already taken")
			}
			return nil, fmt.Errorf("updating profile: %w", err)
		}
	}
	return s.auth.GetUserByID(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash
func (s *ProfileService) ChangePassword(ctx context.Context, userID uint, req *types.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperror.Validation("Current password and new password are required")
	}
	if len(req.NewPassword) < MinPasswordLength {
		return apperror.Validation(fmt.Sprintf("New password must be at least %d characters", MinPasswordLength))
	}
	if len(req.NewPassword) > MaxPasswordLength {
		return apperror.Validation(fmt.Sprintf("New password must be at most %d bytes", MaxPasswordLength))
	}

	user, err := s.auth.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperror.Auth("Current password is incorrect")
	}

	hash, err := HashPassword(req.NewPassword, s.auth.passwordCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}
