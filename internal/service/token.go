package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const (
	TokenIssuer   = "recipe-api"
	TokenAudience = "recipe-app"
)

// ErrInvalidToken hides why a token failed verification
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService signs and verifies access and refresh tokens
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// GenerateTokenPair issues a fresh access and refresh token for user
func (s *TokenService) GenerateTokenPair(user *models.User) (types.TokenPair, error) {
	access, err := s.sign(&types.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}, s.accessTTL)
	if err != nil {
		return types.TokenPair{}, err
	}

	refresh, err := s.sign(&types.TokenClaims{UserID: user.ID}, s.refreshTTL)
	if err != nil {
		return types.TokenPair{}, err
	}

	return types.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) sign(claims *types.TokenClaims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		Issuer:    TokenIssuer,
		Audience:  jwt.ClaimStrings{TokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies an access token. It satisfies middleware.TokenValidator.
func (s *TokenService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil || claims.IsRefresh() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefreshToken verifies a refresh token; access tokens are rejected
func (s *TokenService) ValidateRefreshToken(tokenString string) (*types.TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil || !claims.IsRefresh() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
