package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. Refresh tokens carry only
// the user id, so an empty Username marks a refresh token.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"userId"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// IsRefresh reports whether the claims came from a refresh token
func (c *TokenClaims) IsRefresh() bool {
	return c.Username == ""
}

// Identity returns the caller identity carried by access token claims
func (c *TokenClaims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username, Email: c.Email, IsAdmin: c.IsAdmin}
}

// TokenPair is returned on register, login and refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
