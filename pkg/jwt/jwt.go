package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenType discriminates access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims represents JWT claims
type Claims struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email,omitempty"`
	TokenType TokenType `json:"tokenType"`
	// TokenVersion is carried on refresh tokens only. Comparing it against
	// the user's stored version is the caller's job.
	TokenVersion int `json:"tokenVersion,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service issues and verifies signed tokens. Access and refresh tokens are
// signed with separate secrets.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewService creates a token service. Missing secrets are a configuration
// error and refuse construction.
func NewService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) (*Service, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("jwt: access and refresh secrets are required")
	}
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}, nil
}

// GenerateTokenPair generates an access and a refresh token for a user.
// The refresh token carries the user's current token version.
func (s *Service) GenerateTokenPair(userID uuid.UUID, email string, tokenVersion int) (*TokenPair, error) {
	accessToken, err := s.generate(&Claims{
		UserID:    userID,
		Email:     email,
		TokenType: TokenTypeAccess,
	}, s.accessSecret, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generate(&Claims{
		UserID:       userID,
		TokenType:    TokenTypeRefresh,
		TokenVersion: tokenVersion,
	}, s.refreshSecret, s.refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken verifies signature and expiry and checks that the token is
// of the expected type. A wrong-type token is ErrInvalidToken, not
// ErrExpiredToken.
func (s *Service) ValidateToken(tokenString string, expected TokenType) (*Claims, error) {
	secret := s.accessSecret
	if expected == TokenTypeRefresh {
		secret = s.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) generate(claims *Claims, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
