package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/domain/repositories"
	"bookhub.backend/internal/interfaces/http/response"
	"bookhub.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// AuthMiddleware authenticates requests with a bearer access token. The
// user is loaded on every request so a deactivated account stops working
// immediately, not at token expiry.
func AuthMiddleware(jwtService *jwt.Service, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.Error(c, domainerrors.Unauthorized(domainerrors.CodeInvalidToken, "authorization header is required"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized(domainerrors.CodeInvalidToken, "invalid authorization format, use: Bearer <token>"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString, jwt.TokenTypeAccess)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Error(c, domainerrors.ErrTokenExpired)
			} else {
				response.Error(c, domainerrors.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				response.Error(c, domainerrors.ErrInvalidToken)
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, domainerrors.ErrAccountDisabled)
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserRoleKey, string(user.Role))

		c.Next()
	}
}

// GetUserID gets the authenticated user's ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetUserEmail gets the authenticated user's email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole gets the authenticated user's role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}
