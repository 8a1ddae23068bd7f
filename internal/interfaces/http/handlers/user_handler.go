package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/interfaces/http/middleware"
	"bookhub.backend/internal/interfaces/http/response"
	"bookhub.backend/internal/usecases"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// List lists users, optionally filtered by ?search=
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetByID fetches a user
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	user, err := h.userUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetByIDs fetches the users matching a list of IDs
// POST /api/v1/users/lookup
func (h *UserHandler) GetByIDs(c *gin.Context) {
	var input struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.ValidationField("ids", "must be a list of UUIDs"))
		return
	}

	users, err := h.userUsecase.GetByIDs(c.Request.Context(), input.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// UpdateProfile updates the authenticated user's profile
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrInvalidToken)
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// SetEmailVerified marks a user's email as verified
// POST /api/v1/users/:id/verify-email
func (h *UserHandler) SetEmailVerified(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	var input struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.ValidationField("verified", "must be a boolean"))
		return
	}

	if err := h.userUsecase.SetEmailVerified(c.Request.Context(), id, *input.Verified); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "email verification updated"})
}

// Deactivate disables an account without removing its records
// POST /api/v1/users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	if err := h.userUsecase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "account deactivated"})
}

// Delete permanently removes a user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	if err := h.userUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user deleted"})
}

// DeleteMany permanently removes a batch of users
// POST /api/v1/users/delete
func (h *UserHandler) DeleteMany(c *gin.Context) {
	var input struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.ValidationField("ids", "must be a list of UUIDs"))
		return
	}

	count, err := h.userUsecase.DeleteMany(c.Request.Context(), input.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": count})
}
