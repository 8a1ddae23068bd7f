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

// AccountUpgradeHandler handles account upgrade and payment endpoints
type AccountUpgradeHandler struct {
	upgradeUsecase *usecases.AccountUpgradeUsecase
}

// NewAccountUpgradeHandler creates a new account upgrade handler
func NewAccountUpgradeHandler(upgradeUsecase *usecases.AccountUpgradeUsecase) *AccountUpgradeHandler {
	return &AccountUpgradeHandler{upgradeUsecase: upgradeUsecase}
}

// RequestUpgrade creates an upgrade request for the authenticated user
// POST /api/v1/upgrades
func (h *AccountUpgradeHandler) RequestUpgrade(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrInvalidToken)
		return
	}

	var input entities.RequestUpgradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	result, err := h.upgradeUsecase.RequestUpgrade(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ListUpgrades lists all upgrade requests
// GET /api/v1/upgrades
func (h *AccountUpgradeHandler) ListUpgrades(c *gin.Context) {
	upgrades, err := h.upgradeUsecase.ListUpgrades(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upgrades": upgrades})
}

// MyUpgrades lists the authenticated user's upgrade requests
// GET /api/v1/upgrades/me
func (h *AccountUpgradeHandler) MyUpgrades(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrInvalidToken)
		return
	}

	upgrades, err := h.upgradeUsecase.GetUpgradesByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upgrades": upgrades})
}

// GetUpgrade fetches an upgrade with its payment record
// GET /api/v1/upgrades/:id
func (h *AccountUpgradeHandler) GetUpgrade(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	upgrade, err := h.upgradeUsecase.GetUpgradeByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upgrade": upgrade})
}

// UpdateUpgradeStatus decides or re-queues an upgrade request
// PATCH /api/v1/upgrades/:id/status
func (h *AccountUpgradeHandler) UpdateUpgradeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	var input entities.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.ValidationField("status", "is required"))
		return
	}

	upgrade, err := h.upgradeUsecase.UpdateUpgradeStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upgrade": upgrade})
}

// ListPayments lists all payment records
// GET /api/v1/payments
func (h *AccountUpgradeHandler) ListPayments(c *gin.Context) {
	payments, err := h.upgradeUsecase.ListPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// MyPayments lists the authenticated user's payment records
// GET /api/v1/payments/me
func (h *AccountUpgradeHandler) MyPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.ErrInvalidToken)
		return
	}

	payments, err := h.upgradeUsecase.GetPaymentsByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// GetPayment fetches a payment record
// GET /api/v1/payments/:id
func (h *AccountUpgradeHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	payment, err := h.upgradeUsecase.GetPaymentByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// UpdatePaymentStatus moves a payment record through its status machine
// PATCH /api/v1/payments/:id/status
func (h *AccountUpgradeHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	var input entities.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.ValidationField("status", "is required"))
		return
	}

	payment, err := h.upgradeUsecase.UpdatePaymentStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// DeletePayment removes a payment record
// DELETE /api/v1/payments/:id
func (h *AccountUpgradeHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.ValidationField("id", "must be a valid UUID"))
		return
	}

	if err := h.upgradeUsecase.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "payment deleted"})
}
