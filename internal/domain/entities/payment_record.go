package entities

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment record
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// ParsePaymentStatus validates a payment status string.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return PaymentStatus(s), true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether the status may move to next.
// Refunded is terminal.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	case PaymentStatusFailed:
		return next == PaymentStatusPending
	case PaymentStatusRefunded:
		return false
	default:
		return false
	}
}

// PaymentRecord represents a payment made by a user. A record can exist on
// its own; AccountUpgradeID is back-filled once when the record was created
// for an upgrade request.
type PaymentRecord struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	AccountUpgradeID *uuid.UUID      `json:"accountUpgradeId,omitempty"`
	PaymentMethod    string          `json:"paymentMethod"`
	Amount           float64         `json:"amount"`
	Currency         string          `json:"currency"`
	Status           PaymentStatus   `json:"status"`
	AccountUpgrade   *AccountUpgrade `json:"accountUpgrade,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PaymentDetailsInput carries payment details for an upgrade request
type PaymentDetailsInput struct {
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Amount        float64 `json:"amount" binding:"min=0"`
	Currency      string  `json:"currency" binding:"required,len=3"`
}
