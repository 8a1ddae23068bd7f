package entities

import (
	"time"

	"github.com/google/uuid"
)

// UpgradeStatus represents the status of an account upgrade request
type UpgradeStatus string

const (
	UpgradeStatusPending      UpgradeStatus = "pending"
	UpgradeStatusAccepted     UpgradeStatus = "accepted"
	UpgradeStatusRejected     UpgradeStatus = "rejected"
	UpgradeStatusHoldOnReview UpgradeStatus = "hold-on-review"
)

// ParseUpgradeStatus validates an upgrade status string.
func ParseUpgradeStatus(s string) (UpgradeStatus, bool) {
	switch UpgradeStatus(s) {
	case UpgradeStatusPending, UpgradeStatusAccepted, UpgradeStatusRejected, UpgradeStatusHoldOnReview:
		return UpgradeStatus(s), true
	default:
		return "", false
	}
}

// IsTerminal reports whether the status admits no further transitions.
// Reopening a decided upgrade requires a new upgrade record.
func (s UpgradeStatus) IsTerminal() bool {
	return s == UpgradeStatusAccepted || s == UpgradeStatusRejected
}

// CanTransitionTo reports whether the status may move to next.
func (s UpgradeStatus) CanTransitionTo(next UpgradeStatus) bool {
	switch s {
	case UpgradeStatusPending:
		return next == UpgradeStatusAccepted || next == UpgradeStatusRejected || next == UpgradeStatusHoldOnReview
	case UpgradeStatusHoldOnReview:
		return next == UpgradeStatusPending || next == UpgradeStatusAccepted || next == UpgradeStatusRejected
	case UpgradeStatusAccepted, UpgradeStatusRejected:
		return false
	default:
		return false
	}
}

// AccountUpgrade represents a request to change a user's role, paired 1:1
// with the payment record created for it. PreviousType is the role snapshot
// taken at request time and is never recomputed.
type AccountUpgrade struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	PreviousType Role           `json:"previousType"`
	NewType      Role           `json:"newType"`
	PaymentID    uuid.UUID      `json:"paymentId"`
	Status       UpgradeStatus  `json:"status"`
	Payment      *PaymentRecord `json:"paymentRecord,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// RequestUpgradeInput represents input for requesting an account upgrade
type RequestUpgradeInput struct {
	NewAccountType string              `json:"accountType" binding:"required"`
	PaymentDetails PaymentDetailsInput `json:"paymentDetails" binding:"required"`
}

// UpgradeResult pairs the two rows created by an upgrade request
type UpgradeResult struct {
	Upgrade *AccountUpgrade `json:"upgrade"`
	Payment *PaymentRecord  `json:"payment"`
}

// UpdateStatusInput carries a requested status change
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}
