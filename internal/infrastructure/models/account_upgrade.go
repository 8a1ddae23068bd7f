package models

import (
	"time"

	"github.com/google/uuid"
)

type AccountUpgrade struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousType string    `gorm:"type:varchar(50);not null"`
	NewType      string    `gorm:"type:varchar(50);not null"`
	PaymentID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User          *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PaymentRecord *PaymentRecord `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}
