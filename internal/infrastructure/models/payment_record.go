package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentRecord struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	AccountUpgradeID *uuid.UUID `gorm:"type:uuid"`
	PaymentMethod    string     `gorm:"type:varchar(50);not null"`
	Amount           float64    `gorm:"type:decimal(10,2);not null"`
	Currency         string     `gorm:"type:varchar(3);not null;default:'USD'"`
	Status           string     `gorm:"type:varchar(50);not null;default:'completed'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User           *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AccountUpgrade *AccountUpgrade `gorm:"foreignKey:AccountUpgradeID;constraint:OnDelete:CASCADE"`
}
