package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	Role             string    `gorm:"type:varchar(50);not null;default:'common'"`
	FirstName        string    `gorm:"type:varchar(50);not null"`
	LastName         string    `gorm:"type:varchar(50);not null"`
	IsEmailVerified  bool      `gorm:"not null;default:false"`
	IsActive         bool      `gorm:"not null;default:true"`
	TokenVersion     int       `gorm:"not null;default:0"`
	HomeAddress      *string   `gorm:"type:varchar(255)"`
	DeliveryAddress  *string   `gorm:"type:varchar(255)"`
	PhoneNumber      *string   `gorm:"type:varchar(50)"`
	Company          *string   `gorm:"type:varchar(100)"`
	FiscalCode       *string   `gorm:"type:varchar(50)"`
	CardNumberMasked *string   `gorm:"type:varchar(25)"`
	CardExpiry       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
