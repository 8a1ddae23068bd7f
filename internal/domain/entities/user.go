package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role represents a user account role. Roles are flat strings with no
// hierarchy; transitions go through the account upgrade workflow only.
type Role string

const (
	RoleCommon        Role = "common"
	RoleReader        Role = "reader"
	RoleAuthor        Role = "author"
	RoleReviewer      Role = "reviewer"
	RolePublisher     Role = "publisher"
	RoleDesigner      Role = "designer"
	RoleBookShopOwner Role = "book_shop_owner"
)

// DefaultRole is assigned at signup.
const DefaultRole = RoleCommon

// ParseRole validates a role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCommon, RoleReader, RoleAuthor, RoleReviewer, RolePublisher, RoleDesigner, RoleBookShopOwner:
		return Role(s), true
	default:
		return "", false
	}
}

// User represents a user account
type User struct {
	ID               uuid.UUID   `json:"id"`
	Email            string      `json:"email"`
	PasswordHash     string      `json:"-"`
	Role             Role        `json:"role"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	IsEmailVerified  bool        `json:"isEmailVerified"`
	IsActive         bool        `json:"isActive"`
	TokenVersion     int         `json:"-"`
	HomeAddress      null.String `json:"homeAddress,omitempty"`
	DeliveryAddress  null.String `json:"deliveryAddress,omitempty"`
	PhoneNumber      null.String `json:"phoneNumber,omitempty"`
	Company          null.String `json:"company,omitempty"`
	FiscalCode       null.String `json:"fiscalCode,omitempty"`
	CardNumberMasked null.String `json:"cardNumberMasked,omitempty"`
	CardExpiry       null.Time   `json:"cardExpiry,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	DeletedAt        *time.Time  `json:"-"`
}

// SignupInput represents input for user signup
type SignupInput struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// SignInInput represents input for user sign-in
type SignInInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput represents input for changing the password
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateProfileInput carries the profile fields a user may change.
// Role, email-verification and password are not accepted here.
type UpdateProfileInput struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	Email            *string `json:"email,omitempty"`
	HomeAddress      *string `json:"homeAddress,omitempty"`
	DeliveryAddress  *string `json:"deliveryAddress,omitempty"`
	PhoneNumber      *string `json:"phoneNumber,omitempty"`
	Company          *string `json:"company,omitempty"`
	FiscalCode       *string `json:"fiscalCode,omitempty"`
	CardNumberMasked *string `json:"cardNumberMasked,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
