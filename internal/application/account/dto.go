package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
)

// LoginRequest holds the credentials exchanged for a token pair
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=1,max=72"`
}

// RefreshRequest holds the refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned by the token endpoints
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateUserRequest creates a customer or staff account
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email,max=200"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	FullName    string `json:"full_name" binding:"max=150"`
	PhoneNumber string `json:"phone_number" binding:"max=16"`
	IsStaff     bool   `json:"is_staff"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	FullName    string     `json:"full_name"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	WalletID    *uuid.UUID `json:"wallet_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user
func ToUserResponse(u *account.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		WalletID:    u.WalletID,
		CreatedAt:   u.CreatedAt,
	}
}

// CreateAddressRequest adds a delivery address
type CreateAddressRequest struct {
	Title      string `json:"title" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	City       string `json:"city" binding:"required,max=100"`
	Street     string `json:"street" binding:"required,max=300"`
}

// AddressResponse is the public view of an address
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToAddressResponse converts a domain address
func ToAddressResponse(a *account.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Title:      a.Title,
		PostalCode: a.PostalCode,
		City:       a.City,
		Street:     a.Street,
		CreatedAt:  a.CreatedAt,
	}
}
