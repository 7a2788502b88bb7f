package account

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used when hashing passwords
var BcryptCost = bcrypt.DefaultCost

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// User is a shop customer or staff member
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PhoneNumber  *string
	FullName     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	WalletID     *uuid.UUID
}

// NewUser creates an active user with a hashed password
func NewUser(email, password, fullName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(fullName) > 150 {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 150 characters")
	}
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FullName:          strings.TrimSpace(fullName),
		IsActive:          true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPhoneNumber sets or clears the phone number
func (u *User) SetPhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		u.PhoneNumber = nil
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	u.PhoneNumber = &phone
	u.Touch()
	return nil
}

// PromoteToStaff grants staff rights
func (u *User) PromoteToStaff() {
	u.IsStaff = true
	u.Touch()
}

// Deactivate blocks the user from signing in
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// AttachWallet links the user's wallet
func (u *User) AttachWallet(walletID uuid.UUID) {
	u.WalletID = &walletID
	u.Touch()
}

// HasEmail reports whether the user can be reached by email
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// HasPhone reports whether the user can be reached by sms
func (u *User) HasPhone() bool {
	return u.PhoneNumber != nil && *u.PhoneNumber != ""
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 bytes")
	}
	return nil
}
