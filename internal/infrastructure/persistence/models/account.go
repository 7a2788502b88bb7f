package models

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
)

// UserModel is the persistence model for account.User
type UserModel struct {
	AggregateModel
	Email        string     `gorm:"type:varchar(254);not null;uniqueIndex"`
	PhoneNumber  *string    `gorm:"type:varchar(20);uniqueIndex"`
	FullName     string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	IsActive     bool       `gorm:"not null"`
	IsStaff      bool       `gorm:"not null;default:false"`
	WalletID     *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string { return "users" }

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *account.User {
	return &account.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		FullName:          m.FullName,
		PasswordHash:      m.PasswordHash,
		IsActive:          m.IsActive,
		IsStaff:           m.IsStaff,
		WalletID:          m.WalletID,
	}
}

// UserModelFromDomain creates a model from a domain User
func UserModelFromDomain(u *account.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsStaff:      u.IsStaff,
		WalletID:     u.WalletID,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// AddressModel is the persistence model for account.Address
type AddressModel struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(100)"`
	PostalCode string    `gorm:"type:varchar(20)"`
	City       string    `gorm:"type:varchar(100)"`
	Street     string    `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string { return "addresses" }

// ToDomain converts the model to a domain Address
func (m *AddressModel) ToDomain() *account.Address {
	return &account.Address{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Title:      m.Title,
		PostalCode: m.PostalCode,
		City:       m.City,
		Street:     m.Street,
	}
}

// AddressModelFromDomain creates a model from a domain Address
func AddressModelFromDomain(a *account.Address) *AddressModel {
	m := &AddressModel{UserID: a.UserID, Title: a.Title, PostalCode: a.PostalCode, City: a.City, Street: a.Street}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
