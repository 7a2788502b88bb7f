package account

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Address is a delivery address of a user
type Address struct {
	shared.BaseEntity
	UserID     uuid.UUID
	Title      string
	PostalCode string
	City       string
	Street     string
}

// NewAddress creates an address for userID
func NewAddress(userID uuid.UUID, title, postalCode, city, street string) (*Address, error) {
	a := &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Title:      strings.TrimSpace(title),
		PostalCode: strings.TrimSpace(postalCode),
		City:       strings.TrimSpace(city),
		Street:     strings.TrimSpace(street),
	}
	if a.City == "" || a.Street == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City and street are required")
	}
	if len(a.PostalCode) > 20 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot exceed 20 characters")
	}
	return a, nil
}

// BelongsTo reports whether the address is owned by userID
func (a *Address) BelongsTo(userID uuid.UUID) bool {
	return a.UserID == userID
}
