package shipment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceType identifies who carries the parcel
type ServiceType int

const (
	ServiceTypeManual ServiceType = 0
)

// MaxDescriptionLength is the maximum length of a shipment type description
const MaxDescriptionLength = 500

var hundred = decimal.NewFromInt(100)

// ShipmentType is a delivery option offered at checkout
type ShipmentType struct {
	shared.BaseEntity
	Title       string
	ServiceType ServiceType
	Description string
	Price       decimal.Decimal
	// VAT is a percentage between 0 and 100
	VAT      decimal.Decimal
	IsActive bool
}

// NewShipmentType creates an active manual shipment type
func NewShipmentType(title, description string, price, vat decimal.Decimal) (*ShipmentType, error) {
	st := &ShipmentType{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       strings.TrimSpace(title),
		ServiceType: ServiceTypeManual,
		Description: description,
		Price:       price,
		VAT:         vat,
		IsActive:    true,
	}
	if err := st.validate(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *ShipmentType) validate() error {
	if s.Title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Shipment title cannot be empty")
	}
	if utf8.RuneCountInString(s.Description) > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Shipment description cannot exceed 500 characters")
	}
	if s.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Shipment price cannot be negative")
	}
	if s.VAT.IsNegative() || s.VAT.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_VAT", "VAT must be between 0 and 100")
	}
	return nil
}

// TotalPrice is the price including VAT
func (s *ShipmentType) TotalPrice() decimal.Decimal {
	if s.VAT.IsZero() {
		return s.Price
	}
	return s.Price.Add(s.Price.Mul(s.VAT).Div(hundred))
}

// Repository persists shipment types
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShipmentType, error)
	// ListActive returns active types ordered by price
	ListActive(ctx context.Context) ([]ShipmentType, error)
	Save(ctx context.Context, st *ShipmentType) error
}
