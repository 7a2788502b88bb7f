package shipment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shopspring/decimal"
)

// CreateShipmentTypeRequest creates a delivery option
type CreateShipmentTypeRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	VAT         decimal.Decimal `json:"vat"`
}

// ShipmentTypeResponse is a delivery option
type ShipmentTypeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	ServiceType int             `json:"service_type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	VAT         decimal.Decimal `json:"vat"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// ToShipmentTypeResponse converts a shipment type
func ToShipmentTypeResponse(st *shipment.ShipmentType) ShipmentTypeResponse {
	return ShipmentTypeResponse{
		ID:          st.ID,
		Title:       st.Title,
		ServiceType: int(st.ServiceType),
		Description: st.Description,
		Price:       st.Price,
		VAT:         st.VAT,
		TotalPrice:  st.TotalPrice(),
	}
}

// Service lists and creates shipment types
type Service struct {
	repo shipment.Repository
}

// NewService creates a new shipment Service
func NewService(repo shipment.Repository) *Service {
	return &Service{repo: repo}
}

// ListActive returns the active shipment types, cheapest first
func (s *Service) ListActive(ctx context.Context) ([]ShipmentTypeResponse, error) {
	types, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ShipmentTypeResponse, len(types))
	for i := range types {
		out[i] = ToShipmentTypeResponse(&types[i])
	}
	return out, nil
}

// Get returns an active shipment type
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ShipmentTypeResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !st.IsActive {
		return nil, shared.ErrNotFound
	}
	resp := ToShipmentTypeResponse(st)
	return &resp, nil
}

// Create creates a shipment type
func (s *Service) Create(ctx context.Context, req CreateShipmentTypeRequest) (*ShipmentTypeResponse, error) {
	st, err := shipment.NewShipmentType(req.Title, req.Description, req.Price, req.VAT)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, st); err != nil {
		return nil, err
	}
	resp := ToShipmentTypeResponse(st)
	return &resp, nil
}
