package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
)

// AddressService manages delivery addresses of the signed-in user
type AddressService struct {
	addressRepo account.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo account.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListAddresses returns the user's addresses, oldest first
func (s *AddressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToAddressResponse(&addresses[i])
	}
	return out, nil
}

// CreateAddress adds an address for the user
func (s *AddressService) CreateAddress(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := account.NewAddress(userID, req.Title, req.PostalCode, req.City, req.Street)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(address)
	return &resp, nil
}

// DeleteAddress removes one of the user's addresses.
// Addresses of other users are reported as not found.
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if !address.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	return s.addressRepo.Delete(ctx, addressID)
}

// GetDefaultAddress returns the user's first address
func (s *AddressService) GetDefaultAddress(ctx context.Context, userID uuid.UUID) (*AddressResponse, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No address registered")
	}
	resp := ToAddressResponse(&addresses[0])
	return &resp, nil
}

// GetAddress returns one of the user's addresses
func (s *AddressService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	resp := ToAddressResponse(address)
	return &resp, nil
}
