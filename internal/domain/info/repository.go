package info

import (
	"context"

	"github.com/google/uuid"
)

// Repository serves the informational content of the shop
type Repository interface {
	// LatestPage returns the newest active page of kind
	LatestPage(ctx context.Context, kind PageKind) (*Page, error)
	SavePage(ctx context.Context, page *Page) error
	// ListFAQGroups returns groups with their questions, both by priority descending
	ListFAQGroups(ctx context.Context) ([]FAQGroup, error)
	SaveFAQGroup(ctx context.Context, group *FAQGroup) error
	ListShopLocations(ctx context.Context) ([]ShopLocation, error)
	SaveShopLocation(ctx context.Context, location *ShopLocation) error
	ListStates(ctx context.Context) ([]State, error)
	ListCities(ctx context.Context, stateID uuid.UUID) ([]City, error)
	ListInquiryCategories(ctx context.Context) ([]InquiryCategory, error)
	SaveContactRequest(ctx context.Context, req *ContactRequest) error
}
