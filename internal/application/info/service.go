package info

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/info"
	"go.uber.org/zap"
)

// Service serves the shop's informational content
type Service struct {
	repo   info.Repository
	logger *zap.Logger
}

// NewService creates a new info Service
func NewService(repo info.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetAboutUs returns the latest about us text
func (s *Service) GetAboutUs(ctx context.Context) (*PageResponse, error) {
	return s.page(ctx, info.PageAboutUs)
}

// GetPrivacyPolicy returns the latest privacy policy
func (s *Service) GetPrivacyPolicy(ctx context.Context) (*PageResponse, error) {
	return s.page(ctx, info.PagePrivacyPolicy)
}

func (s *Service) page(ctx context.Context, kind info.PageKind) (*PageResponse, error) {
	p, err := s.repo.LatestPage(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &PageResponse{Text: p.Text}, nil
}

// PublishPage stores a new version of a static page
func (s *Service) PublishPage(ctx context.Context, kind info.PageKind, req PageRequest) (*PageResponse, error) {
	p, err := info.NewPage(kind, req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SavePage(ctx, p); err != nil {
		return nil, err
	}
	return &PageResponse{Text: p.Text}, nil
}

// ListFAQ returns the FAQ groups and their questions by priority
func (s *Service) ListFAQ(ctx context.Context) ([]FAQGroupResponse, error) {
	groups, err := s.repo.ListFAQGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FAQGroupResponse, len(groups))
	for i := range groups {
		out[i] = ToFAQGroupResponse(&groups[i])
	}
	return out, nil
}

// CreateFAQGroup stores a FAQ group with its questions
func (s *Service) CreateFAQGroup(ctx context.Context, req CreateFAQGroupRequest) (*FAQGroupResponse, error) {
	g, err := info.NewFAQGroup(req.Title, req.Priority)
	if err != nil {
		return nil, err
	}
	for _, f := range req.FAQs {
		if _, err := g.AddFAQ(f.Question, f.Answer, f.Priority); err != nil {
			return nil, err
		}
	}
	if err := s.repo.SaveFAQGroup(ctx, g); err != nil {
		return nil, err
	}
	resp := ToFAQGroupResponse(g)
	return &resp, nil
}

// ListShopLocations returns every store
func (s *Service) ListShopLocations(ctx context.Context) ([]ShopLocationResponse, error) {
	locations, err := s.repo.ListShopLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ShopLocationResponse, len(locations))
	for i := range locations {
		out[i] = ToShopLocationResponse(&locations[i])
	}
	return out, nil
}

// CreateShopLocation adds a store
func (s *Service) CreateShopLocation(ctx context.Context, req CreateShopLocationRequest) (*ShopLocationResponse, error) {
	l, err := info.NewShopLocation(req.Address, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveShopLocation(ctx, l); err != nil {
		return nil, err
	}
	resp := ToShopLocationResponse(l)
	return &resp, nil
}

// ListStates returns every state
func (s *Service) ListStates(ctx context.Context) ([]PlaceResponse, error) {
	states, err := s.repo.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlaceResponse, len(states))
	for i, st := range states {
		out[i] = PlaceResponse{ID: st.ID, Title: st.Title}
	}
	return out, nil
}

// ListCities returns the cities of a state
func (s *Service) ListCities(ctx context.Context, stateID uuid.UUID) ([]PlaceResponse, error) {
	cities, err := s.repo.ListCities(ctx, stateID)
	if err != nil {
		return nil, err
	}
	out := make([]PlaceResponse, len(cities))
	for i, c := range cities {
		out[i] = PlaceResponse{ID: c.ID, Title: c.Title}
	}
	return out, nil
}

// ListInquiryCategories returns the contact form categories
func (s *Service) ListInquiryCategories(ctx context.Context) ([]PlaceResponse, error) {
	categories, err := s.repo.ListInquiryCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlaceResponse, len(categories))
	for i, c := range categories {
		out[i] = PlaceResponse{ID: c.ID, Title: c.Title}
	}
	return out, nil
}

// SubmitContact stores a contact form submission
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	c, err := info.NewContactRequest(req.Name, req.Email, req.Subject, req.Message, req.Phone, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveContactRequest(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Contact request received", zap.String("contact_id", c.ID.String()), zap.String("subject", c.Subject))
	return &ContactResponse{ID: c.ID}, nil
}
