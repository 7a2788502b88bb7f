package cms

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ImageLinker turns a storage key into a download URL
type ImageLinker interface {
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// Service manages offers, sliders and banners
type Service struct {
	offerRepo   cms.OfferRepository
	contentRepo cms.ContentRepository
	productRepo catalog.ProductRepository
	images      ImageLinker
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a new cms Service. images may be nil, in which case
// image keys are returned unsigned.
func NewService(
	offerRepo cms.OfferRepository,
	contentRepo cms.ContentRepository,
	productRepo catalog.ProductRepository,
	images ImageLinker,
	logger *zap.Logger,
) *Service {
	return &Service{
		offerRepo:   offerRepo,
		contentRepo: contentRepo,
		productRepo: productRepo,
		images:      images,
		now:         time.Now,
		logger:      logger,
	}
}

// CreateOffer creates an offer without items
func (s *Service) CreateOffer(ctx context.Context, req CreateOfferRequest) (*OfferResponse, error) {
	offer, err := cms.NewProductOffer(req.Title, req.ActiveFrom, req.ActiveUntil)
	if err != nil {
		return nil, err
	}
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}
	s.logger.Info("Offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.Time("active_from", offer.ActiveFrom),
		zap.Time("active_until", offer.ActiveUntil),
	)
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// AddOfferItem puts a product on an offer. A product is on one offer at most.
func (s *Service) AddOfferItem(ctx context.Context, offerID uuid.UUID, req AddOfferItemRequest) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	onOffer, err := s.offerRepo.ProductOnOffer(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if onOffer {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already on an offer")
	}
	if _, err := offer.AddItem(req.ProductID, req.Discount, req.Stock); err != nil {
		return nil, err
	}
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// GetOffer returns an offer with its items
func (s *Service) GetOffer(ctx context.Context, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// DeactivateOffer switches an offer off before its window ends
func (s *Service) DeactivateOffer(ctx context.Context, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	offer.Deactivate()
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		return nil, err
	}
	resp := ToOfferResponse(offer)
	return &resp, nil
}

// ListActiveOffers returns the offers running right now
func (s *Service) ListActiveOffers(ctx context.Context) ([]OfferResponse, error) {
	offers, err := s.offerRepo.FindRunning(ctx, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]OfferResponse, len(offers))
	for i := range offers {
		out[i] = ToOfferResponse(&offers[i])
	}
	return out, nil
}

// ExpireOffers switches off every active offer whose window closed before now
func (s *Service) ExpireOffers(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.offerRepo.DeactivateExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Expired offers deactivated", zap.Int64("count", n))
	}
	return n, nil
}

// ListSliders returns the active sliders, highest priority first
func (s *Service) ListSliders(ctx context.Context) ([]SliderResponse, error) {
	sliders, err := s.contentRepo.ListSliders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SliderResponse, len(sliders))
	for i, sl := range sliders {
		out[i] = SliderResponse{
			ID:       sl.ID,
			Title:    sl.Title,
			ImageURL: s.imageURL(ctx, sl.ImageKey),
			Link:     sl.Link,
			Priority: sl.Priority,
		}
	}
	return out, nil
}

// CreateSlider creates a slider
func (s *Service) CreateSlider(ctx context.Context, req CreateSliderRequest) (*SliderResponse, error) {
	sl, err := cms.NewSlider(req.Title, req.ImageKey, req.Link, req.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.contentRepo.SaveSlider(ctx, sl); err != nil {
		return nil, err
	}
	return &SliderResponse{
		ID:       sl.ID,
		Title:    sl.Title,
		ImageURL: s.imageURL(ctx, sl.ImageKey),
		Link:     sl.Link,
		Priority: sl.Priority,
	}, nil
}

// ListBanners returns the active banners, optionally of one holder
func (s *Service) ListBanners(ctx context.Context, holder *int) ([]BannerResponse, error) {
	var h *cms.BannerHolder
	if holder != nil {
		bh := cms.BannerHolder(*holder)
		if !bh.IsValid() {
			return nil, shared.NewDomainError("INVALID_HOLDER", "Unknown banner holder")
		}
		h = &bh
	}
	banners, err := s.contentRepo.ListBanners(ctx, h)
	if err != nil {
		return nil, err
	}
	out := make([]BannerResponse, len(banners))
	for i, b := range banners {
		out[i] = s.toBannerResponse(ctx, &b)
	}
	return out, nil
}

// CreateBanner creates a banner
func (s *Service) CreateBanner(ctx context.Context, req CreateBannerRequest) (*BannerResponse, error) {
	b, err := cms.NewBanner(req.Title, req.ImageKey, req.Link, cms.BannerHolder(req.Holder))
	if err != nil {
		return nil, err
	}
	if err := s.contentRepo.SaveBanner(ctx, b); err != nil {
		return nil, err
	}
	resp := s.toBannerResponse(ctx, b)
	return &resp, nil
}

func (s *Service) toBannerResponse(ctx context.Context, b *cms.Banner) BannerResponse {
	return BannerResponse{
		ID:       b.ID,
		Title:    b.Title,
		ImageURL: s.imageURL(ctx, b.ImageKey),
		Link:     b.Link,
		Holder:   int(b.Holder),
	}
}

func (s *Service) imageURL(ctx context.Context, key string) string {
	if key == "" || s.images == nil {
		return key
	}
	url, _, err := s.images.GenerateDownloadURL(ctx, key, time.Hour)
	if err != nil {
		s.logger.Warn("Failed to presign content image", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}
