package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
)

// ReviewService manages product reviews
type ReviewService struct {
	productRepo catalog.ProductRepository
	reviewRepo  catalog.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(productRepo catalog.ProductRepository, reviewRepo catalog.ReviewRepository) *ReviewService {
	return &ReviewService{productRepo: productRepo, reviewRepo: reviewRepo}
}

// CreateReview rates an active product. A user reviews a product once.
func (s *ReviewService) CreateReview(ctx context.Context, userID, productID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}
	exists, err := s.reviewRepo.ExistsForUser(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	review := catalog.NewReview(productID, userID, req.Rating, req.Text)
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}

// ListReviews returns the accepted reviews of a product, newest first
func (s *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[ReviewResponse], error) {
	reviews, total, err := s.reviewRepo.ListAccepted(ctx, productID, filter)
	if err != nil {
		return shared.Paginated[ReviewResponse]{}, err
	}
	items := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		items[i] = ToReviewResponse(&reviews[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// RatingSummary returns the review count and average rating of a product
func (s *ReviewService) RatingSummary(ctx context.Context, productID uuid.UUID) (RatingResponse, error) {
	summary, err := s.reviewRepo.Summary(ctx, productID)
	if err != nil {
		return RatingResponse{}, err
	}
	return toRatingResponse(summary), nil
}
