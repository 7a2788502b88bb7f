package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Rating is a 1..5 star score
type Rating int

const (
	RatingPoor      Rating = 1
	RatingAverage   Rating = 2
	RatingGood      Rating = 3
	RatingVeryGood  Rating = 4
	RatingExcellent Rating = 5
)

// RatingFromStars maps a star count onto a rating; out of range counts become excellent
func RatingFromStars(stars int) Rating {
	if stars < int(RatingPoor) || stars > int(RatingExcellent) {
		return RatingExcellent
	}
	return Rating(stars)
}

// Review is a customer's rating of a product
type Review struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	UserID     uuid.UUID
	Rating     Rating
	Text       string
	IsAccepted bool
}

// NewReview creates an accepted review
func NewReview(productID, userID uuid.UUID, stars int, text string) *Review {
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     RatingFromStars(stars),
		Text:       strings.TrimSpace(text),
		IsAccepted: true,
	}
}

// RatingSummary aggregates accepted reviews of a product
type RatingSummary struct {
	Count   int64
	Average decimal.Decimal
}

// Stars rounds the average to whole stars
func (s RatingSummary) Stars() int {
	return int(s.Average.Round(0).IntPart())
}
