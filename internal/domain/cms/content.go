package cms

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// BannerHolder is the page slot a banner is rendered in
type BannerHolder int

const (
	BannerHolderTop    BannerHolder = 0
	BannerHolderBottom BannerHolder = 1
)

// IsValid checks if the holder is known
func (h BannerHolder) IsValid() bool {
	return h == BannerHolderTop || h == BannerHolderBottom
}

// Slider is a home page carousel entry
type Slider struct {
	shared.BaseEntity
	Title    string
	ImageKey string
	Link     string
	Priority int
	IsActive bool
}

// NewSlider creates an active slider
func NewSlider(title, imageKey, link string, priority int) (*Slider, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Slider title cannot be empty")
	}
	return &Slider{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		ImageKey:   imageKey,
		Link:       link,
		Priority:   priority,
		IsActive:   true,
	}, nil
}

// Banner is a promotional image in a fixed page slot
type Banner struct {
	shared.BaseEntity
	Title    string
	ImageKey string
	Link     string
	Holder   BannerHolder
	IsActive bool
}

// NewBanner creates an active banner
func NewBanner(title, imageKey, link string, holder BannerHolder) (*Banner, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Banner title cannot be empty")
	}
	if !holder.IsValid() {
		return nil, shared.NewDomainError("INVALID_HOLDER", "Unknown banner holder")
	}
	return &Banner{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		ImageKey:   imageKey,
		Link:       link,
		Holder:     holder,
		IsActive:   true,
	}, nil
}
