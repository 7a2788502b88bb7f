package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength is the maximum length of a product description
	MaxDescriptionLength = 3000
	// MaxTitleLength is the maximum length of a product title
	MaxTitleLength = 200
)

// MaxProductPrice is the highest price a product may carry
var MaxProductPrice = decimal.NewFromInt(999_999_999)

// Product is a sellable catalog item and the aggregate root for stock changes
type Product struct {
	shared.BaseAggregateRoot
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Tags        []string
	VariantIDs  []uuid.UUID
	ViewCount   int64
	IsActive    bool
	Images      []ProductImage
}

// ProductImage is an image stored in object storage
type ProductImage struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	StorageKey string
	Priority   int
	CreatedAt  time.Time
}

// NewProduct creates a new active product
func NewProduct(title, description string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Slug:              shared.Slugify(title),
		Description:       description,
		Price:             price,
		Stock:             stock,
		Tags:              []string{},
		VariantIDs:        []uuid.UUID{},
		IsActive:          true,
	}
	return p, nil
}

// Update changes the descriptive fields and price of the product
func (p *Product) Update(title, description string, price decimal.Decimal) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Slug = shared.Slugify(title)
	p.Description = description
	p.Price = price
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// SetBrand assigns the product to a brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.Touch()
}

// SetTags replaces the product tags, dropping blanks and duplicates
func (p *Product) SetTags(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	p.Tags = out
	p.Touch()
}

// SetVariants links related products, ignoring a self reference
func (p *Product) SetVariants(ids []uuid.UUID) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != p.ID {
			out = append(out, id)
		}
	}
	p.VariantIDs = out
	p.Touch()
}

// SetStock overwrites the stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	p.IncrementVersion()
	return nil
}

// DecreaseStock removes sold units from stock
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.Stock {
		return shared.ErrInsufficientStock
	}
	p.Stock -= quantity
	p.Touch()
	p.IncrementVersion()
	return nil
}

// AvailableQuantity caps a requested quantity by the stock on hand
func (p *Product) AvailableQuantity(requested int) int {
	if requested <= 0 || p.Stock <= 0 {
		return 0
	}
	if requested > p.Stock {
		return p.Stock
	}
	return requested
}

// InStock reports whether at least one unit can be sold
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Activate makes the product visible in the shop
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate hides the product from the shop
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// AddImage attaches an uploaded image to the product
func (p *Product) AddImage(storageKey string, priority int) (*ProductImage, error) {
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image storage key is required")
	}
	img := ProductImage{
		ID:         uuid.New(),
		ProductID:  p.ID,
		StorageKey: storageKey,
		Priority:   priority,
		CreatedAt:  time.Now(),
	}
	p.Images = append(p.Images, img)
	p.Touch()
	return &p.Images[len(p.Images)-1], nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 3000 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if price.GreaterThan(MaxProductPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot exceed 999999999")
	}
	return nil
}
