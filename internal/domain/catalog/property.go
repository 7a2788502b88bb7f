package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// MaxPropertyLength bounds property titles and values
const MaxPropertyLength = 100

// Property is a product attribute such as "Color: Red". A product holds a
// title and value pair at most once.
type Property struct {
	shared.BaseEntity
	ProductID uuid.UUID
	Title     string
	Value     string
	Priority  int
	IsActive  bool
}

// NewProperty creates an active property
func NewProperty(productID uuid.UUID, title, value string, priority int) (*Property, error) {
	p := &Property{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Title:      strings.TrimSpace(title),
		Value:      strings.TrimSpace(value),
		Priority:   priority,
		IsActive:   true,
	}
	for field, v := range map[string]string{"title": p.Title, "value": p.Value} {
		if v == "" {
			return nil, shared.NewDomainError("INVALID_PROPERTY", "Property "+field+" is required")
		}
		if utf8.RuneCountInString(v) > MaxPropertyLength {
			return nil, shared.NewDomainError("INVALID_PROPERTY", "Property "+field+" cannot exceed 100 characters")
		}
	}
	return p, nil
}

// PropertyGroup holds the values offered under one property title
type PropertyGroup struct {
	Title  string
	Values []Property
}

// GroupProperties groups active properties by title. Groups and values
// keep the order of props.
func GroupProperties(props []Property) []PropertyGroup {
	var groups []PropertyGroup
	index := make(map[string]int)
	for _, p := range props {
		if !p.IsActive {
			continue
		}
		i, ok := index[p.Title]
		if !ok {
			i = len(groups)
			index[p.Title] = i
			groups = append(groups, PropertyGroup{Title: p.Title})
		}
		groups[i].Values = append(groups[i].Values, p)
	}
	return groups
}
