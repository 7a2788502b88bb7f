package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// Category groups products in a tree
type Category struct {
	shared.BaseEntity
	Title    string
	Slug     string
	ParentID *uuid.UUID
	Priority int
	IsActive bool
}

// NewCategory creates an active category, optionally below a parent
func NewCategory(title string, parentID *uuid.UUID, priority int) (*Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		Slug:       shared.Slugify(title),
		ParentID:   parentID,
		Priority:   priority,
		IsActive:   true,
	}, nil
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Descendants walks the category tree below root (breadth first).
// The root itself is included when includeSelf is set.
func Descendants(root uuid.UUID, all []Category, includeSelf bool) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	var out []uuid.UUID
	if includeSelf {
		out = append(out, root)
	}
	visited := map[uuid.UUID]bool{root: true}
	queue := []uuid.UUID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// Brand is a product manufacturer or label
type Brand struct {
	shared.BaseEntity
	Title    string
	Slug     string
	IsActive bool
}

// NewBrand creates an active brand
func NewBrand(title string) (*Brand, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Brand title cannot be empty")
	}
	return &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Title:      strings.TrimSpace(title),
		Slug:       shared.Slugify(title),
		IsActive:   true,
	}, nil
}
