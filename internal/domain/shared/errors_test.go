package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	productMissing := NewDomainError("NOT_FOUND", "Product not found")

	assert.True(t, errors.Is(productMissing, ErrNotFound))
	assert.False(t, errors.Is(productMissing, ErrInvalidState))

	wrapped := fmt.Errorf("load product: %w", productMissing)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Product not found", de.Message)
}

func TestNewPaginated(t *testing.T) {
	page := NewPaginated([]int{1, 2}, 5, 2, 2)

	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext())
	assert.True(t, page.HasPrevious())

	empty := NewPaginated([]int{}, 0, 1, 20)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrevious())
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 20}.Offset())
}
