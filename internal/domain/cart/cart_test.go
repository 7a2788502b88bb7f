package cart

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestNewCart_Owner(t *testing.T) {
	userID := uuid.New()

	_, err := NewCart(Owner{})
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = NewCart(Owner{SessionID: strPtr("")})
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = NewCart(Owner{SessionID: strPtr(strings.Repeat("s", 65))})
	assert.ErrorIs(t, err, ErrSessionTooLong)

	c, err := NewCart(Owner{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, userID, *c.UserID)

	c, err = NewCart(Owner{SessionID: strPtr("abc")})
	require.NoError(t, err)
	assert.Nil(t, c.UserID)
}

func TestCart_IsStale(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	anon, err := NewCart(Owner{SessionID: strPtr("abc")})
	require.NoError(t, err)
	anon.UpdatedAt = now.Add(-48 * time.Hour)
	assert.True(t, anon.IsStale(now, 24*time.Hour))
	assert.False(t, anon.IsStale(now, 72*time.Hour))

	owned, err := NewCart(Owner{UserID: &userID})
	require.NoError(t, err)
	owned.UpdatedAt = now.Add(-48 * time.Hour)
	assert.False(t, owned.IsStale(now, 24*time.Hour))
}

func TestItem_Quantity(t *testing.T) {
	_, err := NewItem(uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	item, err := NewItem(uuid.New(), uuid.New(), 2)
	require.NoError(t, err)
	require.NoError(t, item.SetQuantity(5))
	assert.Equal(t, 5, item.Quantity)
	assert.Error(t, item.SetQuantity(-1))

	assert.Equal(t, 8, ItemCount([]Item{{Quantity: 5}, {Quantity: 3}}))
}
