package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	accountapp "github.com/shop/backend/internal/application/account"
	cartapp "github.com/shop/backend/internal/application/cart"
	shipmentapp "github.com/shop/backend/internal/application/shipment"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedProduct(t *testing.T, db *gorm.DB, title string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, "", decimal.NewFromInt(price), stock)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func newCartHandler(db *gorm.DB) *CartHandler {
	return NewCartHandler(cartapp.NewService(
		persistence.NewGormCartRepository(db),
		persistence.NewGormProductRepository(db),
		persistence.NewGormDiscountRepository(db),
		persistence.NewGormOfferRepository(db),
		persistence.NewGormCouponRepository(db),
		zap.NewNop(),
	))
}

func TestShipmentHandler(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	h := NewShipmentHandler(shipmentapp.NewService(persistence.NewGormShipmentTypeRepository(db)))
	r := newEngine()
	r.GET("/shipments/types", h.ListTypes)
	r.GET("/shipments/types/:id", h.GetType)
	r.POST("/shipments/types", h.CreateType)

	w := do(r, http.MethodPost, "/shipments/types", `{"title":"Express","price":"100","vat":"9"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created shipmentapp.ShipmentTypeResponse
	decode(t, w, &created)
	assert.True(t, decimal.NewFromInt(109).Equal(created.TotalPrice))

	w = do(r, http.MethodPost, "/shipments/types", `{"title":"Post","price":"40"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/shipments/types", "")
	require.Equal(t, http.StatusOK, w.Code)
	var types []shipmentapp.ShipmentTypeResponse
	decode(t, w, &types)
	require.Len(t, types, 2)
	assert.Equal(t, "Post", types[0].Title)

	w = do(r, http.MethodGet, "/shipments/types/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/shipments/types/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/shipments/types", `{"price":"10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_AnonymousSession(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	kettle := seedProduct(t, db, "Kettle", 120, 3)
	h := newCartHandler(db)

	r := newEngine(middleware.CartSession())
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddItem)
	r.GET("/cart/items/:product_id", h.GetQuantity)
	r.DELETE("/cart/items/:product_id", h.RemoveItem)
	r.GET("/cart/count", h.Count)
	r.DELETE("/cart", h.Clear)

	w := do(r, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)

	body := `{"product_id":"` + kettle.ID.String() + `","quantity":2}`
	w = do(r, http.MethodPost, "/cart/items", body, middleware.SessionHeader, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, session, w.Header().Get(middleware.SessionHeader))
	var resp cartapp.CartResponse
	decode(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.ItemCount)
	assert.True(t, decimal.NewFromInt(240).Equal(resp.Totals.TotalPrice))

	w = do(r, http.MethodGet, "/cart/items/"+kettle.ID.String(), "", middleware.SessionHeader, session)
	var qty QuantityData
	decode(t, w, &qty)
	assert.Equal(t, 2, qty.Quantity)

	// another session sees its own empty cart
	w = do(r, http.MethodGet, "/cart/count", "", middleware.SessionHeader, uuid.NewString())
	var count CountData
	decode(t, w, &count)
	assert.Zero(t, count.Count)

	w = do(r, http.MethodDelete, "/cart/items/"+kettle.ID.String(), "", middleware.SessionHeader, session)
	var removed RemovedData
	decode(t, w, &removed)
	assert.True(t, removed.Removed)

	w = do(r, http.MethodDelete, "/cart", "", middleware.SessionHeader, session)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCartHandler_AddItemRejections(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	soldOut := seedProduct(t, db, "Sold out", 50, 0)
	h := newCartHandler(db)

	r := newEngine(middleware.CartSession())
	r.POST("/cart/items", h.AddItem)
	session := uuid.NewString()

	t.Run("out of stock is not added", func(t *testing.T) {
		w := do(r, http.MethodPost, "/cart/items", `{"product_id":"`+soldOut.ID.String()+`","quantity":1}`,
			middleware.SessionHeader, session)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp cartapp.CartResponse
		decode(t, w, &resp)
		assert.Empty(t, resp.Items)
	})

	t.Run("unknown product", func(t *testing.T) {
		w := do(r, http.MethodPost, "/cart/items", `{"product_id":"`+uuid.NewString()+`","quantity":1}`,
			middleware.SessionHeader, session)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero quantity", func(t *testing.T) {
		w := do(r, http.MethodPost, "/cart/items", `{"product_id":"`+soldOut.ID.String()+`","quantity":0}`,
			middleware.SessionHeader, session)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized session id", func(t *testing.T) {
		long := uuid.NewString() + uuid.NewString()
		w := do(r, http.MethodPost, "/cart/items", `{"product_id":"`+soldOut.ID.String()+`","quantity":1}`,
			middleware.SessionHeader, long)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_SESSION_ID")
	})
}

func TestAccountHandler_Addresses(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	h := NewAccountHandler(nil, accountapp.NewAddressService(persistence.NewGormAddressRepository(db)))
	userID := uuid.New()

	r := newEngine(asUser(userID, false))
	r.GET("/account/addresses", h.ListAddresses)
	r.POST("/account/addresses", h.CreateAddress)
	r.GET("/account/addresses/default", h.GetDefaultAddress)
	r.DELETE("/account/addresses/:id", h.DeleteAddress)

	w := do(r, http.MethodGet, "/account/addresses/default", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/account/addresses", `{"title":"Home","city":"Tehran","street":"Valiasr 12"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var home accountapp.AddressResponse
	decode(t, w, &home)

	w = do(r, http.MethodPost, "/account/addresses", `{"title":"No street","city":"Tehran"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/account/addresses", "")
	var list []accountapp.AddressResponse
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, home.ID, list[0].ID)

	other := newEngine(asUser(uuid.New(), false))
	other.DELETE("/account/addresses/:id", h.DeleteAddress)
	w = do(other, http.MethodDelete, "/account/addresses/"+home.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/account/addresses/"+home.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	anonymous := newEngine()
	anonymous.GET("/account/addresses", h.ListAddresses)
	w = do(anonymous, http.MethodGet, "/account/addresses", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
