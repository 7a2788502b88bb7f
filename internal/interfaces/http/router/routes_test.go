package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shopEngine registers every route with handlers that have no services.
// Requests in these tests stop in middleware or request validation.
func shopEngine(t *testing.T, limit gin.HandlerFunc) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-at-least-32-chars",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "shop-test",
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := NewRouter(engine)
	RegisterShopRoutes(r, shopHandlers(), Access{
		Required:        middleware.JWTAuthMiddleware(jwtService, nil),
		Optional:        middleware.OptionalJWTAuthMiddleware(jwtService, nil),
		CredentialLimit: limit,
	})
	r.Setup()
	return engine, jwtService
}

func shopHandlers() Handlers {
	return Handlers{
		Auth:      handler.NewAuthHandler(nil),
		Account:   handler.NewAccountHandler(nil, nil),
		Catalog:   handler.NewCatalogHandler(nil, nil, nil),
		Wishlist:  handler.NewWishlistHandler(nil),
		Shipment:  handler.NewShipmentHandler(nil),
		CMS:       handler.NewCMSHandler(nil),
		Promotion: handler.NewPromotionHandler(nil),
		Cart:      handler.NewCartHandler(nil),
		Order:     handler.NewOrderHandler(nil),
		Wallet:    handler.NewWalletHandler(nil),
		Messaging: handler.NewMessagingHandler(nil),
		Blog:      handler.NewBlogHandler(nil),
		Info:      handler.NewInfoHandler(nil),
		Outbox:    handler.NewOutboxHandler(nil),
		System:    handler.NewSystemHandler("shop", "test", nil),
	}
}

func bearerFor(t *testing.T, jwtService *auth.JWTService, staff bool) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:  uuid.New(),
		Email:   "kim@example.com",
		IsStaff: staff,
	})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func call(engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterShopRoutes_Table(t *testing.T) {
	engine, _ := shopEngine(t, nil)

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/token",
		"POST /api/v1/auth/logout",
		"GET /api/v1/account/addresses/default",
		"POST /api/v1/users/:id/deactivate",
		"GET /api/v1/catalog/products/:id/related",
		"PUT /api/v1/catalog/products/:id/stock",
		"POST /api/v1/wishlist/:product_id",
		"GET /api/v1/shipments/types",
		"POST /api/v1/cms/offers/:id/items",
		"GET /api/v1/coupons/code/:code",
		"POST /api/v1/coupons/apply",
		"DELETE /api/v1/cart/items/:product_id",
		"POST /api/v1/orders/:id/cancel",
		"POST /api/v1/wallet/transfer",
		"POST /api/v1/messages/devices/sync",
		"GET /api/v1/blog/bookmarks",
		"PUT /api/v1/info/about",
		"GET /api/v1/info/states/:id/cities",
		"PUT /api/v1/admin/orders/:id/status",
		"POST /api/v1/admin/wallets/:id/withdraw",
		"POST /api/v1/admin/groups/:id/messages",
		"POST /api/v1/admin/blog/comments/:id/accept",
		"POST /api/v1/admin/outbox/dead/retry-all",
		"GET /api/v1/system/ping",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRegisterShopRoutes_Access(t *testing.T) {
	engine, jwtService := shopEngine(t, nil)
	customer := bearerFor(t, jwtService, false)
	staff := bearerFor(t, jwtService, true)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"public ping", http.MethodGet, "/api/v1/system/ping", "", http.StatusOK},
		{"orders need a token", http.MethodGet, "/api/v1/orders", "", http.StatusUnauthorized},
		{"wallet needs a token", http.MethodPost, "/api/v1/wallet/transfer", "", http.StatusUnauthorized},
		{"customers are not staff", http.MethodPut, "/api/v1/admin/orders/x/status", customer, http.StatusForbidden},
		{"staff passes to validation", http.MethodPut, "/api/v1/admin/orders/x/status", staff, http.StatusBadRequest},
		{"catalog writes are staff only", http.MethodPost, "/api/v1/catalog/products", customer, http.StatusForbidden},
		{"info publishing is staff only", http.MethodPut, "/api/v1/info/about", "", http.StatusUnauthorized},
		{"user management is staff only", http.MethodPost, "/api/v1/users/x/deactivate", customer, http.StatusForbidden},
		{"anonymous cart reaches validation", http.MethodPost, "/api/v1/cart/items", "", http.StatusBadRequest},
		{"invalid token on cart stays anonymous", http.MethodPost, "/api/v1/cart/items", "Bearer junk", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(engine, tt.method, tt.path, tt.token, "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	t.Run("anonymous cart gets a session", func(t *testing.T) {
		w := call(engine, http.MethodPost, "/api/v1/cart/items", "", "{}")
		assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))
	})
}

func TestRegisterShopRoutes_CredentialLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)
	engine, _ := shopEngine(t, middleware.AuthRateLimit(limiter))

	w := call(engine, http.MethodPost, "/api/v1/auth/token", "", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(engine, http.MethodPost, "/api/v1/auth/token", "", "{}")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = call(engine, http.MethodGet, "/api/v1/system/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
