package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

// asUser authenticates every request of the engine as userID
func asUser(userID uuid.UUID, staff bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTIsStaffKey, staff)
		c.Next()
	}
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(mw...)
	return r
}

func do(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("load product: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"insufficient balance", shared.ErrInsufficientBalance, http.StatusUnprocessableEntity, dto.ErrCodeInsufficientBalance},
		{"duplicate request", shared.ErrDuplicateRequest, http.StatusConflict, dto.ErrCodeDuplicateRequest},
		{"coupon rule", shared.NewDomainError("COUPON_EXPIRED", "Coupon has expired."), http.StatusUnprocessableEntity, "ERR_COUPON_EXPIRED"},
		{"invalid input code", shared.NewDomainError("INVALID_SESSION_ID", "Session id is too long"), http.StatusBadRequest, "ERR_INVALID_SESSION_ID"},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newEngine()
			r.GET("/err", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := do(r, http.MethodGet, "/err", "", middleware.RequestIDHeader, "req-7")
			assert.Equal(t, tt.status, w.Code)

			env := decode(t, w, nil)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, "req-7", env.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError_HidesInternalMessage(t *testing.T) {
	h := &BaseHandler{}
	r := newEngine()
	r.GET("/err", func(c *gin.Context) { h.HandleError(c, errors.New("pq: password authentication failed")) })

	w := do(r, http.MethodGet, "/err", "")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestBaseHandler_RequestHelpers(t *testing.T) {
	h := &BaseHandler{}
	handle := func(c *gin.Context) {
		if _, ok := h.currentUser(c); !ok {
			return
		}
		if _, ok := h.pathID(c, "id"); !ok {
			return
		}
		h.NoContent(c)
	}
	anonymous := newEngine()
	anonymous.GET("/items/:id", handle)
	authed := newEngine(asUser(uuid.New(), false))
	authed.GET("/items/:id", handle)

	w := do(anonymous, http.MethodGet, "/items/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(authed, http.MethodGet, "/items/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeBadRequest)

	w = do(authed, http.MethodGet, "/items/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOptionalUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, optionalUser(c))

	id := uuid.New()
	c.Set(middleware.JWTUserIDKey, id.String())
	got := optionalUser(c)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}
