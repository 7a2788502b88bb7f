package dto

import (
	"net/http"
	"testing"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(shared.ErrNotFound.Code))
	assert.Equal(t, ErrCodeDuplicateRequest, NormalizeErrorCode(shared.ErrDuplicateRequest.Code))
	assert.Equal(t, "ERR_COUPON_EXPIRED", NormalizeErrorCode("COUPON_EXPIRED"))
	assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode(ErrCodeForbidden))
	assert.Equal(t, ErrCodeInternal, NormalizeErrorCode(""))
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.ErrNotFound.Code, http.StatusNotFound},
		{shared.ErrAlreadyExists.Code, http.StatusConflict},
		{shared.ErrConcurrencyConflict.Code, http.StatusConflict},
		{shared.ErrDuplicateRequest.Code, http.StatusConflict},
		{shared.ErrUnauthorized.Code, http.StatusUnauthorized},
		{shared.ErrForbidden.Code, http.StatusForbidden},
		{shared.ErrInvalidInput.Code, http.StatusBadRequest},
		{shared.ErrInvalidState.Code, http.StatusUnprocessableEntity},
		{shared.ErrInsufficientStock.Code, http.StatusUnprocessableEntity},
		{shared.ErrInsufficientBalance.Code, http.StatusUnprocessableEntity},
		{"INVALID_SESSION_ID", http.StatusBadRequest},
		{"COUPON_EXPIRED", http.StatusUnprocessableEntity},
		{"EMPTY_CART", http.StatusUnprocessableEntity},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
