package dto

import (
	"net/http"
	"strings"
)

// API error codes are domain error codes with an ERR_ prefix. Codes raised
// only by the HTTP layer have no domain counterpart.
const errCodePrefix = "ERR_"

const (
	ErrCodeInternal            = "ERR_INTERNAL"
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON         = "ERR_INVALID_JSON"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeRequestTooLarge     = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited         = "ERR_RATE_LIMITED"
	ErrCodeUnauthorized        = "ERR_UNAUTHORIZED"
	ErrCodeForbidden           = "ERR_FORBIDDEN"
	ErrCodeTokenExpired        = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid        = "ERR_TOKEN_INVALID"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeDuplicateRequest    = "ERR_DUPLICATE_REQUEST"
	ErrCodeInvalidInput        = "ERR_INVALID_INPUT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock   = "ERR_INSUFFICIENT_STOCK"
	ErrCodeInsufficientBalance = "ERR_INSUFFICIENT_BALANCE"
)

var statusByCode = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeInvalidJSON:         http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeRequestTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:         http.StatusTooManyRequests,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeTokenExpired:        http.StatusUnauthorized,
	ErrCodeTokenInvalid:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
}

// NormalizeErrorCode turns a domain code such as COUPON_EXPIRED into its API
// form ERR_COUPON_EXPIRED. Codes already carrying the prefix are unchanged.
func NormalizeErrorCode(code string) string {
	switch {
	case code == "":
		return ErrCodeInternal
	case strings.HasPrefix(code, errCodePrefix):
		return code
	default:
		return errCodePrefix + code
	}
}

// GetHTTPStatus maps a domain or API code onto a status. Unlisted INVALID_*
// codes are client input errors and every other unlisted code is a broken
// business rule.
func GetHTTPStatus(code string) int {
	code = NormalizeErrorCode(code)
	if status, ok := statusByCode[code]; ok {
		return status
	}
	if strings.HasPrefix(code, errCodePrefix+"INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
