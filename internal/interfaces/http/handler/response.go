package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// Swagger models for the dto.Response envelope. Handlers write dto.Response;
// these typed twins only exist so the generated docs show each payload.

// APIResponse is a success envelope carrying T
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ListResponse is a page of T with its pagination meta
type ListResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}

// SuccessResponse is returned by endpoints without a payload
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type CountData struct {
	Count int64 `json:"count" example:"3"`
}

// RemovedData reports whether a delete actually removed something
type RemovedData struct {
	Removed bool `json:"removed"`
}

// writePage answers 200 with one page of results. An empty page is sent as
// an empty list, never null.
func writePage[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}
