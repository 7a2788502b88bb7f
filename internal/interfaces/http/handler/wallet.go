package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/wallet"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// WalletHandler serves wallet balances and transfers
type WalletHandler struct {
	BaseHandler
	walletService *wallet.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetBalance godoc
// @ID           getWalletBalance
// @Summary      Get the caller's wallet balance
// @Tags         wallet
// @Produce      json
// @Success      200 {object} APIResponse[wallet.BalanceResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wallet [get]
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// ListTransactions godoc
// @ID           listWalletTransactions
// @Summary      List the caller's wallet transactions
// @Description  Newest first
// @Tags         wallet
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20) maximum(100)
// @Success      200 {object} ListResponse[wallet.TransactionResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wallet/transactions [get]
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	txs, err := h.walletService.ListTransactions(c.Request.Context(), userID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writePage(c, txs)
}

// Transfer godoc
// @ID           transferWallet
// @Summary      Transfer money to another wallet
// @Description  Set exactly one of to_user_id or to_wallet_id. Nothing is persisted when the balance is insufficient.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body wallet.TransferRequest true "Transfer"
// @Success      200 {object} APIResponse[wallet.TransferResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /wallet/transfer [post]
func (h *WalletHandler) Transfer(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req wallet.TransferRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.walletService.Transfer(c.Request.Context(), userID, middleware.IdempotencyKey(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Deposit godoc
// @ID           depositWallet
// @Summary      Credit a wallet
// @Tags         wallet-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Wallet ID" format(uuid)
// @Param        request body wallet.AdjustRequest true "Amount"
// @Success      200 {object} APIResponse[wallet.BalanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/wallets/{id}/deposit [post]
func (h *WalletHandler) Deposit(c *gin.Context) {
	h.adjust(c, h.walletService.Deposit)
}

// Withdraw godoc
// @ID           withdrawWallet
// @Summary      Debit a wallet
// @Tags         wallet-admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Wallet ID" format(uuid)
// @Param        request body wallet.AdjustRequest true "Amount"
// @Success      200 {object} APIResponse[wallet.BalanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/wallets/{id}/withdraw [post]
func (h *WalletHandler) Withdraw(c *gin.Context) {
	h.adjust(c, h.walletService.Withdraw)
}

func (h *WalletHandler) adjust(c *gin.Context, apply func(ctx context.Context, id uuid.UUID, req wallet.AdjustRequest) (*wallet.BalanceResponse, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req wallet.AdjustRequest
	if !h.bindJSON(c, &req) {
		return
	}
	balance, err := apply(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}
