package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"go.uber.org/zap"
)

var (
	inAppAndPush = []messaging.SendType{messaging.SendTypeInApp, messaging.SendTypeNotification}

	_ shared.EventHandler = (*OrderPlacedHandler)(nil)
	_ shared.EventHandler = (*OrderStatusChangedHandler)(nil)
	_ shared.EventHandler = (*TransferCompletedHandler)(nil)
	_ shared.EventHandler = (*GroupMessageHandler)(nil)
)

func eventData(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func unexpected(expected string, event shared.DomainEvent) error {
	return fmt.Errorf("unexpected event type: expected %s, got %s", expected, event.EventType())
}

// OrderPlacedHandler tells the buyer their order was received
type OrderPlacedHandler struct {
	service *Service
}

// NewOrderPlacedHandler creates a new OrderPlacedHandler
func NewOrderPlacedHandler(service *Service) *OrderPlacedHandler {
	return &OrderPlacedHandler{service: service}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		return unexpected(order.EventTypeOrderPlaced, event)
	}
	_, err := h.service.SendMessage(ctx, e.UserID, inAppAndPush,
		"Order received",
		fmt.Sprintf("Your order of %d items totalling %s has been placed.", e.ItemCount, e.TotalPrice.StringFixed(2)),
		messaging.EventOrderPlaced,
		eventData(map[string]string{"order_id": e.OrderID.String()}),
	)
	return err
}

// OrderStatusChangedHandler tells the buyer their order moved on
type OrderStatusChangedHandler struct {
	service *Service
}

// NewOrderStatusChangedHandler creates a new OrderStatusChangedHandler
func NewOrderStatusChangedHandler(service *Service) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{service: service}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderStatusChangedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged}
}

// Handle processes an OrderStatusChangedEvent
func (h *OrderStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*order.OrderStatusChangedEvent)
	if !ok {
		return unexpected(order.EventTypeOrderStatusChanged, event)
	}
	_, err := h.service.SendMessage(ctx, e.UserID, inAppAndPush,
		"Order updated",
		fmt.Sprintf("Your order is now %s.", e.To.String()),
		messaging.EventOrderStatusChanged,
		eventData(map[string]string{"order_id": e.OrderID.String(), "status": e.To.String()}),
	)
	return err
}

// TransferCompletedHandler tells both parties of a wallet transfer
type TransferCompletedHandler struct {
	service *Service
	users   account.UserRepository
	logger  *zap.Logger
}

// NewTransferCompletedHandler creates a new TransferCompletedHandler
func NewTransferCompletedHandler(service *Service, users account.UserRepository, logger *zap.Logger) *TransferCompletedHandler {
	return &TransferCompletedHandler{service: service, users: users, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *TransferCompletedHandler) EventTypes() []string {
	return []string{wallet.EventTypeTransferCompleted}
}

// Handle processes a TransferCompletedEvent
func (h *TransferCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*wallet.TransferCompletedEvent)
	if !ok {
		return unexpected(wallet.EventTypeTransferCompleted, event)
	}
	amount := e.Amount.StringFixed(2)
	data := eventData(map[string]string{
		"source_wallet_id":      e.SourceWalletID.String(),
		"destination_wallet_id": e.DestinationWalletID.String(),
		"amount":                amount,
	})

	notes := []struct {
		walletID uuid.UUID
		subject  string
		body     string
	}{
		{e.SourceWalletID, "Transfer sent", fmt.Sprintf("%s was sent from your wallet.", amount)},
		{e.DestinationWalletID, "Transfer received", fmt.Sprintf("%s was added to your wallet.", amount)},
	}
	recipients := make([]uuid.UUID, len(notes))
	for i, n := range notes {
		user, err := h.users.FindByWalletID(ctx, n.walletID)
		if errors.Is(err, shared.ErrNotFound) {
			// wallets without an owner, such as the shop's own, get no message
			h.logger.Debug("No owner for wallet", zap.String("wallet_id", n.walletID.String()))
			continue
		}
		if err != nil {
			return fmt.Errorf("resolve owner of wallet %s: %w", n.walletID, err)
		}
		recipients[i] = user.ID
	}
	for i, n := range notes {
		if recipients[i] == uuid.Nil {
			continue
		}
		if _, err := h.service.SendMessage(ctx, recipients[i], inAppAndPush, n.subject, n.body, messaging.EventWalletTransfer, data); err != nil {
			return err
		}
	}
	return nil
}

// GroupMessageHandler fans a broadcast out to the group members
type GroupMessageHandler struct {
	service *Service
}

// NewGroupMessageHandler creates a new GroupMessageHandler
func NewGroupMessageHandler(service *Service) *GroupMessageHandler {
	return &GroupMessageHandler{service: service}
}

// EventTypes returns the event types this handler is interested in
func (h *GroupMessageHandler) EventTypes() []string {
	return []string{messaging.EventTypeGroupMessageCreated}
}

// Handle processes a GroupMessageCreatedEvent
func (h *GroupMessageHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*messaging.GroupMessageCreatedEvent)
	if !ok {
		return unexpected(messaging.EventTypeGroupMessageCreated, event)
	}
	_, err := h.service.FanOut(ctx, e.GroupMessageID)
	return err
}
