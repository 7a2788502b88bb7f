package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ShopMetrics holds the business instruments recorded by application services
type ShopMetrics struct {
	ordersPlaced     *Counter
	orderAmount      *Histogram
	orderCancels     *Counter
	couponRejections *Counter
	walletTransfers  *Counter
	transferAmount   *Histogram
	messagesSent     *Counter
	eventsHandled    *Counter
}

// NewShopMetrics creates every business instrument on meter
func NewShopMetrics(meter metric.Meter) (*ShopMetrics, error) {
	var (
		m   ShopMetrics
		err error
	)
	if m.ordersPlaced, err = NewCounter(meter, "shop.orders.placed", "Orders placed", "{order}"); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewHistogram(meter, "shop.orders.amount", "Order total price", "1",
		10, 50, 100, 500, 1000, 5000, 10000); err != nil {
		return nil, err
	}
	if m.orderCancels, err = NewCounter(meter, "shop.orders.canceled", "Orders canceled by customers", "{order}"); err != nil {
		return nil, err
	}
	if m.couponRejections, err = NewCounter(meter, "shop.coupons.rejected", "Coupon validations that failed", "{coupon}"); err != nil {
		return nil, err
	}
	if m.walletTransfers, err = NewCounter(meter, "shop.wallet.transfers", "Completed wallet transfers", "{transfer}"); err != nil {
		return nil, err
	}
	if m.transferAmount, err = NewHistogram(meter, "shop.wallet.transfer.amount", "Wallet transfer amount", "1",
		1, 10, 50, 100, 500, 1000); err != nil {
		return nil, err
	}
	if m.messagesSent, err = NewCounter(meter, "shop.messages.sent", "User messages delivered per channel", "{message}"); err != nil {
		return nil, err
	}
	if m.eventsHandled, err = NewCounter(meter, "shop.events.handled", "Event deliveries per handler and outcome", "{event}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// NopShopMetrics returns metrics backed by the no-op meter
func NopShopMetrics() *ShopMetrics {
	m, _ := NewShopMetrics(noopMeter())
	return m
}

// RecordOrderPlaced counts an order and records its total
func (m *ShopMetrics) RecordOrderPlaced(ctx context.Context, total float64, couponDropped bool) {
	attrs := attribute.Bool("coupon_dropped", couponDropped)
	m.ordersPlaced.Inc(ctx, attrs)
	m.orderAmount.Record(ctx, total, attrs)
}

// RecordOrderCanceled counts a customer cancellation
func (m *ShopMetrics) RecordOrderCanceled(ctx context.Context) {
	m.orderCancels.Inc(ctx)
}

// RecordCouponRejected counts a failed coupon validation by error code
func (m *ShopMetrics) RecordCouponRejected(ctx context.Context, code string) {
	m.couponRejections.Inc(ctx, attribute.String("code", code))
}

// RecordWalletTransfer counts a completed transfer and records its amount
func (m *ShopMetrics) RecordWalletTransfer(ctx context.Context, amount float64) {
	m.walletTransfers.Inc(ctx)
	m.transferAmount.Record(ctx, amount)
}

// RecordMessageSent counts a delivery on channel
func (m *ShopMetrics) RecordMessageSent(ctx context.Context, channel string) {
	m.messagesSent.Inc(ctx, attribute.String("channel", channel))
}

func (m *ShopMetrics) RecordEventHandled(ctx context.Context, handler, eventType, outcome string) {
	m.eventsHandled.Inc(ctx,
		attribute.String("handler", handler),
		attribute.String("event_type", eventType),
		attribute.String("outcome", outcome),
	)
}
