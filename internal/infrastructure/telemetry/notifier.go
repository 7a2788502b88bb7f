package telemetry

import (
	"context"

	"github.com/shop/backend/internal/domain/messaging"
)

// meteredNotifier counts successful deliveries per channel
type meteredNotifier struct {
	next    messaging.Notifier
	metrics *ShopMetrics
}

// InstrumentNotifier wraps next so every successful delivery is counted
func InstrumentNotifier(next messaging.Notifier, metrics *ShopMetrics) messaging.Notifier {
	if metrics == nil {
		return next
	}
	return &meteredNotifier{next: next, metrics: metrics}
}

func (n *meteredNotifier) record(ctx context.Context, channel string, err error) error {
	if err == nil {
		n.metrics.RecordMessageSent(ctx, channel)
	}
	return err
}

func (n *meteredNotifier) Push(ctx context.Context, device messaging.UserDevice, payload messaging.PushPayload) error {
	return n.record(ctx, "push", n.next.Push(ctx, device, payload))
}

func (n *meteredNotifier) Email(ctx context.Context, to, subject, body string) error {
	return n.record(ctx, "email", n.next.Email(ctx, to, subject, body))
}

func (n *meteredNotifier) SMS(ctx context.Context, phone, body string) error {
	return n.record(ctx, "sms", n.next.SMS(ctx, phone, body))
}
