// Package notification delivers user messages over external channels.
package notification

import (
	"context"

	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var _ messaging.Notifier = (*LogNotifier)(nil)

// LogNotifier writes every delivery to the log instead of calling a
// provider. It stands in for push, email and sms gateways.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(l *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: l.Named("notifier")}
}

func (n *LogNotifier) log(ctx context.Context) *zap.Logger {
	return logger.WithTraceContext(ctx, n.logger)
}

// Push logs a push notification
func (n *LogNotifier) Push(ctx context.Context, device messaging.UserDevice, payload messaging.PushPayload) error {
	n.log(ctx).Info("Push notification",
		zap.String("user_id", device.UserID.String()),
		zap.String("device_token", device.Token.String()),
		zap.String("title", payload.Title),
		zap.String("body", payload.Body),
		zap.Int("event_type", int(payload.EventType)),
		zap.String("event_data", payload.EventData),
	)
	return nil
}

// Email logs an email
func (n *LogNotifier) Email(ctx context.Context, to, subject, body string) error {
	n.log(ctx).Info("Email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

// SMS logs a text message
func (n *LogNotifier) SMS(ctx context.Context, phone, body string) error {
	n.log(ctx).Info("SMS",
		zap.String("phone", phone),
		zap.Int("body_length", len(body)),
	)
	return nil
}
