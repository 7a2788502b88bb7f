package messaging

import "context"

// Notifier delivers a message over external channels
type Notifier interface {
	Push(ctx context.Context, device UserDevice, payload PushPayload) error
	Email(ctx context.Context, to, subject, body string) error
	SMS(ctx context.Context, phone, body string) error
}
