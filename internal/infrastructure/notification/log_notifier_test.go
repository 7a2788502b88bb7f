package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))
	ctx := context.Background()

	device := messaging.UserDevice{ID: uuid.New(), UserID: uuid.New(), Token: uuid.New()}
	require.NoError(t, n.Push(ctx, device, messaging.PushPayload{Title: "Order received", Body: "Thanks", EventType: messaging.EventOrderPlaced}))
	require.NoError(t, n.Email(ctx, "ana@example.com", "Hello", "Body"))
	require.NoError(t, n.SMS(ctx, "+15550100", "Code 1234"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "Push notification", entries[0].Message)
	assert.Equal(t, "Order received", entries[0].ContextMap()["title"])
	assert.Equal(t, device.Token.String(), entries[0].ContextMap()["device_token"])
	assert.Equal(t, "ana@example.com", entries[1].ContextMap()["to"])
	assert.Equal(t, "+15550100", entries[2].ContextMap()["phone"])
	assert.Equal(t, "notifier", entries[2].LoggerName)
}
