package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// MessageRepository persists user messages
type MessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserMessage, error)
	// ListInApp returns the user's in-app messages newest first
	ListInApp(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]UserMessage, int64, error)
	CountUnseen(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, message *UserMessage) error
	SaveBatch(ctx context.Context, messages []UserMessage) error
	MarkSeen(ctx context.Context, id uuid.UUID) error
}

// GroupRepository persists groups, memberships and broadcasts
type GroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Save(ctx context.Context, group *Group) error
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	MemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
	FindMessage(ctx context.Context, id uuid.UUID) (*GroupMessage, error)
	SaveMessage(ctx context.Context, message *GroupMessage) error
}

// DeviceRepository persists push targets
type DeviceRepository interface {
	FindByToken(ctx context.Context, token uuid.UUID) (*UserDevice, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]UserDevice, error)
	Save(ctx context.Context, device *UserDevice) error
}
