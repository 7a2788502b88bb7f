package messaging

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/messaging"
	domainshared "github.com/shop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service stores user messages and hands them to the notifier
type Service struct {
	messages messaging.MessageRepository
	groups   messaging.GroupRepository
	devices  messaging.DeviceRepository
	users    account.UserRepository
	notifier messaging.Notifier
	txScope  shared.TransactionScope
	logger   *zap.Logger
}

// NewService creates a new messaging Service
func NewService(
	messages messaging.MessageRepository,
	groups messaging.GroupRepository,
	devices messaging.DeviceRepository,
	users account.UserRepository,
	notifier messaging.Notifier,
	txScope shared.TransactionScope,
	logger *zap.Logger,
) *Service {
	return &Service{
		messages: messages,
		groups:   groups,
		devices:  devices,
		users:    users,
		notifier: notifier,
		txScope:  txScope,
		logger:   logger,
	}
}

// SendMessage stores a message for userID and dispatches it over the
// requested external channels
func (s *Service) SendMessage(
	ctx context.Context,
	userID uuid.UUID,
	types []messaging.SendType,
	subject, content string,
	eventType messaging.EventType,
	eventData string,
) (*MessageResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	msg, err := messaging.NewUserMessage(userID, messaging.ChannelsOf(types...), subject, content, eventType, eventData)
	if err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	s.dispatch(ctx, user, msg)

	resp := ToMessageResponse(msg)
	return &resp, nil
}

// Send handles a staff request to message one user
func (s *Service) Send(ctx context.Context, req SendMessageRequest) (*MessageResponse, error) {
	return s.SendMessage(ctx, req.UserID, sendTypes(req.SendTypes), req.Subject, req.Message,
		messaging.EventType(req.EventType), req.EventData)
}

// dispatch delivers msg over its external channels. Delivery failures are
// logged and never undo the stored message.
func (s *Service) dispatch(ctx context.Context, user *account.User, msg *messaging.UserMessage) {
	if s.notifier == nil {
		return
	}
	log := s.logger.With(zap.String("message_id", msg.ID.String()), zap.String("user_id", user.ID.String()))

	if msg.SendNotification {
		devices, err := s.devices.ListByUser(ctx, user.ID)
		if err != nil {
			log.Warn("Failed to load devices", zap.Error(err))
		}
		payload := msg.Push()
		for _, device := range devices {
			if err := s.notifier.Push(ctx, device, payload); err != nil {
				log.Warn("Push delivery failed", zap.String("device_id", device.ID.String()), zap.Error(err))
			}
		}
	}
	if msg.SendEmail && user.HasEmail() {
		if err := s.notifier.Email(ctx, user.Email, msg.Title, msg.Content); err != nil {
			log.Warn("Email delivery failed", zap.Error(err))
		}
	}
	if msg.SendSMS && user.HasPhone() {
		if err := s.notifier.SMS(ctx, *user.PhoneNumber, msg.Content); err != nil {
			log.Warn("SMS delivery failed", zap.Error(err))
		}
	}
}

// ListInbox returns the user's in-app messages newest first
func (s *Service) ListInbox(ctx context.Context, userID uuid.UUID, filter domainshared.Filter) (*InboxResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	messages, total, err := s.messages.ListInApp(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	unseen, err := s.messages.CountUnseen(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]MessageResponse, len(messages))
	for i := range messages {
		items[i] = ToMessageResponse(&messages[i])
	}
	return &InboxResponse{
		Paginated:   domainshared.NewPaginated(items, total, filter.Page, filter.PageSize),
		UnseenCount: unseen,
	}, nil
}

// GetMessage returns one of the user's messages
func (s *Service) GetMessage(ctx context.Context, userID, id uuid.UUID) (*MessageResponse, error) {
	msg, err := s.own(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToMessageResponse(msg)
	return &resp, nil
}

// MarkSeen flags one of the user's messages as read
func (s *Service) MarkSeen(ctx context.Context, userID, id uuid.UUID) (*SeenResponse, error) {
	if _, err := s.own(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.messages.MarkSeen(ctx, id); err != nil {
		return nil, err
	}
	return &SeenResponse{IsSeen: true}, nil
}

func (s *Service) own(ctx context.Context, userID, id uuid.UUID) (*messaging.UserMessage, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.UserID != userID {
		return nil, domainshared.ErrNotFound
	}
	return msg, nil
}

// SyncDevice registers token for userID. A token already known is moved
// to userID.
func (s *Service) SyncDevice(ctx context.Context, userID, token uuid.UUID) (*DeviceResponse, error) {
	device, err := s.devices.FindByToken(ctx, token)
	switch {
	case errors.Is(err, domainshared.ErrNotFound):
		device = messaging.NewUserDevice(userID, token)
		if err := s.devices.Save(ctx, device); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case device.UserID != userID:
		device.UserID = userID
		if err := s.devices.Save(ctx, device); err != nil {
			return nil, err
		}
	}
	return &DeviceResponse{ID: device.ID, Token: device.Token}, nil
}
