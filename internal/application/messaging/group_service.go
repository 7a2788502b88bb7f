package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/messaging"
	"go.uber.org/zap"
)

// CreateGroup creates a broadcast audience
func (s *Service) CreateGroup(ctx context.Context, req CreateGroupRequest) (*GroupResponse, error) {
	g, err := messaging.NewGroup(req.Title)
	if err != nil {
		return nil, err
	}
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, err
	}
	return &GroupResponse{ID: g.ID, Title: g.Title, CreatedAt: g.CreatedAt}, nil
}

// ListGroups returns every group
func (s *Service) ListGroups(ctx context.Context) ([]GroupResponse, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]GroupResponse, len(groups))
	for i, g := range groups {
		out[i] = GroupResponse{ID: g.ID, Title: g.Title, CreatedAt: g.CreatedAt}
	}
	return out, nil
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID uuid.UUID, req AddMemberRequest) error {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return err
	}
	return s.groups.AddMember(ctx, groupID, req.UserID)
}

// SendGroupMessage stores a broadcast. Members receive it once the
// GroupMessageCreated event is delivered.
func (s *Service) SendGroupMessage(ctx context.Context, groupID uuid.UUID, req GroupMessageRequest) (*GroupMessageResponse, error) {
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	m, err := messaging.NewGroupMessage(groupID, req.Title, req.Content, messaging.ChannelsOf(sendTypes(req.SendTypes)...))
	if err != nil {
		return nil, err
	}
	err = s.txScope.Execute(ctx, func(repos shared.TransactionalRepositories) error {
		if err := repos.GroupRepo().SaveMessage(ctx, m); err != nil {
			return err
		}
		if err := repos.Outbox().Append(ctx, m.PullDomainEvents()...); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &GroupMessageResponse{ID: m.ID, GroupID: m.GroupID, Title: m.Title, Content: m.Content}, nil
}

// FanOut copies a broadcast into every member's inbox and dispatches it
func (s *Service) FanOut(ctx context.Context, groupMessageID uuid.UUID) (int, error) {
	m, err := s.groups.FindMessage(ctx, groupMessageID)
	if err != nil {
		return 0, err
	}
	members, err := s.groups.MemberIDs(ctx, m.GroupID)
	if err != nil {
		return 0, err
	}
	messages := m.FanOut(members)
	if err := s.messages.SaveBatch(ctx, messages); err != nil {
		return 0, err
	}

	if len(messages) > 0 && (m.Channels.Notification || m.Channels.Email || m.Channels.SMS) {
		users, err := s.users.FindByIDs(ctx, members)
		if err != nil {
			s.logger.Warn("Failed to load group members for delivery", zap.Error(err))
		}
		byID := make(map[uuid.UUID]int, len(users))
		for i := range users {
			byID[users[i].ID] = i
		}
		for i := range messages {
			if idx, ok := byID[messages[i].UserID]; ok {
				s.dispatch(ctx, &users[idx], &messages[i])
			}
		}
	}

	s.logger.Info("Group message fanned out",
		zap.String("group_message_id", m.ID.String()),
		zap.Int("recipients", len(messages)),
	)
	return len(messages), nil
}
