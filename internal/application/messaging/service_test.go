package messaging

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu     sync.Mutex
	pushes []messaging.PushPayload
	emails []string
	sms    []string
}

func (n *recordingNotifier) Push(_ context.Context, _ messaging.UserDevice, payload messaging.PushPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, payload)
	return nil
}

func (n *recordingNotifier) Email(_ context.Context, to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, to)
	return nil
}

func (n *recordingNotifier) SMS(_ context.Context, phone, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, phone)
	return nil
}

var _ messaging.Notifier = (*recordingNotifier)(nil)

type unreachableWalletOwners struct {
	*persistence.GormUserRepository
	wallet uuid.UUID
	err    error
}

func (r *unreachableWalletOwners) FindByWalletID(ctx context.Context, walletID uuid.UUID) (*account.User, error) {
	if walletID == r.wallet {
		return nil, r.err
	}
	return r.GormUserRepository.FindByWalletID(ctx, walletID)
}

type fixture struct {
	db       *gorm.DB
	users    *persistence.GormUserRepository
	notifier *recordingNotifier
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	users := persistence.NewGormUserRepository(db)
	notifier := &recordingNotifier{}
	scope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(event.NewShopEventSerializer()))
	return &fixture{
		db:       db,
		users:    users,
		notifier: notifier,
		svc: NewService(
			persistence.NewGormMessageRepository(db),
			persistence.NewGormGroupRepository(db),
			persistence.NewGormDeviceRepository(db),
			users,
			notifier,
			scope,
			zap.NewNop(),
		),
	}
}

func (f *fixture) newUser(t *testing.T, email, phone string) *account.User {
	t.Helper()
	u, err := account.NewUser(email, "correct-horse", "")
	require.NoError(t, err)
	require.NoError(t, u.SetPhoneNumber(phone))
	require.NoError(t, f.users.Save(context.Background(), u))
	return u
}

func allChannels() []messaging.SendType {
	return []messaging.SendType{
		messaging.SendTypeSMS, messaging.SendTypeEmail, messaging.SendTypeInApp, messaging.SendTypeNotification,
	}
}

func TestService_SendMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("dispatches every requested channel", func(t *testing.T) {
		u := f.newUser(t, "dana@example.com", "+15550100")
		_, err := f.svc.SyncDevice(ctx, u.ID, uuid.New())
		require.NoError(t, err)

		msg, err := f.svc.SendMessage(ctx, u.ID, allChannels(), "Hello", strings.Repeat("x", 300), messaging.EventAnnouncement, "")
		require.NoError(t, err)
		assert.Equal(t, "{}", msg.EventData)
		assert.False(t, msg.IsSeen)

		require.Len(t, f.notifier.pushes, 1)
		assert.Len(t, f.notifier.pushes[0].Body, messaging.MaxPushBodyLength)
		assert.Equal(t, []string{"dana@example.com"}, f.notifier.emails)
		assert.Equal(t, []string{"+15550100"}, f.notifier.sms)
	})

	t.Run("skips sms without a phone", func(t *testing.T) {
		u := f.newUser(t, "erin@example.com", "")
		before := len(f.notifier.sms)
		_, err := f.svc.SendMessage(ctx, u.ID, allChannels(), "Hello", "", messaging.EventNotDefined, "")
		require.NoError(t, err)
		assert.Len(t, f.notifier.sms, before)
	})

	t.Run("rejects long subjects", func(t *testing.T) {
		u := f.newUser(t, "finn@example.com", "")
		_, err := f.svc.SendMessage(ctx, u.ID, allChannels(), strings.Repeat("s", 51), "", messaging.EventNotDefined, "")
		assert.Error(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.SendMessage(ctx, uuid.New(), allChannels(), "Hello", "", messaging.EventNotDefined, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestService_Inbox(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.newUser(t, "gale@example.com", "")
	other := f.newUser(t, "hugo@example.com", "")

	inApp := []messaging.SendType{messaging.SendTypeInApp}
	var ids []uuid.UUID
	for _, subject := range []string{"One", "Two", "Three"} {
		msg, err := f.svc.SendMessage(ctx, u.ID, inApp, subject, "", messaging.EventNotDefined, "")
		require.NoError(t, err)
		ids = append(ids, msg.ID)
	}
	_, err := f.svc.SendMessage(ctx, u.ID, []messaging.SendType{messaging.SendTypeEmail}, "Mail only", "", messaging.EventNotDefined, "")
	require.NoError(t, err)

	seen, err := f.svc.MarkSeen(ctx, u.ID, ids[0])
	require.NoError(t, err)
	assert.True(t, seen.IsSeen)

	inbox, err := f.svc.ListInbox(ctx, u.ID, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), inbox.Total)
	assert.Len(t, inbox.Items, 2)
	assert.Equal(t, int64(2), inbox.UnseenCount)

	got, err := f.svc.GetMessage(ctx, u.ID, ids[0])
	require.NoError(t, err)
	assert.True(t, got.IsSeen)

	_, err = f.svc.GetMessage(ctx, other.ID, ids[0])
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = f.svc.MarkSeen(ctx, other.ID, ids[1])
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_SyncDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.newUser(t, "ivy@example.com", "")
	other := f.newUser(t, "jon@example.com", "")
	token := uuid.New()

	first, err := f.svc.SyncDevice(ctx, u.ID, token)
	require.NoError(t, err)
	again, err := f.svc.SyncDevice(ctx, u.ID, token)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = f.svc.SyncDevice(ctx, other.ID, token)
	require.NoError(t, err)
	devices, err := persistence.NewGormDeviceRepository(f.db).ListByUser(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, token, devices[0].Token)
}

func TestService_GroupMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.newUser(t, "kai@example.com", "")
	b := f.newUser(t, "lee@example.com", "")

	group, err := f.svc.CreateGroup(ctx, CreateGroupRequest{Title: "Members"})
	require.NoError(t, err)
	require.NoError(t, f.svc.AddMember(ctx, group.ID, AddMemberRequest{UserID: a.ID}))
	require.NoError(t, f.svc.AddMember(ctx, group.ID, AddMemberRequest{UserID: b.ID}))
	require.NoError(t, f.svc.AddMember(ctx, group.ID, AddMemberRequest{UserID: b.ID}))
	assert.ErrorIs(t, f.svc.AddMember(ctx, uuid.New(), AddMemberRequest{UserID: a.ID}), shared.ErrNotFound)

	groups, err := f.svc.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	gm, err := f.svc.SendGroupMessage(ctx, group.ID, GroupMessageRequest{
		Title:     "Sale",
		Content:   "Everything half price",
		SendTypes: []int{int(messaging.SendTypeInApp), int(messaging.SendTypeEmail)},
	})
	require.NoError(t, err)

	counts, err := event.NewGormOutboxRepository(f.db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[shared.OutboxStatusPending])

	handler := NewGroupMessageHandler(f.svc)
	assert.Equal(t, []string{messaging.EventTypeGroupMessageCreated}, handler.EventTypes())
	require.NoError(t, handler.Handle(ctx, &messaging.GroupMessageCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(messaging.EventTypeGroupMessageCreated, messaging.AggregateTypeGroupMessage, gm.ID),
		GroupMessageID:  gm.ID,
		GroupID:         group.ID,
	}))

	for _, u := range []*account.User{a, b} {
		inbox, err := f.svc.ListInbox(ctx, u.ID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, inbox.Items, 1)
		assert.Equal(t, "Sale", inbox.Items[0].Title)
		assert.Equal(t, int(messaging.EventAnnouncement), inbox.Items[0].EventType)
	}
	assert.ElementsMatch(t, []string{"kai@example.com", "lee@example.com"}, f.notifier.emails)
}

func TestEventHandlers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	buyer := f.newUser(t, "mae@example.com", "")

	t.Run("order placed", func(t *testing.T) {
		orderID := uuid.New()
		h := NewOrderPlacedHandler(f.svc)
		require.NoError(t, h.Handle(ctx, &order.OrderPlacedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderPlaced, order.AggregateTypeOrder, orderID),
			OrderID:         orderID,
			UserID:          buyer.ID,
			TotalPrice:      decimal.NewFromInt(250),
			ItemCount:       2,
		}))

		inbox, err := f.svc.ListInbox(ctx, buyer.ID, shared.Filter{})
		require.NoError(t, err)
		require.NotEmpty(t, inbox.Items)
		assert.Equal(t, "Order received", inbox.Items[0].Title)
		assert.Contains(t, inbox.Items[0].Content, "250.00")
		assert.Contains(t, inbox.Items[0].EventData, orderID.String())
	})

	t.Run("wrong event", func(t *testing.T) {
		h := NewOrderPlacedHandler(f.svc)
		err := h.Handle(ctx, &messaging.GroupMessageCreatedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(messaging.EventTypeGroupMessageCreated, messaging.AggregateTypeGroupMessage, uuid.New()),
		})
		assert.Error(t, err)
	})

	t.Run("transfer reaches owned wallets only", func(t *testing.T) {
		walletID := uuid.New()
		sender := f.newUser(t, "ned@example.com", "")
		sender.AttachWallet(walletID)
		require.NoError(t, f.users.Save(ctx, sender))

		h := NewTransferCompletedHandler(f.svc, f.users, zap.NewNop())
		require.NoError(t, h.Handle(ctx, wallet.NewTransferCompletedEvent(walletID, uuid.New(), decimal.NewFromInt(15))))

		inbox, err := f.svc.ListInbox(ctx, sender.ID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, inbox.Items, 1)
		assert.Equal(t, "Transfer sent", inbox.Items[0].Title)
		assert.Equal(t, int(messaging.EventWalletTransfer), inbox.Items[0].EventType)
	})
	t.Run("owner lookup failure sends nothing", func(t *testing.T) {
		walletID := uuid.New()
		sender := f.newUser(t, "ola@example.com", "")
		sender.AttachWallet(walletID)
		require.NoError(t, f.users.Save(ctx, sender))

		lookupErr := errors.New("connection reset")
		users := &unreachableWalletOwners{GormUserRepository: f.users, wallet: uuid.New(), err: lookupErr}
		h := NewTransferCompletedHandler(f.svc, users, zap.NewNop())
		err := h.Handle(ctx, wallet.NewTransferCompletedEvent(walletID, users.wallet, decimal.NewFromInt(15)))
		assert.ErrorIs(t, err, lookupErr)

		inbox, err := f.svc.ListInbox(ctx, sender.ID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, inbox.Items)
	})
}
