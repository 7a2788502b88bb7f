package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/wallet"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TransferObserver is notified of every committed transfer
type TransferObserver interface {
	RecordWalletTransfer(ctx context.Context, amount float64)
}

// Service runs wallet operations. Each mutation runs in its own
// transaction with the affected wallet rows locked.
type Service struct {
	userRepo       account.UserRepository
	walletRepo     wallet.Repository
	txScope        appshared.TransactionScope
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	observer       TransferObserver
	logger         *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithIdempotency enables Idempotency-Key handling for transfers
func WithIdempotency(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(s *Service) {
		s.idempotency = store
		s.idempotencyTTL = ttl
	}
}

// WithTransferObserver registers an observer for committed transfers
func WithTransferObserver(o TransferObserver) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates a new wallet Service
func NewService(
	userRepo account.UserRepository,
	walletRepo wallet.Repository,
	txScope appshared.TransactionScope,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		userRepo:       userRepo,
		walletRepo:     walletRepo,
		txScope:        txScope,
		idempotencyTTL: 24 * time.Hour,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalance returns the balance of the user's wallet
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceResponse, error) {
	walletID, err := s.walletOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	w, err := s.walletRepo.FindByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{WalletID: w.ID, CurrentBalance: w.CurrentBalance}, nil
}

// ListTransactions returns the user's wallet history, newest first
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, filter shared.Filter) (shared.Paginated[TransactionResponse], error) {
	walletID, err := s.walletOf(ctx, userID)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	txs, total, err := s.walletRepo.ListTransactions(ctx, walletID, filter)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	items := make([]TransactionResponse, len(txs))
	for i := range txs {
		items[i] = toTransactionResponse(&txs[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Deposit credits a wallet
func (s *Service) Deposit(ctx context.Context, walletID uuid.UUID, req AdjustRequest) (*BalanceResponse, error) {
	return s.adjust(ctx, walletID, func(w *wallet.Wallet) error {
		_, err := w.Deposit(req.Amount, logOr(req.Log, "Deposit"))
		return err
	})
}

// Withdraw debits a wallet. Nothing is written when the balance is short.
func (s *Service) Withdraw(ctx context.Context, walletID uuid.UUID, req AdjustRequest) (*BalanceResponse, error) {
	return s.adjust(ctx, walletID, func(w *wallet.Wallet) error {
		_, err := w.Withdraw(req.Amount, logOr(req.Log, "Withdraw"))
		return err
	})
}

func (s *Service) adjust(ctx context.Context, walletID uuid.UUID, apply func(*wallet.Wallet) error) (*BalanceResponse, error) {
	var resp BalanceResponse
	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		w, err := repos.WalletRepo().FindByIDForUpdate(ctx, walletID)
		if err != nil {
			return err
		}
		if err := apply(w); err != nil {
			return err
		}
		if err := repos.WalletRepo().Save(ctx, w); err != nil {
			return err
		}
		resp = BalanceResponse{WalletID: w.ID, CurrentBalance: w.CurrentBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Transfer moves money from the caller's wallet to the wallet of another
// user (ToUserID) or to a wallet directly (ToWalletID). Both rows are
// locked in id order so concurrent opposite transfers cannot deadlock.
func (s *Service) Transfer(ctx context.Context, userID uuid.UUID, idempotencyKey string, req TransferRequest) (_ *TransferResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "wallet", "transfer", attribute.String("user_id", userID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	srcID, err := s.walletOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	dstID, err := s.destination(ctx, req)
	if err != nil {
		return nil, err
	}
	if srcID == dstID {
		return nil, wallet.ErrSameWallet
	}
	if !req.Amount.IsPositive() {
		return nil, wallet.ErrInvalidAmount
	}

	var resp TransferResponse
	key := ""
	if idempotencyKey != "" {
		key = "wallet-transfer:" + userID.String() + ":" + idempotencyKey
	}
	err = appshared.RunOnce(ctx, s.idempotency, key, s.idempotencyTTL, func() error {
		return s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
			locked := make(map[uuid.UUID]*wallet.Wallet, 2)
			first, second := wallet.LockOrder(srcID, dstID)
			for _, id := range []uuid.UUID{first, second} {
				w, err := repos.WalletRepo().FindByIDForUpdate(ctx, id)
				if err != nil {
					return err
				}
				locked[id] = w
			}
			src, dst := locked[srcID], locked[dstID]

			if err := wallet.Transfer(src, dst, req.Amount); err != nil {
				return err
			}
			if err := repos.WalletRepo().Save(ctx, src); err != nil {
				return err
			}
			if err := repos.WalletRepo().Save(ctx, dst); err != nil {
				return err
			}
			if err := repos.Outbox().Append(ctx, src.PullDomainEvents()...); err != nil {
				return err
			}

			resp = TransferResponse{
				SourceWalletID:      src.ID,
				DestinationWalletID: dst.ID,
				Amount:              req.Amount,
				CurrentBalance:      src.CurrentBalance,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		s.observer.RecordWalletTransfer(ctx, req.Amount.InexactFloat64())
	}
	s.logger.Info("Wallet transfer completed",
		zap.String("source_wallet_id", srcID.String()),
		zap.String("destination_wallet_id", dstID.String()),
		zap.String("amount", req.Amount.String()))
	return &resp, nil
}

func (s *Service) destination(ctx context.Context, req TransferRequest) (uuid.UUID, error) {
	switch {
	case req.ToWalletID != nil:
		return *req.ToWalletID, nil
	case req.ToUserID != nil:
		return s.walletOf(ctx, *req.ToUserID)
	default:
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "Either to_user_id or to_wallet_id is required")
	}
}

func (s *Service) walletOf(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if user.WalletID == nil {
		return uuid.Nil, shared.NewDomainError("NOT_FOUND", "User has no wallet")
	}
	return *user.WalletID, nil
}

func logOr(log, fallback string) string {
	if log == "" {
		return fallback
	}
	return log
}
