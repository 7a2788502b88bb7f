package persistence

import (
	"context"
	"errors"

	appshared "github.com/shop/backend/internal/application/shared"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shop/backend/internal/domain/wallet"
	"gorm.io/gorm"
)

// OutboxBinder binds an event outbox to a transaction
type OutboxBinder interface {
	ForTx(tx *gorm.DB) shared.EventOutbox
}

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db     *gorm.DB
	outbox OutboxBinder
}

// NewGormTransactionScope creates a new GormTransactionScope. outbox may be
// nil, in which case appended events are discarded.
func NewGormTransactionScope(db *gorm.DB, outbox OutboxBinder) *GormTransactionScope {
	return &GormTransactionScope{db: db, outbox: outbox}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshared.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx, outbox: s.outbox})
	})
}

type gormTransactionalRepositories struct {
	tx     *gorm.DB
	outbox OutboxBinder
}

func (r *gormTransactionalRepositories) UserRepo() account.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r *gormTransactionalRepositories) AddressRepo() account.AddressRepository {
	return NewGormAddressRepository(r.tx)
}

func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormTransactionalRepositories) DiscountRepo() catalog.DiscountRepository {
	return NewGormDiscountRepository(r.tx)
}

func (r *gormTransactionalRepositories) OfferRepo() cms.OfferRepository {
	return NewGormOfferRepository(r.tx)
}

func (r *gormTransactionalRepositories) CouponRepo() promotion.CouponRepository {
	return NewGormCouponRepository(r.tx)
}

func (r *gormTransactionalRepositories) CartRepo() cart.Repository {
	return NewGormCartRepository(r.tx)
}

func (r *gormTransactionalRepositories) ShipmentTypeRepo() shipment.Repository {
	return NewGormShipmentTypeRepository(r.tx)
}

func (r *gormTransactionalRepositories) OrderRepo() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) WalletRepo() wallet.Repository {
	return NewGormWalletRepository(r.tx)
}

func (r *gormTransactionalRepositories) GroupRepo() messaging.GroupRepository {
	return NewGormGroupRepository(r.tx)
}

func (r *gormTransactionalRepositories) Outbox() shared.EventOutbox {
	if r.outbox == nil {
		return discardOutbox{}
	}
	return r.outbox.ForTx(r.tx)
}

func (r *gormTransactionalRepositories) Savepoint(name string, fn func() error) error {
	if err := r.tx.SavePoint(name).Error; err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := r.tx.RollbackTo(name).Error; rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return nil
}

type discardOutbox struct{}

func (discardOutbox) Append(context.Context, ...shared.DomainEvent) error { return nil }

var (
	_ appshared.TransactionScope          = (*GormTransactionScope)(nil)
	_ appshared.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
