package shared

import (
	"context"

	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/cms"
	"github.com/shop/backend/internal/domain/messaging"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/promotion"
	domainshared "github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipment"
	"github.com/shop/backend/internal/domain/wallet"
)

// TransactionScope runs a unit of work inside one database transaction.
// If fn returns an error the transaction is rolled back, otherwise it is
// committed together with every event appended to the outbox.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories gives access to repositories bound to the
// running transaction. Repositories obtained here must not be used after
// fn returns.
type TransactionalRepositories interface {
	UserRepo() account.UserRepository
	AddressRepo() account.AddressRepository
	ProductRepo() catalog.ProductRepository
	DiscountRepo() catalog.DiscountRepository
	OfferRepo() cms.OfferRepository
	CouponRepo() promotion.CouponRepository
	CartRepo() cart.Repository
	ShipmentTypeRepo() shipment.Repository
	OrderRepo() order.Repository
	WalletRepo() wallet.Repository
	GroupRepo() messaging.GroupRepository
	// Outbox records domain events that are delivered after commit
	Outbox() domainshared.EventOutbox
	// Savepoint runs fn behind a named savepoint. When fn fails only its
	// writes are rolled back and the transaction stays usable.
	Savepoint(name string, fn func() error) error
}
