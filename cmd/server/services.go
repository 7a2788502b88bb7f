package main

import (
	"context"
	"fmt"
	"time"

	accountapp "github.com/shop/backend/internal/application/account"
	blogapp "github.com/shop/backend/internal/application/blog"
	cartapp "github.com/shop/backend/internal/application/cart"
	catalogapp "github.com/shop/backend/internal/application/catalog"
	cmsapp "github.com/shop/backend/internal/application/cms"
	eventapp "github.com/shop/backend/internal/application/event"
	infoapp "github.com/shop/backend/internal/application/info"
	messagingapp "github.com/shop/backend/internal/application/messaging"
	orderapp "github.com/shop/backend/internal/application/order"
	promotionapp "github.com/shop/backend/internal/application/promotion"
	shipmentapp "github.com/shop/backend/internal/application/shipment"
	walletapp "github.com/shop/backend/internal/application/wallet"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/event"
	"github.com/shop/backend/internal/infrastructure/notification"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/scheduler"
	"github.com/shop/backend/internal/infrastructure/telemetry"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the application layer wired to gorm repositories
type services struct {
	user      *accountapp.UserService
	auth      *accountapp.AuthService
	address   *accountapp.AddressService
	product   *catalogapp.ProductService
	taxonomy  *catalogapp.TaxonomyService
	review    *catalogapp.ReviewService
	wishlist  *catalogapp.WishlistService
	cms       *cmsapp.Service
	promotion *promotionapp.Service
	cart      *cartapp.Service
	shipment  *shipmentapp.Service
	order     *orderapp.Service
	wallet    *walletapp.Service
	messaging *messagingapp.Service
	blog      *blogapp.Service
	info      *infoapp.Service
	outbox    *eventapp.OutboxService

	// background collaborators
	carts      *persistence.GormCartRepository
	users      *persistence.GormUserRepository
	outboxRepo *event.GormOutboxRepository
	metrics    *telemetry.ShopMetrics
}

type dependencies struct {
	db          *gorm.DB
	cfg         *config.Config
	jwt         *auth.JWTService
	blacklist   auth.TokenBlacklist
	idempotency shared.IdempotencyStore
	storage     catalogapp.ObjectStorageService
	serializer  *event.EventSerializer
	metrics     *telemetry.ShopMetrics
	logger      *zap.Logger
}

func newServices(d dependencies) *services {
	db, log := d.db, d.logger
	txScope := persistence.NewGormTransactionScope(db, event.NewOutboxPublisher(d.serializer))

	users := persistence.NewGormUserRepository(db)
	products := persistence.NewGormProductRepository(db)
	categories := persistence.NewGormCategoryRepository(db)
	discounts := persistence.NewGormDiscountRepository(db)
	reviews := persistence.NewGormReviewRepository(db)
	wishlists := persistence.NewGormWishlistRepository(db)
	offers := persistence.NewGormOfferRepository(db)
	coupons := persistence.NewGormCouponRepository(db)
	carts := persistence.NewGormCartRepository(db)
	outboxRepo := event.NewGormOutboxRepository(db)

	imageCfg := catalogapp.DefaultImageConfig()
	if d.cfg.Storage.PresignExpiration > 0 {
		imageCfg.UploadURLExpiry = d.cfg.Storage.PresignExpiration
		imageCfg.DownloadURLExpiry = d.cfg.Storage.PresignExpiration
	}

	s := &services{carts: carts, users: users, outboxRepo: outboxRepo, metrics: d.metrics}
	s.user = accountapp.NewUserService(users, txScope, d.blacklist, d.cfg.JWT.RefreshTokenExpiration, log)
	s.auth = accountapp.NewAuthService(users, d.jwt, d.blacklist, log)
	s.address = accountapp.NewAddressService(persistence.NewGormAddressRepository(db))

	s.product = catalogapp.NewProductService(
		products, categories, discounts, offers, reviews, persistence.NewGormPropertyRepository(db), wishlists, txScope, log,
		catalogapp.WithImageStorage(d.storage, imageCfg),
	)
	s.taxonomy = catalogapp.NewTaxonomyService(categories, persistence.NewGormBrandRepository(db), log)
	s.review = catalogapp.NewReviewService(products, reviews)
	s.wishlist = catalogapp.NewWishlistService(s.product, wishlists)
	s.cms = cmsapp.NewService(offers, persistence.NewGormContentRepository(db), products, d.storage, log)

	s.cart = cartapp.NewService(carts, products, discounts, offers, coupons, log)
	s.promotion = promotionapp.NewService(coupons, s.cart, d.metrics, log)
	s.shipment = shipmentapp.NewService(persistence.NewGormShipmentTypeRepository(db))

	s.order = orderapp.NewService(persistence.NewGormOrderRepository(db), txScope, log,
		orderapp.WithIdempotency(d.idempotency, d.cfg.Order.IdempotencyTTL),
		orderapp.WithShippingDelay(d.cfg.Order.ShippingDelay),
		orderapp.WithPlacementObserver(d.metrics),
	)
	s.wallet = walletapp.NewService(users, persistence.NewGormWalletRepository(db), txScope, log,
		walletapp.WithIdempotency(d.idempotency, d.cfg.Order.IdempotencyTTL),
		walletapp.WithTransferObserver(d.metrics),
	)

	notifier := telemetry.InstrumentNotifier(notification.NewLogNotifier(log), d.metrics)
	s.messaging = messagingapp.NewService(
		persistence.NewGormMessageRepository(db),
		persistence.NewGormGroupRepository(db),
		persistence.NewGormDeviceRepository(db),
		users, notifier, txScope, log,
	)

	s.blog = blogapp.NewService(
		persistence.NewGormPostRepository(db),
		persistence.NewGormCommentRepository(db),
		persistence.NewGormBookmarkRepository(db),
		log,
	)
	s.info = infoapp.NewService(persistence.NewGormInfoRepository(db), log)
	s.outbox = eventapp.NewOutboxService(outboxRepo, log)
	return s
}

// subscribe registers the messaging reactions to order, wallet and group
// events. Each handler remembers the events it handled, since the outbox
// delivers at least once.
func (s *services) subscribe(bus *event.InMemoryEventBus, store shared.IdempotencyStore, cfg config.OutboxConfig, log *zap.Logger) {
	dedup := event.DefaultDedup()
	if cfg.IdempotencyTTL > 0 {
		dedup.TTL = cfg.IdempotencyTTL
	}
	handlers := map[string]shared.EventHandler{
		"order-placed-message":       messagingapp.NewOrderPlacedHandler(s.messaging),
		"order-status-message":       messagingapp.NewOrderStatusChangedHandler(s.messaging),
		"transfer-completed-message": messagingapp.NewTransferCompletedHandler(s.messaging, s.users, log),
		"group-message-fanout":       messagingapp.NewGroupMessageHandler(s.messaging),
	}
	for name, h := range handlers {
		bus.Subscribe(event.NewIdempotentHandler(name, h, store, log, event.WithDedup(dedup), event.WithRecorder(s.metrics)))
		log.Info("Event handler registered",
			zap.String("handler", name),
			zap.Strings("event_types", h.EventTypes()),
		)
	}
}

// registerJobs adds the periodic maintenance jobs
func (s *services) registerJobs(sched *scheduler.Scheduler, cfg config.SchedulerConfig, eventRetention time.Duration, log *zap.Logger) error {
	jobs := []scheduler.Job{
		scheduler.NewExpireOffersJob(s.cms, cfg.OfferExpiryInterval, log),
		scheduler.NewPurgeStaleCartsJob(s.carts, cfg.CartPurgeInterval, cfg.CartRetention, log),
		scheduler.NewPurgeSentEventsJob(s.outboxRepo, cfg.EventPurgeInterval, eventRetention, log),
	}
	for _, job := range jobs {
		if err := sched.Register(job); err != nil {
			return fmt.Errorf("register job %s: %w", job.Name, err)
		}
	}
	return nil
}

// bootstrapStaff seeds the configured staff account
func (s *services) bootstrapStaff(ctx context.Context, cfg config.AppConfig, log *zap.Logger) error {
	if cfg.StaffEmail == "" {
		return nil
	}
	if err := s.user.EnsureStaff(ctx, cfg.StaffEmail, cfg.StaffPassword); err != nil {
		return fmt.Errorf("seed staff account: %w", err)
	}
	log.Info("Staff account ready", zap.String("email", cfg.StaffEmail))
	return nil
}

func (s *services) handlers(system *handler.SystemHandler) router.Handlers {
	return router.Handlers{
		Auth:      handler.NewAuthHandler(s.auth),
		Account:   handler.NewAccountHandler(s.user, s.address),
		Catalog:   handler.NewCatalogHandler(s.product, s.taxonomy, s.review),
		Wishlist:  handler.NewWishlistHandler(s.wishlist),
		Shipment:  handler.NewShipmentHandler(s.shipment),
		CMS:       handler.NewCMSHandler(s.cms),
		Promotion: handler.NewPromotionHandler(s.promotion),
		Cart:      handler.NewCartHandler(s.cart),
		Order:     handler.NewOrderHandler(s.order),
		Wallet:    handler.NewWalletHandler(s.wallet),
		Messaging: handler.NewMessagingHandler(s.messaging),
		Blog:      handler.NewBlogHandler(s.blog),
		Info:      handler.NewInfoHandler(s.info),
		Outbox:    handler.NewOutboxHandler(s.outbox),
		System:    system,
	}
}
