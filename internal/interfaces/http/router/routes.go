package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// Handlers holds every handler served under the versioned API prefix
type Handlers struct {
	Auth      *handler.AuthHandler
	Account   *handler.AccountHandler
	Catalog   *handler.CatalogHandler
	Wishlist  *handler.WishlistHandler
	Shipment  *handler.ShipmentHandler
	CMS       *handler.CMSHandler
	Promotion *handler.PromotionHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Wallet    *handler.WalletHandler
	Messaging *handler.MessagingHandler
	Blog      *handler.BlogHandler
	Info      *handler.InfoHandler
	Outbox    *handler.OutboxHandler
	System    *handler.SystemHandler
}

// Access holds the middleware deciding who may call a route
type Access struct {
	// Required rejects callers without a valid access token
	Required gin.HandlerFunc
	// Optional reads the access token when one is present
	Optional gin.HandlerFunc
	// CredentialLimit throttles the token endpoints; nil disables it
	CredentialLimit gin.HandlerFunc
}

func (a Access) staff() []gin.HandlerFunc {
	return []gin.HandlerFunc{a.Required, middleware.RequireStaff()}
}

func (a Access) limited(h gin.HandlerFunc) []gin.HandlerFunc {
	if a.CredentialLimit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{a.CredentialLimit, h}
}

// RegisterShopRoutes registers the route groups of every shop module.
// Groups sharing a prefix differ only in the access middleware they run.
func RegisterShopRoutes(r *Router, h Handlers, a Access) {
	for _, group := range []*DomainGroup{
		authRoutes(h, a),
		accountRoutes(h, a),
		catalogRoutes(h, a),
		NewDomainGroup("shipments", "/shipments").
			GET("/types", h.Shipment.ListTypes).
			GET("/types/:id", h.Shipment.GetType),
		NewDomainGroup("shipments-admin", "/shipments").Use(a.staff()...).
			POST("/types", h.Shipment.CreateType),
		cmsRoutes(h),
		NewDomainGroup("cms-admin", "/cms").Use(a.staff()...).
			POST("/offers", h.CMS.CreateOffer).
			POST("/offers/:id/items", h.CMS.AddOfferItem).
			POST("/offers/:id/deactivate", h.CMS.DeactivateOffer).
			POST("/sliders", h.CMS.CreateSlider).
			POST("/banners", h.CMS.CreateBanner),
		NewDomainGroup("coupons", "/coupons").Use(a.Required).
			POST("/apply", h.Promotion.ApplyCoupon),
		NewDomainGroup("coupons-admin", "/coupons").Use(a.staff()...).
			GET("", h.Promotion.ListCoupons).
			POST("", h.Promotion.CreateCoupon).
			GET("/code/:code", h.Promotion.GetCouponByCode).
			GET("/:id", h.Promotion.GetCoupon).
			POST("/:id/deactivate", h.Promotion.DeactivateCoupon),
		cartRoutes(h, a),
		NewDomainGroup("orders", "/orders").Use(a.Required).
			POST("", h.Order.PlaceOrder).
			GET("", h.Order.ListOrders).
			GET("/:id", h.Order.GetOrder).
			POST("/:id/cancel", h.Order.CancelOrder),
		NewDomainGroup("wallet", "/wallet").Use(a.Required).
			GET("", h.Wallet.GetBalance).
			GET("/transactions", h.Wallet.ListTransactions).
			POST("/transfer", h.Wallet.Transfer),
		NewDomainGroup("messages", "/messages").Use(a.Required).
			GET("", h.Messaging.ListInbox).
			POST("/devices/sync", h.Messaging.SyncDevice).
			GET("/:id", h.Messaging.GetMessage).
			POST("/:id/seen", h.Messaging.MarkSeen),
		blogRoutes(h, a),
		infoRoutes(h, a),
		adminRoutes(h, a),
		NewDomainGroup("system", "/system").
			GET("/info", h.System.GetSystemInfo).
			GET("/ping", h.System.Ping),
	} {
		r.Register(group)
	}
}

func authRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("auth", "/auth").
		POST("/token", a.limited(h.Auth.Token)...).
		POST("/refresh", a.limited(h.Auth.Refresh)...)
	g.Group("session", "").Use(a.Required).
		POST("/logout", h.Auth.Logout)
	return g
}

func accountRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("account", "").Use(a.Required)
	g.Group("profile", "/account").
		GET("/profile", h.Account.GetProfile).
		GET("/addresses", h.Account.ListAddresses).
		POST("/addresses", h.Account.CreateAddress).
		GET("/addresses/default", h.Account.GetDefaultAddress).
		DELETE("/addresses/:id", h.Account.DeleteAddress)
	g.Group("wishlist", "/wishlist").
		GET("", h.Wishlist.List).
		DELETE("", h.Wishlist.Clear).
		GET("/count", h.Wishlist.Count).
		POST("/:product_id", h.Wishlist.Toggle)
	g.Group("users", "/users").Use(middleware.RequireStaff()).
		GET("", h.Account.ListUsers).
		POST("", h.Account.CreateUser).
		POST("/:id/deactivate", h.Account.DeactivateUser)
	return g
}

func catalogRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("catalog", "")
	g.Group("browse", "/catalog").Use(a.Optional).
		GET("/categories", h.Catalog.ListRootCategories).
		GET("/categories/:id", h.Catalog.GetCategory).
		GET("/categories/:id/children", h.Catalog.ListSubcategories).
		GET("/brands", h.Catalog.ListBrands).
		GET("/offers", h.Catalog.ListOffers).
		GET("/products", h.Catalog.ListProducts).
		GET("/products/:id", h.Catalog.GetProduct).
		GET("/products/:id/related", h.Catalog.ListRelated).
		GET("/products/:id/reviews", h.Catalog.ListReviews)
	g.Group("reviews", "/catalog").Use(a.Required).
		POST("/products/:id/reviews", h.Catalog.CreateReview)
	g.Group("manage", "/catalog").Use(a.staff()...).
		POST("/categories", h.Catalog.CreateCategory).
		POST("/brands", h.Catalog.CreateBrand).
		POST("/products", h.Catalog.CreateProduct).
		PUT("/products/:id", h.Catalog.UpdateProduct).
		PUT("/products/:id/stock", h.Catalog.SetStock).
		POST("/products/:id/discounts", h.Catalog.CreateDiscount).
		POST("/products/:id/properties", h.Catalog.AddProperty).
		POST("/products/:id/images/upload-url", h.Catalog.RequestImageUpload).
		POST("/products/:id/images", h.Catalog.AttachImage)
	return g
}

func cmsRoutes(h Handlers) *DomainGroup {
	return NewDomainGroup("cms", "/cms").
		GET("/offers", h.CMS.ListOffers).
		GET("/offers/:id", h.CMS.GetOffer).
		GET("/sliders", h.CMS.ListSliders).
		GET("/banners", h.CMS.ListBanners)
}

func cartRoutes(h Handlers, a Access) *DomainGroup {
	return NewDomainGroup("cart", "/cart").Use(a.Optional, middleware.CartSession()).
		GET("", h.Cart.GetCart).
		DELETE("", h.Cart.Clear).
		GET("/count", h.Cart.Count).
		POST("/sync", h.Cart.Sync).
		POST("/items", h.Cart.AddItem).
		GET("/items/:product_id", h.Cart.GetQuantity).
		DELETE("/items/:product_id", h.Cart.RemoveItem)
}

func blogRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("blog", "/blog").
		GET("/posts", h.Blog.ListPosts).
		GET("/posts/:id", h.Blog.GetPost).
		GET("/posts/:id/comments", h.Blog.ListComments).
		GET("/categories", h.Blog.ListCategories).
		GET("/tags", h.Blog.ListTags)
	g.Group("readers", "").Use(a.Required).
		POST("/posts/:id/comments", h.Blog.AddComment).
		POST("/posts/:id/bookmark", h.Blog.ToggleBookmark).
		GET("/bookmarks", h.Blog.ListBookmarks)
	g.Group("editors", "").Use(a.staff()...).
		POST("/posts", h.Blog.CreatePost).
		DELETE("/posts/:id", h.Blog.UnpublishPost).
		POST("/categories", h.Blog.CreateCategory).
		POST("/tags", h.Blog.CreateTag)
	return g
}

func infoRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("info", "/info").
		GET("/about", h.Info.GetAboutUs).
		GET("/privacy", h.Info.GetPrivacyPolicy).
		GET("/faq", h.Info.ListFAQ).
		GET("/locations", h.Info.ListShopLocations).
		GET("/states", h.Info.ListStates).
		GET("/states/:id/cities", h.Info.ListCities).
		GET("/contact/categories", h.Info.ListInquiryCategories).
		POST("/contact", h.Info.SubmitContact)
	g.Group("editors", "").Use(a.staff()...).
		PUT("/about", h.Info.PublishAboutUs).
		PUT("/privacy", h.Info.PublishPrivacyPolicy).
		POST("/faq", h.Info.CreateFAQGroup).
		POST("/locations", h.Info.CreateShopLocation)
	return g
}

func adminRoutes(h Handlers, a Access) *DomainGroup {
	g := NewDomainGroup("admin", "/admin").Use(a.staff()...)
	g.Group("orders", "/orders").
		GET("", h.Order.ListAllOrders).
		PUT("/:id/status", h.Order.UpdateStatus)
	g.Group("wallets", "/wallets").
		POST("/:id/deposit", h.Wallet.Deposit).
		POST("/:id/withdraw", h.Wallet.Withdraw)
	g.Group("messages", "").
		POST("/messages", h.Messaging.SendMessage).
		GET("/groups", h.Messaging.ListGroups).
		POST("/groups", h.Messaging.CreateGroup).
		POST("/groups/:id/members", h.Messaging.AddMember).
		POST("/groups/:id/messages", h.Messaging.SendGroupMessage)
	g.Group("blog", "/blog").
		GET("/comments", h.Blog.ListPendingComments).
		POST("/comments/:id/accept", h.Blog.AcceptComment)
	g.Group("outbox", "/outbox").
		GET("/stats", h.Outbox.Stats).
		GET("/dead", h.Outbox.ListDead).
		POST("/dead/retry-all", h.Outbox.RequeueAllDead).
		GET("/:id", h.Outbox.GetEntry).
		POST("/:id/retry", h.Outbox.Requeue)
	return g
}
