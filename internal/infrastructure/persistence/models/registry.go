package models

// AllModels lists every persistence model in dependency order. Production
// schema comes from SQL migrations; this list drives AutoMigrate in tests.
func AllModels() []any {
	return []any{
		&UserModel{},
		&AddressModel{},
		&WalletModel{},
		&WalletTransactionModel{},
		&CategoryModel{},
		&BrandModel{},
		&ProductModel{},
		&ProductImageModel{},
		&ProductDiscountModel{},
		&ProductPropertyModel{},
		&ReviewModel{},
		&WishlistModel{},
		&ProductOfferModel{},
		&ProductOfferItemModel{},
		&SliderModel{},
		&BannerModel{},
		&CouponModel{},
		&CouponConsumeModel{},
		&ShipmentTypeModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&OrderShipmentModel{},
		&OrderStatusModel{},
		&UserMessageModel{},
		&GroupModel{},
		&GroupUserModel{},
		&GroupMessageModel{},
		&UserDeviceModel{},
		&PostModel{},
		&BlogCategoryModel{},
		&BlogTagModel{},
		&CommentModel{},
		&BookmarkModel{},
		&PageModel{},
		&FAQGroupModel{},
		&FAQModel{},
		&ShopLocationModel{},
		&StateModel{},
		&CityModel{},
		&InquiryCategoryModel{},
		&ContactRequestModel{},
		&OutboxEventModel{},
	}
}
