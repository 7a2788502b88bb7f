package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/account"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	account.BcryptCost = bcrypt.MinCost
}

type fixture struct {
	db        *gorm.DB
	users     *UserService
	auth      *AuthService
	addresses *AddressService
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	userRepo := persistence.NewGormUserRepository(db)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "shop-test",
		MaxRefreshCount:        3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	return &fixture{
		db:        db,
		users:     NewUserService(userRepo, persistence.NewGormTransactionScope(db, nil), blacklist, time.Hour, zap.NewNop()),
		auth:      NewAuthService(userRepo, jwtService, blacklist, zap.NewNop()),
		addresses: NewAddressService(persistence.NewGormAddressRepository(db)),
		jwt:       jwtService,
		blacklist: blacklist,
	}
}

func (f *fixture) createUser(t *testing.T, email string) *UserResponse {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), CreateUserRequest{
		Email:    email,
		Password: "correct-horse",
		FullName: "Test Buyer",
	})
	require.NoError(t, err)
	return user
}

func TestUserService_CreateUser_AttachesWallet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "Buyer@Example.com")

	assert.Equal(t, "buyer@example.com", user.Email)
	require.NotNil(t, user.WalletID)
	w, err := persistence.NewGormWalletRepository(f.db).FindByID(ctx, *user.WalletID)
	require.NoError(t, err)
	assert.True(t, w.CurrentBalance.IsZero())

	profile, err := f.users.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.WalletID, profile.WalletID)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "buyer@example.com")

	_, err := f.users.CreateUser(context.Background(), CreateUserRequest{
		Email:    "BUYER@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  CreateUserRequest
	}{
		{"bad email", CreateUserRequest{Email: "nope", Password: "correct-horse"}},
		{"short password", CreateUserRequest{Email: "a@example.com", Password: "short"}},
		{"bad phone", CreateUserRequest{Email: "a@example.com", Password: "correct-horse", PhoneNumber: "call me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.CreateUser(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestUserService_ListUsers(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice@example.com")
	f.createUser(t, "bob@example.com")

	page, err := f.users.ListUsers(context.Background(), shared.Filter{Page: 1, PageSize: 10, Search: "ALICE"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "alice@example.com", page.Items[0].Email)
	assert.Equal(t, int64(1), page.Total)
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "buyer@example.com")

	tokens, err := f.auth.Authenticate(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)

	claims, err := f.jwt.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.False(t, claims.IsStaff)
}

func TestAuthService_Authenticate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := f.createUser(t, "gone@example.com")
	f.createUser(t, "buyer@example.com")
	require.NoError(t, f.users.DeactivateUser(ctx, inactive.ID))

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "who@example.com", Password: "correct-horse"}},
		{"wrong password", LoginRequest{Email: "buyer@example.com", Password: "wrong-horse"}},
		{"inactive user", LoginRequest{Email: "gone@example.com", Password: "correct-horse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Authenticate(ctx, tt.req)
			assert.ErrorIs(t, err, shared.ErrUnauthorized)
		})
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "buyer@example.com")

	tokens, err := f.auth.Authenticate(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := f.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	claims, err := f.jwt.ValidateRefreshToken(refreshed.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.RefreshCount)

	_, err = f.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_RefreshTokens_DeactivatedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "buyer@example.com")

	tokens, err := f.auth.Authenticate(ctx, LoginRequest{Email: "buyer@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NoError(t, f.users.DeactivateUser(ctx, user.ID))

	_, err = f.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.Logout(ctx, "jti-1", time.Minute))
	revoked, err := f.blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.NoError(t, f.auth.Logout(ctx, "", time.Minute))
}

func TestAddressService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	_, err := f.addresses.GetDefaultAddress(ctx, owner)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	home, err := f.addresses.CreateAddress(ctx, owner, CreateAddressRequest{Title: "Home", City: "Tehran", Street: "Valiasr 12"})
	require.NoError(t, err)
	_, err = f.addresses.CreateAddress(ctx, owner, CreateAddressRequest{Title: "Work", City: "Tehran", Street: "Azadi 3"})
	require.NoError(t, err)

	list, err := f.addresses.ListAddresses(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	def, err := f.addresses.GetDefaultAddress(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, home.ID, def.ID)

	assert.ErrorIs(t, f.addresses.DeleteAddress(ctx, other, home.ID), shared.ErrNotFound)
	require.NoError(t, f.addresses.DeleteAddress(ctx, owner, home.ID))

	list, err = f.addresses.ListAddresses(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Work", list[0].Title)
}

func TestAddressService_CreateAddress_Invalid(t *testing.T) {
	f := newFixture(t)
	_, err := f.addresses.CreateAddress(context.Background(), uuid.New(), CreateAddressRequest{City: "Tehran"})
	assert.Error(t, err)
}
