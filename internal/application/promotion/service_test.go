package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/promotion"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCartTotaler struct {
	mock.Mock
}

func (m *MockCartTotaler) DiscountedTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type countingObserver struct {
	codes []string
}

func (o *countingObserver) RecordCouponRejected(_ context.Context, code string) {
	o.codes = append(o.codes, code)
}

var _ CartTotaler = (*MockCartTotaler)(nil)

func newService(t *testing.T) (*Service, *MockCartTotaler, *countingObserver, *persistence.GormCouponRepository) {
	t.Helper()
	repo := persistence.NewGormCouponRepository(testutil.NewSQLiteDB(t))
	carts := new(MockCartTotaler)
	observer := &countingObserver{}
	return NewService(repo, carts, observer, zap.NewNop()), carts, observer, repo
}

func percentCoupon(code string, amount int64) CreateCouponRequest {
	return CreateCouponRequest{
		Title:  "Promo " + code,
		Code:   code,
		Type:   int(promotion.CouponTypePercent),
		Amount: decimal.NewFromInt(amount),
		Total:  10,
	}
}

func TestService_CreateCoupon(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateCoupon(ctx, percentCoupon("SPRING", 15))
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	byCode, err := svc.GetCouponByCode(ctx, "SPRING")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	byID, err := svc.GetCouponByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "SPRING", byID.Code)

	_, err = svc.CreateCoupon(ctx, percentCoupon("SPRING", 5))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.GetCouponByCode(ctx, "WINTER")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_CreateCoupon_Invalid(t *testing.T) {
	svc, _, _, _ := newService(t)
	now := time.Now()
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name string
		req  CreateCouponRequest
	}{
		{"percent above 100", percentCoupon("BIG", 150)},
		{"window reversed", func() CreateCouponRequest {
			r := percentCoupon("WIN", 10)
			r.ValidFrom, r.ValidUntil = &now, &earlier
			return r
		}()},
		{"unknown type", func() CreateCouponRequest {
			r := percentCoupon("TYPE", 10)
			r.Type = 7
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCoupon(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestService_ApplyCoupon(t *testing.T) {
	svc, carts, observer, _ := newService(t)
	ctx := context.Background()
	userID := uuid.New()
	carts.On("DiscountedTotal", mock.Anything, userID).Return(decimal.NewFromInt(200), nil)

	req := percentCoupon("TEN", 10)
	minCart := decimal.NewFromInt(100)
	req.MinCart = &minCart
	_, err := svc.CreateCoupon(ctx, req)
	require.NoError(t, err)

	resp, err := svc.ApplyCoupon(ctx, userID, ApplyCouponRequest{Code: "TEN"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(resp.CouponDiscount))
	assert.True(t, decimal.NewFromInt(180).Equal(resp.TotalPrice))

	_, err = svc.ApplyCoupon(ctx, userID, ApplyCouponRequest{Code: "NOPE"})
	assert.ErrorIs(t, err, promotion.ErrInvalidCoupon)
	assert.Equal(t, []string{"NOPE"}, observer.codes)
}

func TestService_ApplyCoupon_BelowMinimum(t *testing.T) {
	svc, carts, _, _ := newService(t)
	ctx := context.Background()
	userID := uuid.New()
	carts.On("DiscountedTotal", mock.Anything, userID).Return(decimal.NewFromInt(50), nil)

	req := percentCoupon("TEN", 10)
	minCart := decimal.NewFromInt(100)
	req.MinCart = &minCart
	_, err := svc.CreateCoupon(ctx, req)
	require.NoError(t, err)

	_, err = svc.ApplyCoupon(ctx, userID, ApplyCouponRequest{Code: "TEN"})
	assert.ErrorIs(t, err, promotion.ErrCouponMinCart)
}

func TestService_ConsumeCoupon(t *testing.T) {
	svc, _, _, repo := newService(t)
	ctx := context.Background()
	buyer := uuid.New()

	req := percentCoupon("ONCE", 10)
	req.Total = 2
	created, err := svc.CreateCoupon(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeCoupon(ctx, buyer, created.ID, decimal.NewFromInt(10)))
	assert.ErrorIs(t, svc.ConsumeCoupon(ctx, buyer, created.ID, decimal.NewFromInt(10)), promotion.ErrCouponAlreadyUsed)

	require.NoError(t, svc.ConsumeCoupon(ctx, uuid.New(), created.ID, decimal.NewFromInt(10)))
	assert.ErrorIs(t, svc.ConsumeCoupon(ctx, uuid.New(), created.ID, decimal.NewFromInt(10)), promotion.ErrCouponUsageLimit)

	usage, err := repo.Usage(ctx, created.ID, buyer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.TotalConsumed)

	assert.ErrorIs(t, svc.ConsumeCoupon(ctx, buyer, uuid.New(), decimal.NewFromInt(10)), promotion.ErrInvalidCoupon)
}

func TestService_DeactivateCoupon(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateCoupon(ctx, percentCoupon("OFF", 10))
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateCoupon(ctx, created.ID))

	err = svc.ConsumeCoupon(ctx, uuid.New(), created.ID, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, promotion.ErrCouponInactive)

	page, err := svc.ListCoupons(ctx, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.Items[0].IsActive)
}
