package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func intPtr(v int) *int {
	return &v
}

func percentDiscount(amount int64) *ProductDiscount {
	return &ProductDiscount{Type: DiscountTypePercent, Amount: dec(amount), IsActive: true}
}

func amountDiscount(amount int64) *ProductDiscount {
	return &ProductDiscount{Type: DiscountTypeAmount, Amount: dec(amount), IsActive: true}
}

func offerTerms(percent int64, remaining *int) *OfferTerms {
	return &OfferTerms{OfferItemID: uuid.New(), DiscountPercent: dec(percent), Remaining: remaining}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name        string
		price       int64
		quantity    int
		offer       *OfferTerms
		discount    *ProductDiscount
		wantPercent int64
		wantTotal   int64
		wantUnit    int64
		wantOnOffer int
	}{
		{
			name: "no offer and no discount", price: 100, quantity: 2,
			wantPercent: 0, wantTotal: 200, wantUnit: 100,
		},
		{
			name: "percent discount", price: 100, quantity: 3, discount: percentDiscount(10),
			wantPercent: 10, wantTotal: 270, wantUnit: 90,
		},
		{
			name: "amount discount converted to percent", price: 100, quantity: 2, discount: amountDiscount(25),
			wantPercent: 25, wantTotal: 150, wantUnit: 75,
		},
		{
			name: "unlimited offer beats discount", price: 100, quantity: 2,
			offer: offerTerms(30, nil), discount: percentDiscount(10),
			wantPercent: 30, wantTotal: 140, wantUnit: 70, wantOnOffer: 2,
		},
		{
			name: "offer stock covers part of the quantity", price: 100, quantity: 3,
			offer: offerTerms(30, intPtr(1)), discount: percentDiscount(10),
			wantPercent: 30, wantTotal: 250, wantUnit: 70, wantOnOffer: 1,
		},
		{
			name: "weaker offer is ignored", price: 100, quantity: 2,
			offer: offerTerms(5, nil), discount: percentDiscount(10),
			wantPercent: 10, wantTotal: 180, wantUnit: 90,
		},
		{
			name: "offer alone", price: 200, quantity: 1, offer: offerTerms(50, intPtr(10)),
			wantPercent: 50, wantTotal: 100, wantUnit: 100, wantOnOffer: 1,
		},
		{
			name: "amount discount above price is capped at 100 percent", price: 100, quantity: 2, discount: amountDiscount(150),
			wantPercent: 100, wantTotal: 0, wantUnit: 0,
		},
		{
			name: "zero price", price: 0, quantity: 2, discount: percentDiscount(10),
			wantPercent: 0, wantTotal: 0, wantUnit: 0,
		},
		{
			name: "zero quantity", price: 100, quantity: 0, discount: percentDiscount(10),
			wantPercent: 0, wantTotal: 0, wantUnit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quote(dec(tt.price), tt.quantity, tt.offer, tt.discount)

			assert.True(t, dec(tt.wantPercent).Equal(q.DiscountPercent), "percent: got %s", q.DiscountPercent)
			assert.True(t, dec(tt.wantTotal).Equal(q.TotalWithDiscount), "total: got %s", q.TotalWithDiscount)
			assert.True(t, dec(tt.wantUnit).Equal(q.UnitFinalPrice), "unit: got %s", q.UnitFinalPrice)
			assert.Equal(t, tt.wantOnOffer, q.QuantityOnOffer)
		})
	}
}

func TestPriceQuote_TotalDiscount(t *testing.T) {
	q := Quote(dec(100), 3, nil, percentDiscount(10))
	assert.True(t, dec(30).Equal(q.TotalDiscount(dec(100), 3)))
}

func TestBestDiscount(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	expired := ProductDiscount{Type: DiscountTypePercent, Amount: dec(50), ActiveFrom: &past, ActiveUntil: &yesterday, IsActive: true}
	inactive := ProductDiscount{Type: DiscountTypePercent, Amount: dec(40), IsActive: false}
	future := ProductDiscount{Type: DiscountTypePercent, Amount: dec(30), ActiveFrom: &tomorrow, IsActive: true}
	openEnded := ProductDiscount{Type: DiscountTypePercent, Amount: dec(10), ActiveFrom: &yesterday, IsActive: true}

	t.Run("picks the running discount", func(t *testing.T) {
		got := BestDiscount([]ProductDiscount{expired, inactive, future, openEnded}, now)
		if assert.NotNil(t, got) {
			assert.True(t, dec(10).Equal(got.Amount))
		}
	})

	t.Run("nil when nothing runs", func(t *testing.T) {
		assert.Nil(t, BestDiscount([]ProductDiscount{expired, inactive, future}, now))
	})
}
