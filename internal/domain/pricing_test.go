package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pricingWindow() (start, end, inside, before, after time.Time) {
	start = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	inside = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	before = time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC)
	after = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return
}

func linkWithPromotion(value int64, isActive bool) *PromotionLink {
	start, end, _, _, _ := pricingWindow()
	return &PromotionLink{
		PromotionID: 1,
		ProductID:   1,
		Promotion: &Promotion{
			ID:        1,
			Kind:      DiscountPercentage,
			Value:     value,
			StartDate: start,
			EndDate:   end,
			IsActive:  isActive,
		},
	}
}

func TestEffectivePrice(t *testing.T) {
	_, _, inside, before, after := pricingWindow()
	product := &Product{ID: 1, Price: 999, Status: ProductListed}

	tests := []struct {
		name         string
		link         *PromotionLink
		now          time.Time
		wantDiscount *int64
	}{
		{"no link", nil, inside, nil},
		{"link without promotion", &PromotionLink{PromotionID: 1, ProductID: 1}, inside, nil},
		{"inactive promotion", linkWithPromotion(10, false), inside, nil},
		{"before window", linkWithPromotion(10, true), before, nil},
		{"after window", linkWithPromotion(10, true), after, nil},
		// ceil(999 * 10 / 100) = ceil(99.9) = 100
		{"active promotion rounds up", linkWithPromotion(10, true), inside, ptr(int64(100))},
		// ceil(999 * 100 / 100) = 999
		{"hundred percent keeps full price", linkWithPromotion(100, true), inside, ptr(int64(999))},
		// ceil(999 * 1 / 100) = 10
		{"one percent", linkWithPromotion(1, true), inside, ptr(int64(10))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, discount := EffectivePrice(product, tt.link, tt.now)
			assert.Equal(t, int64(999), price)
			if tt.wantDiscount == nil {
				assert.Nil(t, discount)
			} else {
				require.NotNil(t, discount)
				assert.Equal(t, *tt.wantDiscount, *discount)
			}
		})
	}

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		start, end, _, _, _ := pricingWindow()
		link := linkWithPromotion(10, true)
		for _, now := range []time.Time{start, end} {
			_, discount := EffectivePrice(product, link, now)
			assert.NotNil(t, discount)
		}
	})
}

func TestChargedPrice(t *testing.T) {
	_, _, inside, _, _ := pricingWindow()
	product := &Product{ID: 1, Price: 999, Status: ProductListed}

	assert.Equal(t, int64(999), ChargedPrice(product, nil, inside))
	assert.Equal(t, int64(100), ChargedPrice(product, linkWithPromotion(10, true), inside))
}

func TestEffectivePriceProperties(t *testing.T) {
	_, _, inside, _, _ := pricingWindow()

	rapid.Check(t, func(t *rapid.T) {
		price := rapid.Int64Range(0, 1_000_000_00).Draw(t, "price")
		value := rapid.Int64Range(1, 100).Draw(t, "value")

		product := &Product{ID: 1, Price: price, Status: ProductListed}
		full, discount := EffectivePrice(product, linkWithPromotion(value, true), inside)

		require.Equal(t, price, full)
		require.NotNil(t, discount)

		// Скидочная цена — это ceil от точного произведения.
		exact := price * value
		expected := exact / 100
		if exact%100 != 0 {
			expected++
		}
		require.Equal(t, expected, *discount)

		require.GreaterOrEqual(t, *discount, int64(0))
		require.LessOrEqual(t, *discount, price)
		if price > 0 {
			// Округление вверх не даёт нулевой цены при ненулевой полной.
			require.Greater(t, *discount, int64(0))
		}
	})
}

func ptr[T any](v T) *T { return &v }
