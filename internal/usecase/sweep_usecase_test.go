package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweepFixture() (*SweepUseCase, *fakePromotionRepo, *fakeTokenRepo, *fakeTransactional) {
	promotionRepo := newFakePromotionRepo()
	tokenRepo := newFakeTokenRepo()
	pool := &fakeTransactional{}
	uc := NewSweepUC(promotionRepo, tokenRepo, pool, nopLogger{})
	uc.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return uc, promotionRepo, tokenRepo, pool
}

func expiredPromotion(id int64) *domain.Promotion {
	return &domain.Promotion{
		ID:        id,
		Kind:      domain.DiscountPercentage,
		Value:     10,
		StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestSweepUseCase_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates expired promotions and drops their links", func(t *testing.T) {
		uc, promotionRepo, _, pool := newSweepFixture()
		promotionRepo.promotions[1] = expiredPromotion(1)
		promotionRepo.links[1] = 3
		live := activePromotion(20)
		live.ID = 2
		promotionRepo.promotions[2] = live

		report, err := uc.RunOnce(ctx)
		require.NoError(t, err)

		assert.Equal(t, []int64{1}, report.PromotionsDeactivated)
		assert.False(t, promotionRepo.promotions[1].IsActive)
		assert.NotContains(t, promotionRepo.links, int64(1))
		assert.True(t, promotionRepo.promotions[2].IsActive)
		assert.True(t, pool.lastTx().committed)
	})

	t.Run("second pass finds nothing", func(t *testing.T) {
		uc, promotionRepo, _, _ := newSweepFixture()
		promotionRepo.promotions[1] = expiredPromotion(1)

		_, err := uc.RunOnce(ctx)
		require.NoError(t, err)

		report, err := uc.RunOnce(ctx)
		require.NoError(t, err)
		assert.Empty(t, report.PromotionsDeactivated)
		assert.Zero(t, report.TokensPurged)
	})

	t.Run("purges expired reset tokens", func(t *testing.T) {
		uc, _, tokenRepo, _ := newSweepFixture()
		require.NoError(t, tokenRepo.Create(ctx, &domain.PasswordResetToken{
			MemberID:  7,
			Token:     "stale",
			ExpiresAt: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		}))
		require.NoError(t, tokenRepo.Create(ctx, &domain.PasswordResetToken{
			MemberID:  7,
			Token:     "fresh",
			ExpiresAt: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		}))

		report, err := uc.RunOnce(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1), report.TokensPurged)
		assert.NotContains(t, tokenRepo.tokens, "stale")
		assert.Contains(t, tokenRepo.tokens, "fresh")
	})

	t.Run("one failing promotion does not stop the rest", func(t *testing.T) {
		uc, promotionRepo, _, _ := newSweepFixture()
		promotionRepo.promotions[1] = expiredPromotion(1)
		promotionRepo.promotions[2] = expiredPromotion(2)
		promotionRepo.deactivateErr[1] = errors.New("boom")

		report, err := uc.RunOnce(ctx)
		require.NoError(t, err)

		assert.Equal(t, []int64{2}, report.PromotionsDeactivated)
		assert.True(t, promotionRepo.promotions[1].IsActive)
		assert.False(t, promotionRepo.promotions[2].IsActive)
	})

	t.Run("token purge failure does not fail the pass", func(t *testing.T) {
		uc, _, tokenRepo, _ := newSweepFixture()
		tokenRepo.delErr = errors.New("boom")

		report, err := uc.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.TokensPurged)
	})
}
