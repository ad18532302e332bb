package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/cart"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/voucher"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotionCodeIncrementUsage(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryPromotionCodeStore()

	code := &promotion.PromotionCode{
		ID:          "code_1",
		Code:        "LAST2",
		PromotionID: "promo_1",
		Value:       decimal.NewFromInt(10000),
		UsageLimit:  lo.ToPtr(2),
		BaseModel:   types.BaseModel{Status: types.StatusPublished},
	}
	require.NoError(t, store.Create(ctx, code))

	require.NoError(t, store.IncrementUsage(ctx, "code_1"))
	require.NoError(t, store.IncrementUsage(ctx, "code_1"))

	// The third consumption hits the limit
	err := store.IncrementUsage(ctx, "code_1")
	assert.True(t, ierr.Is(err, ierr.ErrUsageLimitExceeded))

	stored, err := store.Get(ctx, "code_1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestPromotionCodeByCode(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryPromotionCodeStore()

	require.NoError(t, store.Create(ctx, &promotion.PromotionCode{
		ID:        "code_1",
		Code:      "HELLO",
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	}))
	require.NoError(t, store.Create(ctx, &promotion.PromotionCode{
		ID:        "code_2",
		Code:      "GONE",
		BaseModel: types.BaseModel{Status: types.StatusArchived},
	}))

	found, err := store.ByCode(ctx, "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "code_1", found.ID)

	// Archived codes resolve the same as unknown ones
	_, err = store.ByCode(ctx, "GONE")
	assert.True(t, ierr.Is(err, ierr.ErrInvalidCode))
	_, err = store.ByCode(ctx, "NOPE")
	assert.True(t, ierr.Is(err, ierr.ErrInvalidCode))
}

func TestVoucherMarkUsedIsFinal(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVoucherStore()
	now := time.Now().UTC()

	uv := &voucher.UserVoucher{
		ID:          "uvch_1",
		UserID:      "user_1",
		CodeID:      "code_1",
		CollectedAt: now,
		BaseModel:   types.BaseModel{Status: types.StatusPublished},
	}
	require.NoError(t, store.Create(ctx, uv))

	require.NoError(t, store.MarkUsed(ctx, "uvch_1", "ord_1"))

	stored, err := store.Get(ctx, "uvch_1")
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
	assert.Equal(t, "ord_1", stored.OrderID)
	assert.NotNil(t, stored.UsedAt)

	// The binding never moves to another order
	err = store.MarkUsed(ctx, "uvch_1", "ord_2")
	assert.True(t, ierr.Is(err, ierr.ErrInvalidOperation))

	available, err := store.Available(ctx, "user_1", now)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestCampaignIncrementCollected(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCampaignStore()

	c := &campaign.VoucherCampaign{
		ID:      "camp_1",
		Name:    "Flash",
		Type:    types.CampaignTypeFlashSale,
		StartAt: time.Now().UTC(),
		Config: &types.CampaignConfig{
			FlashSale: &types.FlashSaleConfig{TotalVouchers: 2},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	}
	require.NoError(t, store.Create(ctx, c))

	require.NoError(t, store.IncrementCollected(ctx, "camp_1"))
	require.NoError(t, store.IncrementCollected(ctx, "camp_1"))

	err := store.IncrementCollected(ctx, "camp_1")
	assert.True(t, ierr.Is(err, ierr.ErrCampaignExhausted))
}

func TestCampaignGrantCounting(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCampaignStore()

	count, err := store.CountGrants(ctx, "camp_1", "user_1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// A cap of zero means unlimited
	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_1", 0))
	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_1", 0))
	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_2", 0))

	count, err = store.CountGrants(ctx, "camp_1", "user_1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCampaignRecordGrantEnforcesCap(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCampaignStore()

	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_1", 2))
	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_1", 2))

	err := store.RecordGrant(ctx, "camp_1", "user_1", 2)
	assert.True(t, ierr.Is(err, ierr.ErrUserLimitReached))

	// Releasing an allowance makes room again
	require.NoError(t, store.ReleaseGrant(ctx, "camp_1", "user_1"))
	require.NoError(t, store.RecordGrant(ctx, "camp_1", "user_1", 2))

	count, err := store.CountGrants(ctx, "camp_1", "user_1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCampaignRecordGrantConcurrentCap(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCampaignStore()

	var wg sync.WaitGroup
	var granted int32
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.RecordGrant(ctx, "camp_1", "user_1", 1); err == nil {
				atomic.AddInt32(&granted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), granted)

	count, err := store.CountGrants(ctx, "camp_1", "user_1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCartStoreIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryCartStore()

	state := cart.CartState{
		Items: []cart.CartLineItem{
			{ProductID: "prod_1", Quantity: 1, Price: decimal.NewFromInt(1000)},
		},
	}
	require.NoError(t, store.Set(ctx, "sess_a", state))

	// Mutating the caller's copy must not leak into the store
	state.Items[0].Quantity = 99
	stored, err := store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Items[0].Quantity)

	other, err := store.Get(ctx, "sess_b")
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	require.NoError(t, store.Delete(ctx, "sess_a"))
	cleared, err := store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
}
