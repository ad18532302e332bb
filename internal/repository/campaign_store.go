package repository

import (
	"context"
	"sync"

	"github.com/shopora/shopora/internal/domain/campaign"
	ierr "github.com/shopora/shopora/internal/errors"
)

// InMemoryCampaignStore implements campaign.Repository
type InMemoryCampaignStore struct {
	*InMemoryStore[*campaign.VoucherCampaign]

	grantMu sync.Mutex
	grants  map[string]map[string]int
}

// NewInMemoryCampaignStore creates a new in-memory campaign store
func NewInMemoryCampaignStore() *InMemoryCampaignStore {
	return &InMemoryCampaignStore{
		InMemoryStore: NewInMemoryStore[*campaign.VoucherCampaign](),
		grants:        make(map[string]map[string]int),
	}
}

func copyCampaign(c *campaign.VoucherCampaign) *campaign.VoucherCampaign {
	if c == nil {
		return nil
	}
	copied := *c
	if c.EndAt != nil {
		end := *c.EndAt
		copied.EndAt = &end
	}
	return &copied
}

func (s *InMemoryCampaignStore) Create(ctx context.Context, c *campaign.VoucherCampaign) error {
	if c == nil {
		return ierr.NewError("campaign cannot be nil").
			WithHint("Campaign cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCampaign(c))
}

func (s *InMemoryCampaignStore) Get(ctx context.Context, id string) (*campaign.VoucherCampaign, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("campaign not found").
			WithHint("Campaign not found").
			WithReportableDetails(map[string]any{"campaign_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyCampaign(c), nil
}

func (s *InMemoryCampaignStore) Update(ctx context.Context, c *campaign.VoucherCampaign) error {
	if c == nil {
		return ierr.NewError("campaign cannot be nil").
			WithHint("Campaign cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCampaign(c))
}

// IncrementCollected consumes one grant against the campaign cap. The
// cap check and the increment share the store's write lock, which is
// what makes the issuance bound hold under concurrent claims.
func (s *InMemoryCampaignStore) IncrementCollected(ctx context.Context, id string) error {
	return s.WithLock(func(items map[string]*campaign.VoucherCampaign) error {
		c, exists := items[id]
		if !exists {
			return ierr.NewError("campaign not found").
				WithHint("Campaign not found").
				WithReportableDetails(map[string]any{"campaign_id": id}).
				Mark(ierr.ErrNotFound)
		}
		if total := c.TotalVouchers(); total > 0 && c.CollectedCount >= total {
			return ierr.NewError("campaign vouchers exhausted").
				WithHint("All vouchers in this campaign have been claimed").
				WithReportableDetails(map[string]any{
					"campaign_id":    id,
					"total_vouchers": total,
				}).
				Mark(ierr.ErrCampaignExhausted)
		}
		c.CollectedCount++
		return nil
	})
}

// CountGrants reports how many grants a user holds from a campaign
func (s *InMemoryCampaignStore) CountGrants(ctx context.Context, id string, userID string) (int, error) {
	s.grantMu.Lock()
	defer s.grantMu.Unlock()

	if byUser, exists := s.grants[id]; exists {
		return byUser[userID], nil
	}
	return 0, nil
}

// RecordGrant consumes one per-user allowance. The cap check and the
// increment happen under one lock so two concurrent claims by the
// same user cannot both slip past the limit.
func (s *InMemoryCampaignStore) RecordGrant(ctx context.Context, id string, userID string, maxPerUser int) error {
	s.grantMu.Lock()
	defer s.grantMu.Unlock()

	if _, exists := s.grants[id]; !exists {
		s.grants[id] = make(map[string]int)
	}
	if maxPerUser > 0 && s.grants[id][userID] >= maxPerUser {
		return ierr.NewError("per-user limit reached").
			WithHint("You have already reached the limit for this campaign").
			WithReportableDetails(map[string]any{
				"campaign_id":  id,
				"max_per_user": maxPerUser,
			}).
			Mark(ierr.ErrUserLimitReached)
	}
	s.grants[id][userID]++
	return nil
}

func (s *InMemoryCampaignStore) ReleaseGrant(ctx context.Context, id string, userID string) error {
	s.grantMu.Lock()
	defer s.grantMu.Unlock()

	if byUser, exists := s.grants[id]; exists && byUser[userID] > 0 {
		byUser[userID]--
	}
	return nil
}

// Clear removes all campaigns and grant records
func (s *InMemoryCampaignStore) Clear() {
	s.InMemoryStore.Clear()
	s.grantMu.Lock()
	defer s.grantMu.Unlock()
	s.grants = make(map[string]map[string]int)
}
