package campaign

import "context"

// Repository defines the interface for campaign data access.
// IncrementCollected must be atomic against the campaign cap so
// concurrent grants cannot oversell the drop.
type Repository interface {
	Create(ctx context.Context, campaign *VoucherCampaign) error
	Get(ctx context.Context, id string) (*VoucherCampaign, error)
	Update(ctx context.Context, campaign *VoucherCampaign) error
	// IncrementCollected consumes one grant, failing when the campaign
	// cap is already reached
	IncrementCollected(ctx context.Context, id string) error
	// RecordGrant consumes one per-user allowance, failing when the
	// user already holds maxPerUser grants. The cap check and the
	// increment must be atomic. A maxPerUser of zero or less means
	// unlimited.
	RecordGrant(ctx context.Context, id string, userID string, maxPerUser int) error
	// ReleaseGrant hands back one previously recorded allowance
	ReleaseGrant(ctx context.Context, id string, userID string) error
}
