package promotion

import "context"

// Repository defines the interface for promotion data access
type Repository interface {
	Create(ctx context.Context, promotion *Promotion) error
	Get(ctx context.Context, id string) (*Promotion, error)
	Update(ctx context.Context, promotion *Promotion) error
	Delete(ctx context.Context, id string) error
}

// CodeRepository defines the interface for promotion code data access.
// IncrementUsage must be atomic: concurrent checkouts racing on the
// last remaining use of a shared code are serialized here.
type CodeRepository interface {
	Create(ctx context.Context, code *PromotionCode) error
	Get(ctx context.Context, id string) (*PromotionCode, error)
	// ByCode resolves a published code by its raw string
	ByCode(ctx context.Context, code string) (*PromotionCode, error)
	Update(ctx context.Context, code *PromotionCode) error
	// IncrementUsage consumes one use, failing when the usage limit is
	// already reached
	IncrementUsage(ctx context.Context, id string) error
}

// GiftRepository defines the interface for gift configuration access
type GiftRepository interface {
	Create(ctx context.Context, gift *PromotionGift) error
	// GiftConfig returns the gift configuration for a promotion, or a
	// not-found error when the promotion has none
	GiftConfig(ctx context.Context, promotionID string) (*PromotionGift, error)
	Update(ctx context.Context, gift *PromotionGift) error
}
