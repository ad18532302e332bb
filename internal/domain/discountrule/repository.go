package discountrule

import (
	"context"
	"time"
)

// Repository defines the interface for discount rule data access
type Repository interface {
	Create(ctx context.Context, rule *ProductDiscountRule) error
	Get(ctx context.Context, id string) (*ProductDiscountRule, error)
	// ActiveRules returns the published rules whose window contains now
	ActiveRules(ctx context.Context, now time.Time) ([]*ProductDiscountRule, error)
	Update(ctx context.Context, rule *ProductDiscountRule) error
	Delete(ctx context.Context, id string) error
}
