package shipping

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeeProvider looks up the base shipping fee for a ward. A nil fee
// means no fee is configured for the region and checkout must surface
// ErrShippingUnavailable. The lookup is a blocking external call; the
// caller's context carries the timeout.
type FeeProvider interface {
	FeeFor(ctx context.Context, wardCode string) (*decimal.Decimal, error)
}
