package discountrule

import (
	"time"

	"github.com/shopora/shopora/internal/types"
	"github.com/shopspring/decimal"
)

// ProductDiscountRule is an admin-managed automatic discount. The
// engine treats rules as read-only and always re-resolves the best
// applicable rule from scratch.
type ProductDiscountRule struct {
	ID      string              `json:"id" db:"id"`
	Name    string              `json:"name" db:"name"`
	Scope   types.DiscountScope `json:"scope" db:"scope"`
	Kind    types.DiscountKind  `json:"kind" db:"kind"`
	Value   decimal.Decimal     `json:"value" db:"value"`
	StartAt time.Time           `json:"start_at" db:"start_at"`
	EndAt   *time.Time          `json:"end_at" db:"end_at"`

	types.BaseModel
}

// IsActiveAt reports whether the rule's window contains the instant and
// the rule is published.
func (r *ProductDiscountRule) IsActiveAt(now time.Time) bool {
	if r.Status != types.StatusPublished {
		return false
	}
	if now.Before(r.StartAt) {
		return false
	}
	if r.EndAt != nil && now.After(*r.EndAt) {
		return false
	}
	return true
}

// CandidateAmount computes the per-unit discount this rule would grant
// on the given unit price. Percent rules scale with the price; fixed
// rules return the configured value. Flooring at zero happens when the
// final price is composed, not here.
func (r *ProductDiscountRule) CandidateAmount(price decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case types.DiscountKindPercent:
		return price.Mul(r.Value).Div(decimal.NewFromInt(100))
	case types.DiscountKindFixed:
		return r.Value
	}
	return decimal.Zero
}
