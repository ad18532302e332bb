package voucher

import (
	"time"

	"github.com/shopora/shopora/internal/types"
)

// UserVoucher is a user-held, single-use instance of a promotion code.
// Once IsUsed is set the voucher is permanently bound to exactly one
// order; payment failure never rolls it back.
type UserVoucher struct {
	ID string `json:"id" db:"id"`

	// Code is the human-facing serial stamped when the voucher is
	// issued; redemption goes through CodeID.
	Code string `json:"code" db:"code"`

	UserID string `json:"user_id" db:"user_id"`
	CodeID string `json:"code_id" db:"code_id"`

	CollectedAt time.Time  `json:"collected_at" db:"collected_at"`
	ExpiresAt   *time.Time `json:"expires_at" db:"expires_at"`

	IsUsed  bool       `json:"is_used" db:"is_used"`
	UsedAt  *time.Time `json:"used_at" db:"used_at"`
	OrderID string     `json:"order_id" db:"order_id"`

	Source types.VoucherSource `json:"source" db:"source"`

	types.BaseModel
}

// IsAvailableAt reports whether the voucher can still be applied
func (v *UserVoucher) IsAvailableAt(now time.Time) bool {
	if v.IsUsed {
		return false
	}
	if v.ExpiresAt != nil && now.After(*v.ExpiresAt) {
		return false
	}
	return true
}
