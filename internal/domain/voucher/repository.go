package voucher

import (
	"context"
	"time"
)

// Repository defines the interface for user voucher data access
type Repository interface {
	Create(ctx context.Context, voucher *UserVoucher) error
	Get(ctx context.Context, id string) (*UserVoucher, error)
	// Available lists the user's unused, unexpired vouchers
	Available(ctx context.Context, userID string, now time.Time) ([]*UserVoucher, error)
	// CountByUserAndSource counts vouchers a user collected from one
	// source, used to enforce per-user campaign caps
	CountByUserAndSource(ctx context.Context, userID string, source string) (int, error)
	// MarkUsed binds the voucher to an order. Fails when the voucher is
	// already used; the binding is never undone.
	MarkUsed(ctx context.Context, id string, orderID string) error
}
