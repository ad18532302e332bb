package points

import "context"

// Repository defines the interface for loyalty points data access
type Repository interface {
	Balance(ctx context.Context, userID string) (*UserPointsBalance, error)
	// Deduct removes points from the balance and writes a ledger entry.
	// Fails when the balance cannot cover the amount.
	Deduct(ctx context.Context, userID string, amount int64, reason string, orderID string) error
	// Credit adds points, used by check-in and reward flows
	Credit(ctx context.Context, userID string, amount int64, reason string) error
	Ledger(ctx context.Context, userID string) ([]*LedgerEntry, error)
}
