package points

import "time"

// UserPointsBalance is a user's loyalty points account
type UserPointsBalance struct {
	UserID         string    `json:"user_id" db:"user_id"`
	TotalPoints    int64     `json:"total_points" db:"total_points"`
	LifetimePoints int64     `json:"lifetime_points" db:"lifetime_points"`
	LastUpdated    time.Time `json:"last_updated" db:"last_updated"`
}

// LedgerEntry records a points mutation for auditability
type LedgerEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Reason    string    `json:"reason" db:"reason"`
	OrderID   string    `json:"order_id" db:"order_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
