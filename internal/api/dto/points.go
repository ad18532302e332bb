package dto

import (
	"github.com/shopora/shopora/internal/domain/points"
	"github.com/shopora/shopora/internal/validator"
)

// PointsBalanceResponse represents a points balance in API responses
type PointsBalanceResponse struct {
	*points.UserPointsBalance
}

// PointsLedgerResponse lists a user's points mutations
type PointsLedgerResponse struct {
	Items []*points.LedgerEntry `json:"items"`
	Total int                   `json:"total"`
}

// CreditPointsRequest credits points to a user, used by check-in and
// reward flows
type CreditPointsRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required"`
}

func (r *CreditPointsRequest) Validate() error {
	return validator.ValidateRequest(r)
}
