package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shopora/shopora/internal/domain/points"
	ierr "github.com/shopora/shopora/internal/errors"
)

// PointsService exposes the loyalty balance and decides how many
// points a checkout may redeem. The actual deduction lives in the
// order flow; this service only reads and caps.
type PointsService interface {
	Balance(ctx context.Context, userID string) (*points.UserPointsBalance, error)
	Ledger(ctx context.Context, userID string) ([]*points.LedgerEntry, error)
	Credit(ctx context.Context, userID string, amount int64, reason string) error

	// MaxRedeemable returns the largest whole number of points the user
	// could apply against the given payable remainder.
	MaxRedeemable(ctx context.Context, userID string, remainder decimal.Decimal) (int64, error)
}

type pointsService struct {
	ServiceParams
}

// NewPointsService creates a new points service
func NewPointsService(params ServiceParams) PointsService {
	return &pointsService{ServiceParams: params}
}

func (s *pointsService) Balance(ctx context.Context, userID string) (*points.UserPointsBalance, error) {
	return s.PointsRepo.Balance(ctx, userID)
}

func (s *pointsService) Ledger(ctx context.Context, userID string) ([]*points.LedgerEntry, error) {
	return s.PointsRepo.Ledger(ctx, userID)
}

func (s *pointsService) Credit(ctx context.Context, userID string, amount int64, reason string) error {
	if amount <= 0 {
		return ierr.NewError("credit amount must be positive").
			WithHint("Points credit must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if err := s.PointsRepo.Credit(ctx, userID, amount, reason); err != nil {
		return err
	}
	s.Logger.Infow("points credited", "user_id", userID, "amount", amount, "reason", reason)
	return nil
}

func (s *pointsService) MaxRedeemable(ctx context.Context, userID string, remainder decimal.Decimal) (int64, error) {
	if remainder.Sign() <= 0 {
		return 0, nil
	}

	balance, err := s.PointsRepo.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}

	rate := s.Config.Checkout.PointsRate()

	// Whole points only: the cap floors the remainder down to the
	// nearest full point's worth of currency.
	byRemainder := remainder.Div(rate).IntPart()
	if balance.TotalPoints < byRemainder {
		return balance.TotalPoints, nil
	}
	return byRemainder, nil
}
