package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shopora/shopora/internal/domain/points"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// InMemoryPointsStore implements points.Repository. Balance mutation
// and ledger append happen in one critical section so the ledger sum
// always matches the balance.
type InMemoryPointsStore struct {
	mu       sync.RWMutex
	balances map[string]*points.UserPointsBalance
	ledger   []*points.LedgerEntry
}

// NewInMemoryPointsStore creates a new in-memory points store
func NewInMemoryPointsStore() *InMemoryPointsStore {
	return &InMemoryPointsStore{
		balances: make(map[string]*points.UserPointsBalance),
	}
}

func (s *InMemoryPointsStore) Balance(ctx context.Context, userID string) (*points.UserPointsBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, exists := s.balances[userID]; exists {
		copied := *b
		return &copied, nil
	}

	// A user without history simply has zero points
	return &points.UserPointsBalance{UserID: userID}, nil
}

func (s *InMemoryPointsStore) Deduct(ctx context.Context, userID string, amount int64, reason string, orderID string) error {
	if amount <= 0 {
		return ierr.NewError("deduction amount must be positive").
			WithHint("Points deduction must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.balances[userID]
	if !exists || b.TotalPoints < amount {
		var have int64
		if exists {
			have = b.TotalPoints
		}
		return ierr.NewError("insufficient points").
			WithHint("Points balance cannot cover the requested deduction").
			WithReportableDetails(map[string]any{
				"requested": amount,
				"balance":   have,
			}).
			Mark(ierr.ErrInsufficientPoints)
	}

	b.TotalPoints -= amount
	b.LastUpdated = time.Now().UTC()
	s.appendEntry(userID, -amount, reason, orderID)
	return nil
}

func (s *InMemoryPointsStore) Credit(ctx context.Context, userID string, amount int64, reason string) error {
	if amount <= 0 {
		return ierr.NewError("credit amount must be positive").
			WithHint("Points credit must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.balances[userID]
	if !exists {
		b = &points.UserPointsBalance{UserID: userID}
		s.balances[userID] = b
	}
	b.TotalPoints += amount
	b.LifetimePoints += amount
	b.LastUpdated = time.Now().UTC()
	s.appendEntry(userID, amount, reason, "")
	return nil
}

func (s *InMemoryPointsStore) Ledger(ctx context.Context, userID string) ([]*points.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*points.LedgerEntry
	for _, e := range s.ledger {
		if e.UserID == userID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

// Clear removes all balances and ledger entries
func (s *InMemoryPointsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = make(map[string]*points.UserPointsBalance)
	s.ledger = nil
}

func (s *InMemoryPointsStore) appendEntry(userID string, amount int64, reason string, orderID string) {
	s.ledger = append(s.ledger, &points.LedgerEntry{
		ID:        types.GenerateUUIDWithPrefix("pts"),
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		OrderID:   orderID,
		CreatedAt: time.Now().UTC(),
	})
}
