package shipping

import (
	"context"
	"sync"

	domain "github.com/shopora/shopora/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// StaticFeeProvider serves fees from an in-process table. Used when no
// external shipping service is configured, and by tests.
type StaticFeeProvider struct {
	mu   sync.RWMutex
	fees map[string]decimal.Decimal
}

func NewStaticFeeProvider() *StaticFeeProvider {
	return &StaticFeeProvider{fees: make(map[string]decimal.Decimal)}
}

// SetFee configures the fee for a ward
func (p *StaticFeeProvider) SetFee(wardCode string, fee decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fees[wardCode] = fee
}

func (p *StaticFeeProvider) FeeFor(_ context.Context, wardCode string) (*decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fee, ok := p.fees[wardCode]
	if !ok {
		return nil, nil
	}
	return &fee, nil
}

var _ domain.FeeProvider = (*StaticFeeProvider)(nil)
