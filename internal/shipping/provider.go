package shipping

import (
	"github.com/shopora/shopora/internal/config"
	domain "github.com/shopora/shopora/internal/domain/shipping"
	"github.com/shopora/shopora/internal/logger"
)

// NewFeeProvider picks the fee source for the deployment: the external
// logistics service when configured, an in-process table otherwise.
func NewFeeProvider(cfg *config.Configuration, log *logger.Logger) domain.FeeProvider {
	if cfg.Shipping.ServiceURL != "" {
		return NewHTTPFeeProvider(cfg, log)
	}
	return NewStaticFeeProvider()
}
