package shipping

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopora/shopora/internal/config"
	domain "github.com/shopora/shopora/internal/domain/shipping"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/httpclient"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopspring/decimal"
)

// HTTPFeeProvider resolves shipping fees from the external logistics
// service. A 404 from the service means the ward has no configured fee
// and is reported as a nil fee, not an error.
type HTTPFeeProvider struct {
	client  httpclient.Client
	baseURL string
	logger  *logger.Logger
}

type feeResponse struct {
	Fee *decimal.Decimal `json:"fee"`
}

func NewHTTPFeeProvider(cfg *config.Configuration, log *logger.Logger) domain.FeeProvider {
	return &HTTPFeeProvider{
		client:  httpclient.NewClientWithTimeout(cfg.Shipping.Timeout),
		baseURL: cfg.Shipping.ServiceURL,
		logger:  log,
	}
}

func (p *HTTPFeeProvider) FeeFor(ctx context.Context, wardCode string) (*decimal.Decimal, error) {
	resp, err := p.client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    p.baseURL + "/fees/" + wardCode,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ierr.NewError("shipping fee lookup failed").
			WithHint("Shipping service returned an unexpected status").
			WithReportableDetails(map[string]any{
				"status":    resp.StatusCode,
				"ward_code": wardCode,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	var body feeResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Shipping service returned an invalid response").
			Mark(ierr.ErrHTTPClient)
	}

	return body.Fee, nil
}
