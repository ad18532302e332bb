package dto

import (
	"encoding/json"
	"time"

	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/voucher"
	"github.com/shopora/shopora/internal/types"
	"github.com/shopora/shopora/internal/validator"
)

// CreateCampaignRequest creates a bounded voucher campaign. Config is
// the raw rule blob matching the campaign type.
type CreateCampaignRequest struct {
	Name    string             `json:"name" validate:"required"`
	Type    types.CampaignType `json:"type" validate:"required,oneof=flash_sale lucky_wheel"`
	StartAt time.Time          `json:"start_at" validate:"required"`
	EndAt   *time.Time         `json:"end_at,omitempty"`
	Config  json.RawMessage    `json:"config" validate:"required"`
}

func (r *CreateCampaignRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToCampaign converts the request to a domain campaign, parsing the
// config blob against the campaign type.
func (r *CreateCampaignRequest) ToCampaign() (*campaign.VoucherCampaign, error) {
	cfg, err := types.ParseCampaignConfig(r.Type, r.Config)
	if err != nil {
		return nil, err
	}
	return &campaign.VoucherCampaign{
		Name:    r.Name,
		Type:    r.Type,
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Config:  cfg,
	}, nil
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	*campaign.VoucherCampaign
}

// NewCampaignResponse builds a campaign response
func NewCampaignResponse(c *campaign.VoucherCampaign) *CampaignResponse {
	return &CampaignResponse{VoucherCampaign: c}
}

// SpinResponse reports a lucky wheel outcome
type SpinResponse struct {
	EntryIndex int                  `json:"entry_index"`
	IsLucky    bool                 `json:"is_lucky"`
	Voucher    *voucher.UserVoucher `json:"voucher,omitempty"`
}
