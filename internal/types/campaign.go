package types

import (
	"encoding/json"

	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopspring/decimal"
)

// CampaignType discriminates bounded-issuance voucher campaigns
type CampaignType string

const (
	CampaignTypeFlashSale  CampaignType = "flash_sale"
	CampaignTypeLuckyWheel CampaignType = "lucky_wheel"
)

// FlashSaleConfig bounds a first-come-first-served voucher drop
type FlashSaleConfig struct {
	TotalVouchers int    `json:"total_vouchers"`
	MaxPerUser    int    `json:"max_per_user"`
	CodeID        string `json:"code_id"`
}

// WheelEntry is one slice of a lucky wheel. Weight is relative to the
// sum of all entry weights. Entries with IsLucky=false are "no win"
// slices and carry no voucher code.
type WheelEntry struct {
	Weight  decimal.Decimal `json:"weight"`
	CodeID  string          `json:"code_id,omitempty"`
	IsLucky bool            `json:"is_lucky"`
}

// LuckyWheelConfig bounds a weighted-random voucher wheel
type LuckyWheelConfig struct {
	SpinsPerUser int          `json:"spins_per_user"`
	Entries      []WheelEntry `json:"entries"`
}

// CampaignConfig is the tagged variant of a campaign's rule blob. The
// raw JSON stored on a campaign is parsed exactly once at load; request
// paths only ever see the parsed form.
type CampaignConfig struct {
	FlashSale  *FlashSaleConfig  `json:"flash_sale,omitempty"`
	LuckyWheel *LuckyWheelConfig `json:"lucky_wheel,omitempty"`
}

// ParseCampaignConfig decodes a raw campaign config blob into the
// variant matching the campaign type. The parsed config is validated
// so a campaign that cannot dispense anything is rejected at the door.
func ParseCampaignConfig(campaignType CampaignType, raw []byte) (*CampaignConfig, error) {
	var parsed *CampaignConfig
	switch campaignType {
	case CampaignTypeFlashSale:
		var cfg FlashSaleConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		parsed = &CampaignConfig{FlashSale: &cfg}
	case CampaignTypeLuckyWheel:
		var cfg LuckyWheelConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
		parsed = &CampaignConfig{LuckyWheel: &cfg}
	default:
		return nil, ierr.NewError("unknown campaign type").
			WithHint("Campaign type must be flash_sale or lucky_wheel").
			WithReportableDetails(map[string]any{"type": campaignType}).
			Mark(ierr.ErrValidation)
	}
	if err := parsed.Validate(); err != nil {
		return nil, err
	}
	return parsed, nil
}

// Validate rejects configs the dispenser could not act on
func (c *CampaignConfig) Validate() error {
	switch {
	case c.FlashSale != nil:
		if c.FlashSale.CodeID == "" {
			return ierr.NewError("flash sale config has no code").
				WithHint("Flash sale campaigns must reference a promotion code").
				Mark(ierr.ErrValidation)
		}
	case c.LuckyWheel != nil:
		if len(c.LuckyWheel.Entries) == 0 {
			return ierr.NewError("lucky wheel has no entries").
				WithHint("Lucky wheel campaigns need at least one entry").
				Mark(ierr.ErrValidation)
		}
		for i, e := range c.LuckyWheel.Entries {
			if e.Weight.IsNegative() {
				return ierr.NewError("wheel entry weight is negative").
					WithHint("Wheel entry weights cannot be negative").
					WithReportableDetails(map[string]any{"entry_index": i}).
					Mark(ierr.ErrValidation)
			}
			if e.IsLucky && e.CodeID == "" {
				return ierr.NewError("winning wheel entry has no code").
					WithHint("Winning wheel entries must reference a promotion code").
					WithReportableDetails(map[string]any{"entry_index": i}).
					Mark(ierr.ErrValidation)
			}
		}
		if c.LuckyWheel.TotalWeight().Sign() <= 0 {
			return ierr.NewError("lucky wheel weights sum to zero").
				WithHint("At least one wheel entry needs a positive weight").
				Mark(ierr.ErrValidation)
		}
	default:
		return ierr.NewError("campaign config is empty").
			WithHint("Campaign must carry a flash sale or lucky wheel config").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TotalWeight sums the weights of all wheel entries
func (c *LuckyWheelConfig) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.Weight)
	}
	return total
}
