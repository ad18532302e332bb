package campaign

import (
	"time"

	"github.com/shopora/shopora/internal/types"
)

// VoucherCampaign is a bounded-quantity voucher issuance campaign
// (flash sale or lucky wheel). Config is parsed once at load into the
// tagged variant; request paths never re-parse the raw blob.
type VoucherCampaign struct {
	ID   string             `json:"id" db:"id"`
	Name string             `json:"name" db:"name"`
	Type types.CampaignType `json:"type" db:"type"`

	StartAt time.Time  `json:"start_at" db:"start_at"`
	EndAt   *time.Time `json:"end_at" db:"end_at"`

	Config *types.CampaignConfig `json:"config" db:"config"`

	// CollectedCount counts grants against the campaign cap
	CollectedCount int `json:"collected_count" db:"collected_count"`

	types.BaseModel
}

// IsActiveAt reports whether the campaign window contains the instant
func (c *VoucherCampaign) IsActiveAt(now time.Time) bool {
	if c.Status != types.StatusPublished {
		return false
	}
	if now.Before(c.StartAt) {
		return false
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return false
	}
	return true
}

// TotalVouchers returns the issuance cap; zero means unbounded
func (c *VoucherCampaign) TotalVouchers() int {
	if c.Config != nil && c.Config.FlashSale != nil {
		return c.Config.FlashSale.TotalVouchers
	}
	return 0
}

// MaxPerUser returns the per-user grant cap for the campaign
func (c *VoucherCampaign) MaxPerUser() int {
	if c.Config == nil {
		return 0
	}
	if c.Config.FlashSale != nil {
		return c.Config.FlashSale.MaxPerUser
	}
	if c.Config.LuckyWheel != nil {
		return c.Config.LuckyWheel.SpinsPerUser
	}
	return 0
}
