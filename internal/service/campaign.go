package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopora/shopora/internal/domain/campaign"
	"github.com/shopora/shopora/internal/domain/promotion"
	"github.com/shopora/shopora/internal/domain/voucher"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/types"
)

// CampaignService dispenses vouchers from bounded campaigns. Both
// flows share the same invariant: grants never exceed the campaign
// cap, even under concurrent requests, because the cap check and the
// count increment are a single atomic repository operation.
type CampaignService interface {
	Create(ctx context.Context, c *campaign.VoucherCampaign) error
	Get(ctx context.Context, id string) (*campaign.VoucherCampaign, error)

	// Grant claims one voucher from a flash-sale campaign for the user
	Grant(ctx context.Context, campaignID string, userID string) (*voucher.UserVoucher, error)

	// Spin consumes one lucky-wheel spin. A nil voucher with a nil
	// error is a valid outcome: the wheel landed on a losing slice.
	Spin(ctx context.Context, campaignID string, userID string) (*SpinResult, error)
}

// SpinResult reports the slice the wheel landed on. Voucher is nil for
// losing slices.
type SpinResult struct {
	EntryIndex int                  `json:"entry_index"`
	IsLucky    bool                 `json:"is_lucky"`
	Voucher    *voucher.UserVoucher `json:"voucher,omitempty"`
}

type campaignService struct {
	ServiceParams
	rng *rand.Rand
}

// CampaignOption configures the campaign service
type CampaignOption func(*campaignService)

// WithRand sets the random source used by the lucky wheel, letting
// tests run the wheel deterministically.
func WithRand(rng *rand.Rand) CampaignOption {
	return func(s *campaignService) {
		s.rng = rng
	}
}

// NewCampaignService creates a new campaign service
func NewCampaignService(params ServiceParams, opts ...CampaignOption) CampaignService {
	s := &campaignService{
		ServiceParams: params,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *campaignService) Create(ctx context.Context, c *campaign.VoucherCampaign) error {
	if c.Config == nil {
		return ierr.NewError("campaign config is required").
			WithHint("Campaign must carry a flash sale or lucky wheel config").
			Mark(ierr.ErrValidation)
	}
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix("camp")
	}
	c.BaseModel = types.GetDefaultBaseModel(ctx)
	return s.CampaignRepo.Create(ctx, c)
}

func (s *campaignService) Get(ctx context.Context, id string) (*campaign.VoucherCampaign, error) {
	return s.CampaignRepo.Get(ctx, id)
}

func (s *campaignService) Grant(ctx context.Context, campaignID string, userID string) (*voucher.UserVoucher, error) {
	now := time.Now().UTC()

	c, err := s.activeCampaign(ctx, campaignID, now)
	if err != nil {
		return nil, err
	}
	if c.Config.FlashSale == nil {
		return nil, ierr.NewError("campaign is not a flash sale").
			WithHint("Grant applies to flash sale campaigns only").
			Mark(ierr.ErrInvalidOperation)
	}

	// Resolve the code before consuming any allowance so a bad code
	// reference cannot eat campaign capacity.
	code, err := s.CodeRepo.Get(ctx, c.Config.FlashSale.CodeID)
	if err != nil {
		return nil, err
	}

	// The user allowance is consumed first; the cap check and the
	// increment are one atomic repository call.
	if err := s.CampaignRepo.RecordGrant(ctx, campaignID, userID, c.MaxPerUser()); err != nil {
		return nil, err
	}

	// The collected-count increment is where two users racing for the
	// last voucher get serialized; only one comes back without an
	// error. An exhausted campaign hands the user's allowance back.
	if err := s.CampaignRepo.IncrementCollected(ctx, campaignID); err != nil {
		if relErr := s.CampaignRepo.ReleaseGrant(ctx, campaignID, userID); relErr != nil {
			s.Logger.Errorw("failed to release grant",
				"campaign_id", campaignID,
				"user_id", userID,
				"error", relErr)
		}
		return nil, err
	}

	uv, err := s.mintVoucher(ctx, userID, code, types.VoucherSourceFlashSale, now)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("flash sale voucher granted",
		"campaign_id", campaignID,
		"user_id", userID,
		"voucher_id", uv.ID)

	return uv, nil
}

func (s *campaignService) Spin(ctx context.Context, campaignID string, userID string) (*SpinResult, error) {
	now := time.Now().UTC()

	c, err := s.activeCampaign(ctx, campaignID, now)
	if err != nil {
		return nil, err
	}
	if c.Config.LuckyWheel == nil {
		return nil, ierr.NewError("campaign is not a lucky wheel").
			WithHint("Spin applies to lucky wheel campaigns only").
			Mark(ierr.ErrInvalidOperation)
	}

	idx, err := s.pickEntry(c.Config.LuckyWheel)
	if err != nil {
		return nil, err
	}
	entry := c.Config.LuckyWheel.Entries[idx]

	// A winning slice needs its code resolvable before the spin is
	// consumed.
	var code *promotion.PromotionCode
	if entry.IsLucky {
		if code, err = s.CodeRepo.Get(ctx, entry.CodeID); err != nil {
			return nil, err
		}
	}

	if err := s.CampaignRepo.RecordGrant(ctx, campaignID, userID, c.MaxPerUser()); err != nil {
		return nil, err
	}

	result := &SpinResult{EntryIndex: idx, IsLucky: entry.IsLucky}
	if entry.IsLucky {
		uv, err := s.mintVoucher(ctx, userID, code, types.VoucherSourceLuckyWheel, now)
		if err != nil {
			return nil, err
		}
		result.Voucher = uv
	}

	s.Logger.Infow("lucky wheel spun",
		"campaign_id", campaignID,
		"user_id", userID,
		"entry_index", idx,
		"is_lucky", entry.IsLucky)

	return result, nil
}

func (s *campaignService) activeCampaign(ctx context.Context, campaignID string, now time.Time) (*campaign.VoucherCampaign, error) {
	c, err := s.CampaignRepo.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.IsActiveAt(now) {
		return nil, ierr.NewError("campaign is not active").
			WithHint("This campaign is not currently running").
			WithReportableDetails(map[string]any{"campaign_id": campaignID}).
			Mark(ierr.ErrInvalidOperation)
	}
	if c.Config == nil {
		return nil, ierr.NewError("campaign has no config").
			WithHint("This campaign is misconfigured").
			Mark(ierr.ErrSystem)
	}
	return c, nil
}

// pickEntry walks the cumulative weights of the wheel entries against
// a single random draw scaled to the total weight. Stored campaigns
// are validated at creation, so a degenerate wheel here means the
// record was corrupted after the fact.
func (s *campaignService) pickEntry(cfg *types.LuckyWheelConfig) (int, error) {
	total := cfg.TotalWeight()
	if len(cfg.Entries) == 0 || total.Sign() <= 0 {
		return 0, ierr.NewError("lucky wheel has no winnable weight").
			WithHint("This campaign is misconfigured").
			Mark(ierr.ErrSystem)
	}

	draw := total.Mul(decimal.NewFromFloat(s.rng.Float64()))
	cumulative := decimal.Zero
	for i, entry := range cfg.Entries {
		cumulative = cumulative.Add(entry.Weight)
		if draw.LessThan(cumulative) {
			return i, nil
		}
	}
	return len(cfg.Entries) - 1, nil
}

func (s *campaignService) mintVoucher(ctx context.Context, userID string, code *promotion.PromotionCode, source types.VoucherSource, now time.Time) (*voucher.UserVoucher, error) {
	uv := &voucher.UserVoucher{
		ID:          types.GenerateUUIDWithPrefix("uvch"),
		Code:        types.GenerateVoucherCode("VC"),
		UserID:      userID,
		CodeID:      code.ID,
		CollectedAt: now,
		ExpiresAt:   code.ExpiresAt,
		Source:      source,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := s.VoucherRepo.Create(ctx, uv); err != nil {
		return nil, err
	}
	return uv, nil
}
