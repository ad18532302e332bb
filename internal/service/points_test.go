package service

import (
	"testing"

	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PointsServiceSuite struct {
	testutil.BaseServiceTestSuite
	pointsService PointsService
}

func TestPointsService(t *testing.T) {
	suite.Run(t, new(PointsServiceSuite))
}

func (s *PointsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.pointsService = NewPointsService(s.serviceParams())
}

func (s *PointsServiceSuite) serviceParams() ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		ProductRepo:      stores.ProductRepo,
		DiscountRuleRepo: stores.DiscountRuleRepo,
		PromotionRepo:    stores.PromotionRepo,
		CodeRepo:         stores.CodeRepo,
		GiftRepo:         stores.GiftRepo,
		VoucherRepo:      stores.VoucherRepo,
		PointsRepo:       stores.PointsRepo,
		CampaignRepo:     stores.CampaignRepo,
		OrderRepo:        stores.OrderRepo,
		CartStore:        stores.CartStore,
		FeeProvider:      s.GetFeeProvider(),
	}
}

func (s *PointsServiceSuite) TestCreditAndBalance() {
	s.NoError(s.pointsService.Credit(s.GetContext(), "user_1", 300, "daily check-in"))
	s.NoError(s.pointsService.Credit(s.GetContext(), "user_1", 200, "review reward"))

	balance, err := s.pointsService.Balance(s.GetContext(), "user_1")
	s.NoError(err)
	s.Equal(int64(500), balance.TotalPoints)
	s.Equal(int64(500), balance.LifetimePoints)

	ledger, err := s.pointsService.Ledger(s.GetContext(), "user_1")
	s.NoError(err)
	s.Len(ledger, 2)
}

func (s *PointsServiceSuite) TestCreditValidation() {
	err := s.pointsService.Credit(s.GetContext(), "user_1", 0, "nothing")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PointsServiceSuite) TestBalanceUnknownUser() {
	balance, err := s.pointsService.Balance(s.GetContext(), "user_new")
	s.NoError(err)
	s.Zero(balance.TotalPoints)
}

func (s *PointsServiceSuite) TestMaxRedeemable() {
	s.NoError(s.pointsService.Credit(s.GetContext(), "user_1", 500, "signup"))

	testCases := []struct {
		name      string
		remainder int64
		expected  int64
	}{
		// At rate 100 the remainder fits 199 whole points
		{name: "capped_by_remainder", remainder: 19950, expected: 199},
		{name: "capped_by_balance", remainder: 1000000, expected: 500},
		{name: "zero_remainder", remainder: 0, expected: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := s.pointsService.MaxRedeemable(s.GetContext(), "user_1", decimal.NewFromInt(tc.remainder))
			s.NoError(err)
			s.Equal(tc.expected, got)
		})
	}
}
