package service

import (
	"testing"

	"github.com/quotewise/quotewise/internal/domain/loyalty"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoyaltyFeatureSuite struct {
	testutil.BaseServiceTestSuite
	feature *loyaltyFeature
}

func TestLoyaltyFeature(t *testing.T) {
	suite.Run(t, new(LoyaltyFeatureSuite))
}

func (s *LoyaltyFeatureSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.feature = newLoyaltyFeature(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		LoyaltyProvider: s.GetLoyaltyProvider(),
	})
}

func (s *LoyaltyFeatureSuite) apply(customerID string, redeemPoints bool, price int64) *FeatureAdjustment {
	pctx := &quote.PricingContext{
		CustomerID:   customerID,
		RedeemPoints: redeemPoints,
	}
	result := &quote.PricingResult{FinalPrice: decimal.NewFromInt(price)}

	adjustment, err := s.feature.Apply(s.GetContext(), pctx, result)
	s.NoError(err)
	return adjustment
}

func (s *LoyaltyFeatureSuite) TestApply_TierDiscount() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_gold",
		Tier:       "gold",
	})

	// Gold tier is 5% off
	adjustment := s.apply("cust_gold", false, 2000)
	s.NotNil(adjustment)
	s.True(decimal.NewFromInt(1900).Equal(adjustment.AdjustedPrice), "got %s", adjustment.AdjustedPrice)
	s.Equal("gold", adjustment.Metadata["tier"])
}

func (s *LoyaltyFeatureSuite) TestApply_BronzeTierNoDiscount() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_bronze",
		Tier:       "bronze",
	})

	adjustment := s.apply("cust_bronze", false, 2000)
	s.Nil(adjustment)
}

func (s *LoyaltyFeatureSuite) TestApply_PointsRedemption() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_points",
		Tier:       "bronze",
		Points:     400,
	})

	// 400 points at 0.5 each are worth 200, well under the 50% cap
	adjustment := s.apply("cust_points", true, 2000)
	s.NotNil(adjustment)
	s.True(decimal.NewFromInt(1800).Equal(adjustment.AdjustedPrice), "got %s", adjustment.AdjustedPrice)
	s.Equal(int64(400), adjustment.Metadata["points_redeemed"])
}

func (s *LoyaltyFeatureSuite) TestApply_PointsRedemptionCappedAtHalfPrice() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_rich",
		Tier:       "bronze",
		Points:     10000,
	})

	// 10000 points are worth 5000 but redemption stops at 50% of 2000
	adjustment := s.apply("cust_rich", true, 2000)
	s.NotNil(adjustment)
	s.True(decimal.NewFromInt(1000).Equal(adjustment.AdjustedPrice), "got %s", adjustment.AdjustedPrice)
	s.Equal(int64(2000), adjustment.Metadata["points_redeemed"])
}

func (s *LoyaltyFeatureSuite) TestApply_PointsBelowMinimumNotRedeemed() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_few_points",
		Tier:       "bronze",
		Points:     99,
	})

	adjustment := s.apply("cust_few_points", true, 2000)
	s.Nil(adjustment)
}

func (s *LoyaltyFeatureSuite) TestApply_RedemptionRequiresOptIn() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID: "cust_points",
		Tier:       "bronze",
		Points:     400,
	})

	adjustment := s.apply("cust_points", false, 2000)
	s.Nil(adjustment)
}

func (s *LoyaltyFeatureSuite) TestApply_FrequencyBonus() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID:    "cust_regular",
		Tier:          "bronze",
		TotalBookings: 12,
	})

	// 2% bonus once past 10 bookings
	adjustment := s.apply("cust_regular", false, 2000)
	s.NotNil(adjustment)
	s.True(decimal.NewFromInt(1960).Equal(adjustment.AdjustedPrice), "got %s", adjustment.AdjustedPrice)
}

func (s *LoyaltyFeatureSuite) TestApply_DiscountsSum() {
	s.GetLoyaltyProvider().SetSnapshot(&loyalty.Snapshot{
		CustomerID:    "cust_loyal",
		Tier:          "platinum",
		Points:        200,
		TotalBookings: 20,
	})

	// 8% tier (160) + 100 points redemption + 2% bonus (40) = 300 off
	adjustment := s.apply("cust_loyal", true, 2000)
	s.NotNil(adjustment)
	s.True(decimal.NewFromInt(1700).Equal(adjustment.AdjustedPrice), "got %s", adjustment.AdjustedPrice)
	s.Equal("300", adjustment.Metadata["total_discount"])
}

func (s *LoyaltyFeatureSuite) TestApply_AnonymousCustomerSkipped() {
	adjustment := s.apply("", false, 2000)
	s.Nil(adjustment)
}

func (s *LoyaltyFeatureSuite) TestApply_UnknownCustomerSkipped() {
	adjustment := s.apply("cust_never_seen", false, 2000)
	s.Nil(adjustment)
}
