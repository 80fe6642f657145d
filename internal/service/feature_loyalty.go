package service

import (
	"context"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/loyalty"
	"github.com/quotewise/quotewise/internal/domain/quote"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// loyaltyFeature applies the loyalty program: a tier-based percentage, an
// optional points redemption capped at half the running price, and a
// frequency bonus for repeat customers. The three discounts sum and are
// subtracted once.
type loyaltyFeature struct {
	provider loyalty.Provider
	cfg      config.LoyaltyConfig
	logger   *logger.Logger
}

func newLoyaltyFeature(params ServiceParams) *loyaltyFeature {
	return &loyaltyFeature{
		provider: params.LoyaltyProvider,
		cfg:      params.Config.Pricing.Loyalty,
		logger:   params.Logger,
	}
}

func (f *loyaltyFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureLoyalty
}

func (f *loyaltyFeature) Name() string {
	return "loyalty_program"
}

func (f *loyaltyFeature) UsesExternalLookup() bool {
	return true
}

func (f *loyaltyFeature) Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	// Loyalty requires an identified customer
	if pctx.CustomerID == "" || f.provider == nil {
		return nil, nil
	}

	snapshot, err := f.provider.GetSnapshot(ctx, pctx.CustomerID)
	if err != nil {
		// A customer without a loyalty record is not a failure
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	price := result.FinalPrice
	hundred := decimal.NewFromInt(100)
	discount := decimal.Zero
	metadata := map[string]interface{}{
		"tier": snapshot.Tier,
	}

	if pct, ok := f.cfg.TierDiscounts[snapshot.Tier]; ok && pct > 0 {
		tierDiscount := price.Mul(decimal.NewFromFloat(pct)).Div(hundred)
		discount = discount.Add(tierDiscount)
		metadata["tier_discount"] = tierDiscount.String()
	}

	if pctx.RedeemPoints && snapshot.Points >= f.cfg.MinRedeemPoints && f.cfg.PointValue > 0 {
		pointValue := decimal.NewFromFloat(f.cfg.PointValue)
		available := pointValue.Mul(decimal.NewFromInt(int64(snapshot.Points)))

		// Points redemption is capped at 50% of the current price
		redeemCap := price.Div(decimal.NewFromInt(2))
		redeemed := decimal.Min(available, redeemCap)

		pointsRedeemed := redeemed.Div(pointValue).Floor()
		redeemed = pointsRedeemed.Mul(pointValue)

		if pointsRedeemed.IsPositive() {
			discount = discount.Add(redeemed)
			metadata["points_redeemed"] = pointsRedeemed.IntPart()
			metadata["points_discount"] = redeemed.String()
		}
	}

	if f.cfg.FrequencyBonusThreshold > 0 && snapshot.TotalBookings >= f.cfg.FrequencyBonusThreshold && f.cfg.FrequencyBonusPercent > 0 {
		bonus := price.Mul(decimal.NewFromFloat(f.cfg.FrequencyBonusPercent)).Div(hundred)
		discount = discount.Add(bonus)
		metadata["frequency_bonus"] = bonus.String()
	}

	if discount.IsZero() {
		return nil, nil
	}

	adjusted := price.Sub(discount)
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
		metadata["clamped_to_zero"] = true
	}

	metadata["total_discount"] = discount.String()
	return &FeatureAdjustment{
		AdjustedPrice: adjusted,
		Metadata:      metadata,
	}, nil
}
