package service

import (
	"context"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// seasonalFeature applies, in order: a month-specific multiplier, a
// season-specific multiplier and a holiday-window multiplier. All three
// compound multiplicatively; any that is not configured contributes 1.
type seasonalFeature struct {
	cfg config.SeasonalConfig
}

func newSeasonalFeature(params ServiceParams) *seasonalFeature {
	return &seasonalFeature{cfg: params.Config.Pricing.Seasonal}
}

func (f *seasonalFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureSeasonal
}

func (f *seasonalFeature) Name() string {
	return "seasonal_pricing"
}

func (f *seasonalFeature) Apply(_ context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	at := pctx.BookingTime
	if at.IsZero() {
		return nil, nil
	}

	one := decimal.NewFromInt(1)
	multiplier := one
	metadata := map[string]interface{}{}

	if m, ok := f.cfg.MonthMultipliers[int(at.Month())]; ok && m > 0 {
		multiplier = multiplier.Mul(decimal.NewFromFloat(m))
		metadata["month_multiplier"] = m
	}

	season := types.SeasonFromMonth(at.Month())
	metadata["season"] = string(season)
	if m, ok := f.cfg.SeasonMultipliers[string(season)]; ok && m > 0 {
		multiplier = multiplier.Mul(decimal.NewFromFloat(m))
		metadata["season_multiplier"] = m
	}

	for _, holiday := range f.cfg.Holidays {
		if holiday.Multiplier <= 0 {
			continue
		}
		if !at.Before(holiday.Start) && !at.After(holiday.End) {
			multiplier = multiplier.Mul(decimal.NewFromFloat(holiday.Multiplier))
			metadata["holiday"] = holiday.Name
			metadata["holiday_multiplier"] = holiday.Multiplier
			break
		}
	}

	if multiplier.Equal(one) {
		return nil, nil
	}

	metadata["multiplier"] = multiplier.String()
	return &FeatureAdjustment{
		AdjustedPrice: result.FinalPrice.Mul(multiplier),
		Metadata:      metadata,
	}, nil
}
