package service

import (
	"context"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/lookup"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// geographicFeature compounds, in order: an exact zip-code multiplier, a
// region multiplier derived from the zip's first digit, and a bounded
// cost-of-living scaling factor fetched from an external index.
type geographicFeature struct {
	source lookup.CostOfLivingSource
	cfg    config.GeographicConfig
	logger *logger.Logger
}

func newGeographicFeature(params ServiceParams) *geographicFeature {
	return &geographicFeature{
		source: params.CostOfLivingSource,
		cfg:    params.Config.Pricing.Geographic,
		logger: params.Logger,
	}
}

func (f *geographicFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureGeographic
}

func (f *geographicFeature) Name() string {
	return "geographic_pricing"
}

func (f *geographicFeature) UsesExternalLookup() bool {
	return f.cfg.CostOfLiving.Enabled
}

func (f *geographicFeature) Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	if pctx.ZipCode == "" {
		return nil, nil
	}

	one := decimal.NewFromInt(1)
	multiplier := one
	metadata := map[string]interface{}{
		"zip_code": pctx.ZipCode,
	}

	if m, ok := f.cfg.ZipMultipliers[pctx.ZipCode]; ok && m > 0 {
		multiplier = multiplier.Mul(decimal.NewFromFloat(m))
		metadata["zip_multiplier"] = m
	}

	region := pctx.ZipCode[:1]
	if m, ok := f.cfg.RegionMultipliers[region]; ok && m > 0 {
		multiplier = multiplier.Mul(decimal.NewFromFloat(m))
		metadata["region"] = region
		metadata["region_multiplier"] = m
	}

	if f.cfg.CostOfLiving.Enabled && f.source != nil {
		index, err := f.source.Index(ctx, pctx.ZipCode)
		if err != nil {
			return nil, err
		}

		factor := boundFactor(index, f.cfg.CostOfLiving.MinFactor, f.cfg.CostOfLiving.MaxFactor)
		multiplier = multiplier.Mul(decimal.NewFromFloat(factor))
		metadata["cost_of_living_index"] = index
		metadata["cost_of_living_factor"] = factor
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

// boundFactor maps the raw index into [min, max] so a bad upstream value can
// never swing the price outside the configured band
func boundFactor(index, min, max float64) float64 {
	if min > 0 && index < min {
		return min
	}
	if max > 0 && index > max {
		return max
	}
	return index
}
