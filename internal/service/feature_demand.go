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

// demandFeature maps the externally supplied demand level to a multiplier,
// with an extra capacity-constraint multiplier above the configured
// utilization threshold. Disabled by default.
type demandFeature struct {
	source lookup.DemandSource
	cfg    config.DemandConfig
	logger *logger.Logger
}

func newDemandFeature(params ServiceParams) *demandFeature {
	return &demandFeature{
		source: params.DemandSource,
		cfg:    params.Config.Pricing.Demand,
		logger: params.Logger,
	}
}

func (f *demandFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureDemand
}

func (f *demandFeature) Name() string {
	return "demand_pricing"
}

func (f *demandFeature) UsesExternalLookup() bool {
	return true
}

func (f *demandFeature) Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	if f.source == nil {
		return nil, nil
	}

	signal, err := f.source.CurrentDemand(ctx, pctx.ZipCode, pctx.BookingTime)
	if err != nil {
		return nil, err
	}
	if signal == nil {
		return nil, nil
	}

	multiplier := decimal.NewFromInt(1)
	if m, ok := f.cfg.LevelMultipliers[string(signal.Level)]; ok && m > 0 {
		multiplier = decimal.NewFromFloat(m)
	}

	constrained := f.cfg.CapacityThreshold > 0 && signal.CapacityUtilization > f.cfg.CapacityThreshold
	if constrained && f.cfg.CapacityMultiplier > 0 {
		multiplier = multiplier.Mul(decimal.NewFromFloat(f.cfg.CapacityMultiplier))
	}

	if multiplier.Equal(decimal.NewFromInt(1)) {
		return nil, nil
	}

	return &FeatureAdjustment{
		AdjustedPrice: result.FinalPrice.Mul(multiplier),
		Metadata: map[string]interface{}{
			"demand_level":         string(signal.Level),
			"capacity_utilization": signal.CapacityUtilization,
			"capacity_constrained": constrained,
			"multiplier":           multiplier.String(),
		},
	}, nil
}
