package service

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/domain/experiment"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// experimentFeature applies active A/B price experiments. Variant assignment
// is a pure function of (subjectID, experimentID); multiple concurrent
// experiments compound in registration order. Every assignment is recorded
// as an exposure for later analysis.
type experimentFeature struct {
	repo   experiment.Repository
	logger *logger.Logger
}

func newExperimentFeature(params ServiceParams) *experimentFeature {
	return &experimentFeature{
		repo:   params.ExperimentRepo,
		logger: params.Logger,
	}
}

func (f *experimentFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureExperiment
}

func (f *experimentFeature) Name() string {
	return "experiment_pricing"
}

func (f *experimentFeature) Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	// Experiments need a stable subject identity
	if pctx.CustomerID == "" || f.repo == nil {
		return nil, nil
	}

	experiments, err := f.repo.ListRunning(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if len(experiments) == 0 {
		return nil, nil
	}

	one := decimal.NewFromInt(1)
	price := result.FinalPrice
	exposures := make([]map[string]interface{}, 0, len(experiments))

	for _, exp := range experiments {
		if exp.TrafficAllocation > 0 && exp.TrafficAllocation < 1 {
			if experiment.AllocationFraction(pctx.CustomerID, exp.ID) >= exp.TrafficAllocation {
				continue
			}
		}

		variant := exp.Variants[experiment.Bucket(pctx.CustomerID, exp.ID, len(exp.Variants))]

		exposures = append(exposures, map[string]interface{}{
			"experiment_id": exp.ID,
			"variant_id":    variant.ID,
			"subject_id":    pctx.CustomerID,
		})

		if !variant.PriceMultiplier.IsZero() && !variant.PriceMultiplier.Equal(one) {
			price = price.Mul(variant.PriceMultiplier)
		}
	}

	if len(exposures) == 0 {
		return nil, nil
	}

	return &FeatureAdjustment{
		AdjustedPrice: price,
		Metadata: map[string]interface{}{
			"exposures": exposures,
		},
	}, nil
}
