package service

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/domain/quote"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// FeatureAdjustment is a feature's verdict on the running price. A nil
// adjustment means the feature had nothing to say; an adjustment with the
// price unchanged still records its metadata in the audit trail (e.g. a
// rejected promo code).
type FeatureAdjustment struct {
	AdjustedPrice decimal.Decimal
	Metadata      map[string]interface{}
}

// PricingFeature is a single pluggable pricing adjustment. Features form a
// closed set, registered in a fixed order at pipeline construction; each one
// reads the immutable context plus the running result and may return an
// adjusted price with metadata.
type PricingFeature interface {
	Type() types.PricingFeatureType
	Name() string
	Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error)
}

// externalLookup is implemented by features whose Apply calls out to an
// external collaborator; the pipeline bounds those calls with the configured
// lookup timeout.
type externalLookup interface {
	UsesExternalLookup() bool
}

// PricingPipeline threads a running price through the enabled adjustment
// features in registration order. Features execute strictly sequentially:
// each one sees the output of the previous, so the pipeline is not
// parallelizable.
type PricingPipeline struct {
	features      []PricingFeature
	failureMode   types.FailureMode
	lookupTimeout time.Duration
	history       *QuoteHistory
	logger        *logger.Logger
}

// NewPricingPipeline builds the pipeline from the configured feature
// toggles. Registration order is fixed: schedule, seasonal, promo code,
// loyalty, experiment, demand, geographic.
func NewPricingPipeline(params ServiceParams) *PricingPipeline {
	toggles := params.Config.Pricing.Features

	var features []PricingFeature
	if toggles.Schedule {
		features = append(features, newScheduleFeature(params))
	}
	if toggles.Seasonal {
		features = append(features, newSeasonalFeature(params))
	}
	if toggles.PromoCode {
		features = append(features, newPromoCodeFeature(params))
	}
	if toggles.Loyalty {
		features = append(features, newLoyaltyFeature(params))
	}
	if toggles.Experiment {
		features = append(features, newExperimentFeature(params))
	}
	if toggles.Demand {
		features = append(features, newDemandFeature(params))
	}
	if toggles.Geographic {
		features = append(features, newGeographicFeature(params))
	}

	return &PricingPipeline{
		features:      features,
		failureMode:   params.Config.Pricing.FailureMode,
		lookupTimeout: params.Config.Pricing.LookupTimeout,
		history:       params.History,
		logger:        params.Logger,
	}
}

// Features returns the registered features in execution order
func (p *PricingPipeline) Features() []PricingFeature {
	return p.features
}

// Run executes the pipeline over the initial price and returns the priced
// result. Failing features abort the quote in fail_closed mode and are
// logged and skipped in fail_open mode. The final price is clamped to zero
// and the quote is appended to the history ledger.
func (p *PricingPipeline) Run(ctx context.Context, pctx *quote.PricingContext, initial decimal.Decimal) (*quote.PricingResult, error) {
	result := &quote.PricingResult{
		OriginalPrice:   initial,
		FinalPrice:      initial,
		AppliedFeatures: []quote.AppliedFeature{},
		Metadata:        map[string]interface{}{},
	}

	for _, feature := range p.features {
		before := result.FinalPrice

		adjustment, err := p.applyFeature(ctx, feature, pctx, result)
		if err != nil {
			if p.failureMode == types.FailureModeClosed {
				return nil, ierr.WithError(err).
					WithHintf("Pricing feature %s failed", feature.Name()).
					Mark(ierr.ErrFeatureFailed)
			}

			p.logger.Warnw("skipping failed pricing feature",
				"feature", feature.Name(),
				"error", err,
			)
			continue
		}

		if adjustment == nil {
			continue
		}

		result.FinalPrice = adjustment.AdjustedPrice
		result.AppliedFeatures = append(result.AppliedFeatures, quote.AppliedFeature{
			FeatureType: feature.Type(),
			Name:        feature.Name(),
			Delta:       adjustment.AdjustedPrice.Sub(before),
			Metadata:    adjustment.Metadata,
		})
	}

	if result.FinalPrice.IsNegative() {
		result.Metadata["clamped_to_zero"] = true
		result.FinalPrice = decimal.Zero
	}
	result.FinalPrice = result.FinalPrice.Round(2)

	p.appendHistory(pctx, result)

	return result, nil
}

// applyFeature invokes a single feature, bounding external-lookup-backed
// features with the configured timeout.
func (p *PricingPipeline) applyFeature(
	ctx context.Context,
	feature PricingFeature,
	pctx *quote.PricingContext,
	result *quote.PricingResult,
) (*FeatureAdjustment, error) {
	if lb, ok := feature.(externalLookup); ok && lb.UsesExternalLookup() && p.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.lookupTimeout)
		defer cancel()
	}

	return feature.Apply(ctx, pctx, result)
}

func (p *PricingPipeline) appendHistory(pctx *quote.PricingContext, result *quote.PricingResult) {
	if p.history == nil {
		return
	}

	record := quote.HistoryRecord{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		Timestamp: time.Now().UTC(),
		TenantID:  pctx.TenantID,
		ZipCode:   pctx.ZipCode,
		Area:      pctx.Area,
		Result:    *result,
	}
	if pctx.Service != nil {
		record.ServiceID = pctx.Service.ID
	}

	p.history.Append(record)
}
