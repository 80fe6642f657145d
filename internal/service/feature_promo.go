package service

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/domain/promocode"
	"github.com/quotewise/quotewise/internal/domain/quote"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/types"
)

// Rejection reasons recorded in promo feature metadata. A rejected code
// never fails the quote: the price is returned unchanged with the reason in
// the audit trail.
const (
	promoReasonUnknownCode    = "unknown_code"
	promoReasonNotValid       = "not_valid"
	promoReasonMinimumOrder   = "minimum_order_not_met"
	promoReasonFirstTimeOnly  = "first_time_customers_only"
	promoReasonUsageExhausted = "usage_limit_exhausted"
	promoReasonNoDiscount     = "no_discount_applicable"
)

// promoCodeFeature looks up and applies the submitted promotional code.
// Redemption is best-effort: once a non-zero discount is computed, usage is
// reserved with an atomic per-code increment before the discount is applied,
// which serializes concurrent redemptions but is not idempotent across
// retried requests.
type promoCodeFeature struct {
	repo   promocode.Repository
	logger *logger.Logger
}

func newPromoCodeFeature(params ServiceParams) *promoCodeFeature {
	return &promoCodeFeature{
		repo:   params.PromoCodeRepo,
		logger: params.Logger,
	}
}

func (f *promoCodeFeature) Type() types.PricingFeatureType {
	return types.PricingFeaturePromoCode
}

func (f *promoCodeFeature) Name() string {
	return "promotional_codes"
}

func (f *promoCodeFeature) Apply(ctx context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	if pctx.PromoCode == "" {
		return nil, nil
	}

	code := promocode.NormalizeCode(pctx.PromoCode)
	rejected := func(reason string, extra map[string]interface{}) *FeatureAdjustment {
		metadata := map[string]interface{}{
			"code":    code,
			"applied": false,
			"reason":  reason,
		}
		for k, v := range extra {
			metadata[k] = v
		}
		return &FeatureAdjustment{AdjustedPrice: result.FinalPrice, Metadata: metadata}
	}

	promo, err := f.repo.GetByCode(ctx, code)
	if err != nil {
		if ierr.IsNotFound(err) {
			return rejected(promoReasonUnknownCode, nil), nil
		}
		return nil, err
	}

	if !promo.IsValidAt(time.Now().UTC()) {
		return rejected(promoReasonNotValid, nil), nil
	}

	price := result.FinalPrice

	// Minimum-order check happens before the discount is computed
	if promo.MinimumOrder != nil && price.LessThan(*promo.MinimumOrder) {
		return rejected(promoReasonMinimumOrder, map[string]interface{}{
			"minimum_order": promo.MinimumOrder.String(),
		}), nil
	}

	if promo.Type == types.PromoCodeTypeFirstTime && !pctx.FirstTimeCustomer {
		return rejected(promoReasonFirstTimeOnly, nil), nil
	}

	// A code that yields no discount at this price, such as a tiered code
	// whose lowest threshold is not reached, must not burn a redemption.
	discount := promo.CalculateDiscount(price, pctx.FirstTimeCustomer)
	if !discount.IsPositive() {
		return rejected(promoReasonNoDiscount, nil), nil
	}

	// Reserve a redemption before applying; the conditional increment fails
	// once the usage limit is reached, so concurrent redemptions cannot
	// overshoot it.
	if err := f.repo.IncrementUsage(ctx, promo.ID); err != nil {
		if ierr.IsUsageExhausted(err) {
			return rejected(promoReasonUsageExhausted, nil), nil
		}
		return nil, err
	}

	return &FeatureAdjustment{
		AdjustedPrice: price.Sub(discount),
		Metadata: map[string]interface{}{
			"code":       code,
			"applied":    true,
			"promo_type": string(promo.Type),
			"discount":   discount.String(),
		},
	}, nil
}
