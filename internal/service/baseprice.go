package service

import (
	"context"

	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/quote"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// BasePriceService resolves a service's base price from the booking's
// numeric drivers and assembles the pre-discount subtotal that seeds the
// adjustment pipeline.
type BasePriceService interface {
	// ResolveBasePrice returns the non-negative base price for the service
	// under its pricing model. Unknown models and negative or missing inputs
	// resolve to zero; resolution never fails for business inputs.
	ResolveBasePrice(ctx context.Context, pctx *quote.PricingContext) decimal.Decimal

	// CalculateBaseQuote produces the taxed, rounded pre-discount total:
	// (base x frequency multiplier + add-ons) x (1 + tax rate), rounded half
	// away from zero to the nearest whole currency unit.
	CalculateBaseQuote(ctx context.Context, pctx *quote.PricingContext) (decimal.Decimal, error)
}

type basePriceService struct {
	ServiceParams
}

func NewBasePriceService(params ServiceParams) BasePriceService {
	return &basePriceService{ServiceParams: params}
}

func (s *basePriceService) ResolveBasePrice(ctx context.Context, pctx *quote.PricingContext) decimal.Decimal {
	svc := pctx.Service
	if svc == nil {
		return decimal.Zero
	}

	switch svc.PricingModel {
	case types.PricingModelFlatPerArea:
		return clampInput(pctx.Area).Mul(svc.FlatRate)

	case types.PricingModelPerRoom:
		return clampInput(pctx.Rooms).Mul(svc.PerRoomRate)

	case types.PricingModelTieredPerArea:
		return s.resolveTiered(ctx, svc, clampInput(pctx.Area))

	case types.PricingModelPerWindowBand:
		return s.resolveWindowBands(svc, pctx.WindowQuantities)

	default:
		s.Logger.Debugw("unknown pricing model, defaulting base price to zero",
			"service_id", svc.ID,
			"pricing_model", svc.PricingModel,
		)
		return decimal.Zero
	}
}

// resolveTiered scans tiers in listed order; the first tier whose inclusive
// [min, max] contains the area wins. No match falls back to the service's
// default rate rather than failing.
func (s *basePriceService) resolveTiered(ctx context.Context, svc *catalog.Service, area decimal.Decimal) decimal.Decimal {
	for _, tier := range svc.Tiers {
		if tier.Contains(area) {
			return area.Mul(tier.PricePerUnit)
		}
	}

	s.Logger.Debugw("no pricing tier matched, using default rate",
		"service_id", svc.ID,
		"area", area.String(),
	)
	return area.Mul(svc.DefaultRate)
}

// resolveWindowBands sums quantity x unit price over all bands. When any
// regular (non-premium) band has nonzero quantity and the sum is below the
// configured floor, the floor applies instead. Zero-quantity bands never
// trigger the floor by themselves.
func (s *basePriceService) resolveWindowBands(svc *catalog.Service, quantities map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	regularSelected := false

	for _, band := range svc.WindowBands {
		qty := clampInput(quantities[band.BandIndex])
		if qty.IsZero() {
			continue
		}

		total = total.Add(qty.Mul(band.UnitPrice))
		if !band.Premium {
			regularSelected = true
		}
	}

	floor := decimal.NewFromFloat(s.Config.Pricing.WindowMinimumCharge)
	if regularSelected && total.LessThan(floor) {
		return floor
	}

	return total
}

func (s *basePriceService) CalculateBaseQuote(ctx context.Context, pctx *quote.PricingContext) (decimal.Decimal, error) {
	if pctx == nil || pctx.Service == nil {
		return decimal.Zero, ierr.NewError("pricing context requires a resolved service").
			WithHint("Please provide a valid service").
			Mark(ierr.ErrValidation)
	}

	base := s.ResolveBasePrice(ctx, pctx)

	// Frequency scales only the base service charge
	multiplier := decimal.NewFromInt(1)
	if pctx.FrequencyKey != "" {
		freq, err := s.CatalogRepo.GetFrequencyMultiplier(ctx, pctx.FrequencyKey)
		if err != nil {
			if !ierr.IsNotFound(err) {
				return decimal.Zero, err
			}
			s.Logger.Debugw("unknown frequency key, defaulting multiplier to 1",
				"frequency_key", pctx.FrequencyKey,
			)
		} else {
			multiplier = freq.Multiplier
		}
	}

	subtotal := base.Mul(multiplier)

	// Add-ons are flat charges, never frequency-multiplied
	for _, key := range pctx.AddOnKeys {
		addOn, err := s.CatalogRepo.GetAddOn(ctx, key)
		if err != nil {
			if !ierr.IsNotFound(err) {
				return decimal.Zero, err
			}
			s.Logger.Debugw("unknown add-on key, skipping", "add_on_key", key)
			continue
		}
		subtotal = subtotal.Add(addOn.FlatPrice)
	}

	taxRate := decimal.NewFromFloat(s.Config.Pricing.TaxRate)
	total := subtotal.Mul(decimal.NewFromInt(1).Add(taxRate))

	// Round half away from zero to whole currency units; see decimal.Round
	return total.Round(0), nil
}

// clampInput treats negative or missing numeric input as zero; upstream
// callers own input validation.
func clampInput(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
