package service

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// scheduleFeature applies peak/off-peak and weekday/weekend multipliers based
// on the booking's hour of day and day of week. The two multipliers compound
// multiplicatively; absent configuration defaults to 1.
type scheduleFeature struct {
	cfg config.ScheduleConfig
}

func newScheduleFeature(params ServiceParams) *scheduleFeature {
	return &scheduleFeature{cfg: params.Config.Pricing.Schedule}
}

func (f *scheduleFeature) Type() types.PricingFeatureType {
	return types.PricingFeatureSchedule
}

func (f *scheduleFeature) Name() string {
	return "dynamic_schedule_pricing"
}

func (f *scheduleFeature) Apply(_ context.Context, pctx *quote.PricingContext, result *quote.PricingResult) (*FeatureAdjustment, error) {
	at := pctx.BookingTime
	if at.IsZero() {
		return nil, nil
	}

	hour := at.Hour()
	peak := hour >= f.cfg.PeakStartHour && hour < f.cfg.PeakEndHour

	hourMultiplier := f.cfg.OffPeakMultiplier
	if peak {
		hourMultiplier = f.cfg.PeakMultiplier
	}

	weekday := at.Weekday()
	weekend := weekday == time.Saturday || weekday == time.Sunday

	dayMultiplier := f.cfg.WeekdayMultiplier
	if weekend {
		dayMultiplier = f.cfg.WeekendMultiplier
	}

	multiplier := orOne(hourMultiplier).Mul(orOne(dayMultiplier))
	if multiplier.Equal(decimal.NewFromInt(1)) {
		return nil, nil
	}

	return &FeatureAdjustment{
		AdjustedPrice: result.FinalPrice.Mul(multiplier),
		Metadata: map[string]interface{}{
			"hour":       hour,
			"peak":       peak,
			"weekend":    weekend,
			"multiplier": multiplier.String(),
		},
	}, nil
}

// orOne treats an unconfigured (zero) multiplier as 1
func orOne(v float64) decimal.Decimal {
	if v <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(v)
}
