package service

import (
	"context"
	"testing"
	"time"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func applySeasonal(t *testing.T, cfg config.SeasonalConfig, at time.Time, price int64) *FeatureAdjustment {
	t.Helper()
	f := &seasonalFeature{cfg: cfg}
	pctx := &quote.PricingContext{BookingTime: at}
	result := &quote.PricingResult{FinalPrice: decimal.NewFromInt(price)}
	adjustment, err := f.Apply(context.Background(), pctx, result)
	assert.NoError(t, err)
	return adjustment
}

func TestSeasonalFeature_MonthMultiplier(t *testing.T) {
	cfg := config.SeasonalConfig{
		MonthMultipliers: map[int]float64{6: 1.2},
	}

	adjustment := applySeasonal(t, cfg, time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC), 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(1200).Equal(adjustment.AdjustedPrice))
	assert.Equal(t, 1.2, adjustment.Metadata["month_multiplier"])
}

func TestSeasonalFeature_SeasonMultiplier(t *testing.T) {
	cfg := config.SeasonalConfig{
		SeasonMultipliers: map[string]float64{"winter": 0.9},
	}

	adjustment := applySeasonal(t, cfg, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(900).Equal(adjustment.AdjustedPrice))
	assert.Equal(t, "winter", adjustment.Metadata["season"])
}

func TestSeasonalFeature_HolidayWindow(t *testing.T) {
	cfg := config.SeasonalConfig{
		Holidays: []config.HolidayWindow{
			{
				Name:       "christmas",
				Start:      time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
				End:        time.Date(2027, 1, 6, 23, 59, 59, 0, time.UTC),
				Multiplier: 1.5,
			},
		},
	}

	adjustment := applySeasonal(t, cfg, time.Date(2026, 12, 24, 10, 0, 0, 0, time.UTC), 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(1500).Equal(adjustment.AdjustedPrice))
	assert.Equal(t, "christmas", adjustment.Metadata["holiday"])

	outside := applySeasonal(t, cfg, time.Date(2026, 11, 24, 10, 0, 0, 0, time.UTC), 1000)
	assert.Nil(t, outside)
}

func TestSeasonalFeature_AllLayersCompound(t *testing.T) {
	cfg := config.SeasonalConfig{
		MonthMultipliers:  map[int]float64{12: 1.1},
		SeasonMultipliers: map[string]float64{"winter": 1.2},
		Holidays: []config.HolidayWindow{
			{
				Name:       "christmas",
				Start:      time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
				End:        time.Date(2027, 1, 6, 23, 59, 59, 0, time.UTC),
				Multiplier: 1.5,
			},
		},
	}

	// 1000 x 1.1 x 1.2 x 1.5 = 1980
	adjustment := applySeasonal(t, cfg, time.Date(2026, 12, 24, 10, 0, 0, 0, time.UTC), 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(1980).Equal(adjustment.AdjustedPrice),
		"got %s", adjustment.AdjustedPrice)
}

func TestSeasonalFeature_FirstMatchingHolidayWins(t *testing.T) {
	cfg := config.SeasonalConfig{
		Holidays: []config.HolidayWindow{
			{
				Name:       "new_year",
				Start:      time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC),
				End:        time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC),
				Multiplier: 1.4,
			},
			{
				Name:       "christmas",
				Start:      time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
				End:        time.Date(2027, 1, 6, 0, 0, 0, 0, time.UTC),
				Multiplier: 1.5,
			},
		},
	}

	adjustment := applySeasonal(t, cfg, time.Date(2026, 12, 30, 10, 0, 0, 0, time.UTC), 1000)
	assert.NotNil(t, adjustment)
	assert.Equal(t, "new_year", adjustment.Metadata["holiday"])
	assert.True(t, decimal.NewFromInt(1400).Equal(adjustment.AdjustedPrice))
}

func TestSeasonalFeature_NoConfigReturnsNil(t *testing.T) {
	adjustment := applySeasonal(t, config.SeasonalConfig{}, time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC), 1000)
	assert.Nil(t, adjustment)
}
