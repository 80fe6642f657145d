package service

import (
	"context"
	"testing"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/quotewise/quotewise/internal/lookup"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func demandFixture(signal lookup.DemandSignal) *demandFeature {
	return &demandFeature{
		source: &lookup.StaticDemandSource{Signal: signal},
		cfg: config.DemandConfig{
			LevelMultipliers: map[string]float64{
				string(types.DemandLevelVeryLow):  0.9,
				string(types.DemandLevelLow):      0.95,
				string(types.DemandLevelNormal):   1,
				string(types.DemandLevelHigh):     1.1,
				string(types.DemandLevelVeryHigh): 1.25,
			},
			CapacityThreshold:  0.9,
			CapacityMultiplier: 1.1,
		},
	}
}

func applyDemand(t *testing.T, f *demandFeature, price int64) *FeatureAdjustment {
	t.Helper()
	pctx := &quote.PricingContext{ZipCode: "11455"}
	result := &quote.PricingResult{FinalPrice: decimal.NewFromInt(price)}
	adjustment, err := f.Apply(context.Background(), pctx, result)
	assert.NoError(t, err)
	return adjustment
}

func TestDemandFeature_LevelMultipliers(t *testing.T) {
	tests := []struct {
		name     string
		level    types.DemandLevel
		expected decimal.Decimal
	}{
		{"very_low", types.DemandLevelVeryLow, decimal.NewFromInt(900)},
		{"low", types.DemandLevelLow, decimal.NewFromInt(950)},
		{"high", types.DemandLevelHigh, decimal.NewFromInt(1100)},
		{"very_high", types.DemandLevelVeryHigh, decimal.NewFromInt(1250)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := demandFixture(lookup.DemandSignal{Level: tt.level, CapacityUtilization: 0.5})
			adjustment := applyDemand(t, f, 1000)
			assert.NotNil(t, adjustment)
			assert.True(t, tt.expected.Equal(adjustment.AdjustedPrice),
				"expected %s, got %s", tt.expected, adjustment.AdjustedPrice)
		})
	}
}

func TestDemandFeature_NormalLevelReturnsNil(t *testing.T) {
	f := demandFixture(lookup.DemandSignal{Level: types.DemandLevelNormal, CapacityUtilization: 0.5})
	assert.Nil(t, applyDemand(t, f, 1000))
}

func TestDemandFeature_CapacityConstraintCompounds(t *testing.T) {
	// High demand at 95% utilization: 1000 x 1.1 x 1.1 = 1210
	f := demandFixture(lookup.DemandSignal{Level: types.DemandLevelHigh, CapacityUtilization: 0.95})
	adjustment := applyDemand(t, f, 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(1210).Equal(adjustment.AdjustedPrice),
		"got %s", adjustment.AdjustedPrice)
	assert.Equal(t, true, adjustment.Metadata["capacity_constrained"])
}

func TestDemandFeature_ThresholdIsExclusive(t *testing.T) {
	f := demandFixture(lookup.DemandSignal{Level: types.DemandLevelHigh, CapacityUtilization: 0.9})
	adjustment := applyDemand(t, f, 1000)
	assert.NotNil(t, adjustment)
	assert.True(t, decimal.NewFromInt(1100).Equal(adjustment.AdjustedPrice))
	assert.Equal(t, false, adjustment.Metadata["capacity_constrained"])
}

func TestDemandFeature_NilSourceSkipped(t *testing.T) {
	f := &demandFeature{}
	assert.Nil(t, applyDemand(t, f, 1000))
}
