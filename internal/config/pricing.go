package config

import (
	"fmt"
	"time"

	"github.com/quotewise/quotewise/internal/types"
	"github.com/spf13/viper"
)

// PricingConfig holds all engine-level pricing knobs. Everything in here is
// read-only configuration from the engine's point of view: it is loaded once
// per process and shared by concurrent quote calculations.
type PricingConfig struct {
	// TaxRate is the universal tax rate applied to the pre-discount subtotal,
	// e.g. 0.25 for 25% VAT
	TaxRate float64 `mapstructure:"tax_rate" validate:"gte=0"`

	// WindowMinimumCharge is the aggregate floor for per_window_band pricing
	// when any regular band has nonzero quantity
	WindowMinimumCharge float64 `mapstructure:"window_minimum_charge" validate:"gte=0"`

	// FailureMode controls whether a failing adjustment feature aborts the
	// quote (fail_closed) or is logged and skipped (fail_open)
	FailureMode types.FailureMode `mapstructure:"failure_mode" validate:"required,oneof=fail_closed fail_open"`

	// LookupTimeout bounds every external lookup performed by an adjustment
	// feature; a timeout is treated as a feature failure
	LookupTimeout time.Duration `mapstructure:"lookup_timeout" validate:"gt=0"`

	// HistoryCapacity bounds the quote history ledger
	HistoryCapacity int `mapstructure:"history_capacity" validate:"gt=0"`

	Features   FeatureToggles   `mapstructure:"features"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Seasonal   SeasonalConfig   `mapstructure:"seasonal"`
	Demand     DemandConfig     `mapstructure:"demand"`
	Geographic GeographicConfig `mapstructure:"geographic"`
	Loyalty    LoyaltyConfig    `mapstructure:"loyalty"`
}

// FeatureToggles enables or disables individual adjustment features. The
// pipeline order is fixed at construction; toggles only control membership.
type FeatureToggles struct {
	Schedule   bool `mapstructure:"schedule"`
	Seasonal   bool `mapstructure:"seasonal"`
	PromoCode  bool `mapstructure:"promo_code"`
	Loyalty    bool `mapstructure:"loyalty"`
	Experiment bool `mapstructure:"experiment"`
	Demand     bool `mapstructure:"demand"`
	Geographic bool `mapstructure:"geographic"`
}

// ScheduleConfig drives the dynamic time/day feature. A zero multiplier means
// "not configured" and defaults to 1 at evaluation time.
type ScheduleConfig struct {
	PeakStartHour     int     `mapstructure:"peak_start_hour" validate:"gte=0,lte=23"`
	PeakEndHour       int     `mapstructure:"peak_end_hour" validate:"gte=0,lte=23"`
	PeakMultiplier    float64 `mapstructure:"peak_multiplier" validate:"gte=0"`
	OffPeakMultiplier float64 `mapstructure:"off_peak_multiplier" validate:"gte=0"`
	WeekendMultiplier float64 `mapstructure:"weekend_multiplier" validate:"gte=0"`
	WeekdayMultiplier float64 `mapstructure:"weekday_multiplier" validate:"gte=0"`
}

// HolidayWindow is a date range with its own multiplier, e.g. Dec 20 - Jan 6
type HolidayWindow struct {
	Name       string    `mapstructure:"name"`
	Start      time.Time `mapstructure:"start"`
	End        time.Time `mapstructure:"end"`
	Multiplier float64   `mapstructure:"multiplier" validate:"gte=0"`
}

// SeasonalConfig drives month, season and holiday multipliers. Month keys are
// 1-12, season keys are spring/summer/autumn/winter.
type SeasonalConfig struct {
	MonthMultipliers  map[int]float64    `mapstructure:"month_multipliers"`
	SeasonMultipliers map[string]float64 `mapstructure:"season_multipliers"`
	Holidays          []HolidayWindow    `mapstructure:"holidays"`
}

// DemandConfig maps demand levels to multipliers. CapacityThreshold is a
// utilization fraction (0-1) above which CapacityMultiplier also applies.
type DemandConfig struct {
	LevelMultipliers   map[string]float64 `mapstructure:"level_multipliers"`
	CapacityThreshold  float64            `mapstructure:"capacity_threshold" validate:"gte=0,lte=1"`
	CapacityMultiplier float64            `mapstructure:"capacity_multiplier" validate:"gte=0"`
}

// GeographicConfig drives zip and region multipliers plus the bounded
// cost-of-living scaling factor.
type GeographicConfig struct {
	ZipMultipliers    map[string]float64 `mapstructure:"zip_multipliers"`
	RegionMultipliers map[string]float64 `mapstructure:"region_multipliers"`

	CostOfLiving CostOfLivingConfig `mapstructure:"cost_of_living"`
}

// CostOfLivingConfig configures the external cost-of-living index lookup.
// The fetched index is mapped into [MinFactor, MaxFactor] before applying.
type CostOfLivingConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	MinFactor         float64       `mapstructure:"min_factor"`
	MaxFactor         float64       `mapstructure:"max_factor"`
}

// LoyaltyConfig is the loyalty program definition: tier discounts, points
// redemption and the frequency bonus.
type LoyaltyConfig struct {
	// TierDiscounts maps loyalty tier name to discount percentage (0-100)
	TierDiscounts map[string]float64 `mapstructure:"tier_discounts"`
	// PointValue is the currency value of a single redeemed point
	PointValue float64 `mapstructure:"point_value" validate:"gte=0"`
	// MinRedeemPoints is the minimum balance required to opt into redemption
	MinRedeemPoints int `mapstructure:"min_redeem_points" validate:"gte=0"`
	// FrequencyBonusThreshold is the number of past bookings that unlocks the bonus
	FrequencyBonusThreshold int `mapstructure:"frequency_bonus_threshold" validate:"gte=0"`
	// FrequencyBonusPercent is the bonus discount percentage (0-100)
	FrequencyBonusPercent float64 `mapstructure:"frequency_bonus_percent" validate:"gte=0,lte=100"`
}

func (c PricingConfig) Validate() error {
	if !c.FailureMode.Validate() {
		return fmt.Errorf("invalid failure mode: %s", c.FailureMode)
	}
	if c.Geographic.CostOfLiving.Enabled {
		col := c.Geographic.CostOfLiving
		if col.MinFactor <= 0 || col.MaxFactor < col.MinFactor {
			return fmt.Errorf("invalid cost of living factor bounds: [%f, %f]", col.MinFactor, col.MaxFactor)
		}
	}
	return nil
}

func setPricingDefaults(v *viper.Viper) {
	v.SetDefault("pricing.tax_rate", 0.25)
	v.SetDefault("pricing.window_minimum_charge", 900)
	v.SetDefault("pricing.failure_mode", string(types.FailureModeClosed))
	v.SetDefault("pricing.lookup_timeout", 2*time.Second)
	v.SetDefault("pricing.history_capacity", 1000)
	v.SetDefault("pricing.features.schedule", true)
	v.SetDefault("pricing.features.seasonal", true)
	v.SetDefault("pricing.features.promo_code", true)
	v.SetDefault("pricing.features.loyalty", true)
	v.SetDefault("pricing.features.experiment", true)
	v.SetDefault("pricing.features.demand", false)
	v.SetDefault("pricing.features.geographic", true)
	v.SetDefault("pricing.geographic.cost_of_living.min_factor", 0.8)
	v.SetDefault("pricing.geographic.cost_of_living.max_factor", 1.2)
	v.SetDefault("pricing.geographic.cost_of_living.requests_per_second", 5)
	v.SetDefault("pricing.geographic.cost_of_living.cache_ttl", 30*time.Minute)
}

// DefaultPricingConfig returns the engine defaults used by tests and the
// preview CLI when no config file is present.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		TaxRate:             0.25,
		WindowMinimumCharge: 900,
		FailureMode:         types.FailureModeClosed,
		LookupTimeout:       2 * time.Second,
		HistoryCapacity:     1000,
		Features: FeatureToggles{
			Schedule:   true,
			Seasonal:   true,
			PromoCode:  true,
			Loyalty:    true,
			Experiment: true,
			Demand:     false,
			Geographic: true,
		},
		Schedule: ScheduleConfig{
			PeakStartHour:     8,
			PeakEndHour:       18,
			PeakMultiplier:    1,
			OffPeakMultiplier: 1,
			WeekendMultiplier: 1,
			WeekdayMultiplier: 1,
		},
		Demand: DemandConfig{
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
		Geographic: GeographicConfig{
			CostOfLiving: CostOfLivingConfig{
				Enabled:           false,
				RequestsPerSecond: 5,
				CacheTTL:          30 * time.Minute,
				MinFactor:         0.8,
				MaxFactor:         1.2,
			},
		},
		Loyalty: LoyaltyConfig{
			TierDiscounts: map[string]float64{
				"bronze":   0,
				"silver":   3,
				"gold":     5,
				"platinum": 8,
			},
			PointValue:              0.5,
			MinRedeemPoints:         100,
			FrequencyBonusThreshold: 10,
			FrequencyBonusPercent:   2,
		},
	}
}
