package types

import "time"

// PricingModel determines how a service's base price is resolved from the
// booking's primary numeric driver (area, room count or window quantities).
type PricingModel string

const (
	// PricingModelFlatPerArea multiplies the area by a single flat rate
	PricingModelFlatPerArea PricingModel = "flat_per_area"
	// PricingModelTieredPerArea resolves a per-unit rate from area tiers
	PricingModelTieredPerArea PricingModel = "tiered_per_area"
	// PricingModelPerRoom multiplies the room count by a per-room rate
	PricingModelPerRoom PricingModel = "per_room"
	// PricingModelPerWindowBand sums per-band unit prices by quantity
	PricingModelPerWindowBand PricingModel = "per_window_band"
)

func (m PricingModel) Validate() bool {
	switch m {
	case PricingModelFlatPerArea, PricingModelTieredPerArea, PricingModelPerRoom, PricingModelPerWindowBand:
		return true
	}
	return false
}

// PricingFeatureType identifies an adjustment feature in the pricing pipeline
type PricingFeatureType string

const (
	PricingFeatureSchedule   PricingFeatureType = "schedule"
	PricingFeatureSeasonal   PricingFeatureType = "seasonal"
	PricingFeaturePromoCode  PricingFeatureType = "promo_code"
	PricingFeatureLoyalty    PricingFeatureType = "loyalty"
	PricingFeatureExperiment PricingFeatureType = "experiment"
	PricingFeatureDemand     PricingFeatureType = "demand"
	PricingFeatureGeographic PricingFeatureType = "geographic"
)

// FailureMode controls how the pipeline reacts to a failing adjustment feature.
// FailureModeClosed aborts the whole quote, FailureModeOpen logs and skips the
// feature leaving the running price untouched.
type FailureMode string

const (
	FailureModeClosed FailureMode = "fail_closed"
	FailureModeOpen   FailureMode = "fail_open"
)

func (m FailureMode) Validate() bool {
	return m == FailureModeClosed || m == FailureModeOpen
}

// PromoCodeType represents the discount mechanics of a promotional code
type PromoCodeType string

const (
	// PromoCodeTypePercentage takes a percentage off the running price
	PromoCodeTypePercentage PromoCodeType = "percentage"
	// PromoCodeTypeFixed takes a fixed amount off, capped at the running price
	PromoCodeTypeFixed PromoCodeType = "fixed"
	// PromoCodeTypeTiered picks the highest qualifying threshold tier
	PromoCodeTypeTiered PromoCodeType = "tiered"
	// PromoCodeTypeFirstTime applies only to first-time customers
	PromoCodeTypeFirstTime PromoCodeType = "first_time"
)

// Season is derived from the booking month for seasonal adjustments
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonFromMonth maps a calendar month to its season (northern hemisphere)
func SeasonFromMonth(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// DemandLevel represents the externally supplied demand signal for a zip area
type DemandLevel string

const (
	DemandLevelVeryLow  DemandLevel = "very_low"
	DemandLevelLow      DemandLevel = "low"
	DemandLevelNormal   DemandLevel = "normal"
	DemandLevelHigh     DemandLevel = "high"
	DemandLevelVeryHigh DemandLevel = "very_high"
)
