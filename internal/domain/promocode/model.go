package promocode

import (
	"strings"
	"time"

	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// PromoCode represents a promotional discount code. Codes are stored
// uppercase and matched case-insensitively.
type PromoCode struct {
	ID   string              `json:"id"`
	Code string              `json:"code"`
	Type types.PromoCodeType `json:"type"`

	// Value is the discount percentage for percentage/first_time codes and
	// the flat amount for fixed codes. Unused for tiered codes.
	Value decimal.Decimal `json:"value"`

	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`

	// UsageLimit caps total redemptions; nil means unlimited
	UsageLimit *int `json:"usage_limit"`
	UsageCount int  `json:"usage_count"`

	// MinimumOrder rejects the discount when the running price is below it
	MinimumOrder *decimal.Decimal `json:"minimum_order"`

	// MaxDiscount caps the computed discount amount
	MaxDiscount *decimal.Decimal `json:"max_discount"`

	// Tiers are the thresholds for tiered codes, highest qualifying wins
	Tiers []DiscountTier `json:"tiers,omitempty"`

	Enabled bool `json:"enabled"`

	types.BaseModel
}

// DiscountTier maps a price threshold to a discount percentage
type DiscountTier struct {
	Threshold decimal.Decimal `json:"threshold"`
	Percent   decimal.Decimal `json:"percent"`
}

// NormalizeCode uppercases a submitted code for case-insensitive matching
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidAt checks if the code is redeemable at the given time
func (p *PromoCode) IsValidAt(now time.Time) bool {
	if !p.Enabled {
		return false
	}

	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}

	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}

	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return false
	}

	return true
}

// CalculateDiscount computes the discount amount for the given running price.
// The amount is capped at MaxDiscount when set and never exceeds the price
// itself. firstTime gates first_time codes; for every other type it is
// ignored.
func (p *PromoCode) CalculateDiscount(price decimal.Decimal, firstTime bool) decimal.Decimal {
	var discount decimal.Decimal

	switch p.Type {
	case types.PromoCodeTypePercentage:
		discount = price.Mul(p.Value).Div(decimal.NewFromInt(100))
	case types.PromoCodeTypeFixed:
		discount = decimal.Min(p.Value, price)
	case types.PromoCodeTypeTiered:
		discount = p.tieredDiscount(price)
	case types.PromoCodeTypeFirstTime:
		if !firstTime {
			return decimal.Zero
		}
		discount = price.Mul(p.Value).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}

	if p.MaxDiscount != nil && discount.GreaterThan(*p.MaxDiscount) {
		discount = *p.MaxDiscount
	}

	return decimal.Min(discount, price)
}

// tieredDiscount picks the highest threshold tier the price qualifies for
func (p *PromoCode) tieredDiscount(price decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	bestThreshold := decimal.NewFromInt(-1)
	for _, tier := range p.Tiers {
		if price.GreaterThanOrEqual(tier.Threshold) && tier.Threshold.GreaterThan(bestThreshold) {
			bestThreshold = tier.Threshold
			best = tier.Percent
		}
	}
	return price.Mul(best).Div(decimal.NewFromInt(100))
}
