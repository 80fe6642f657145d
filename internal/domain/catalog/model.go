package catalog

import (
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// Service represents a bookable service with its pricing model and the
// model-specific parameters. Services are externally owned configuration:
// loaded per quote and treated as read-only by the engine.
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// PricingModel selects how the base price is resolved
	PricingModel types.PricingModel `json:"pricing_model"`

	// FlatRate is the per-unit rate for flat_per_area pricing
	FlatRate decimal.Decimal `json:"flat_rate"`

	// PerRoomRate is the per-room rate for per_room pricing
	PerRoomRate decimal.Decimal `json:"per_room_rate"`

	// DefaultRate is the per-unit fallback for tiered_per_area pricing when
	// no tier contains the requested area
	DefaultRate decimal.Decimal `json:"default_rate"`

	// Tiers are evaluated in listed order for tiered_per_area pricing
	Tiers []PricingTier `json:"tiers,omitempty"`

	// WindowBands are the per-band unit prices for per_window_band pricing
	WindowBands []WindowBand `json:"window_bands,omitempty"`

	types.BaseModel
}

// PricingTier maps an inclusive [Min, Max] area range to a per-unit price.
// The first matching tier wins when tiers are evaluated in listed order.
type PricingTier struct {
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

// Contains reports whether the area falls within the tier's inclusive bounds
func (t PricingTier) Contains(area decimal.Decimal) bool {
	return area.GreaterThanOrEqual(t.Min) && area.LessThanOrEqual(t.Max)
}

// WindowBand is a window type priced per unit. Premium bands (e.g. balcony
// glazing) never trigger the aggregate minimum-charge floor on their own.
type WindowBand struct {
	BandIndex int             `json:"band_index"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Premium   bool            `json:"premium"`
}

// FrequencyMultiplier scales only the recurring base service charge, never
// add-ons or surcharges.
type FrequencyMultiplier struct {
	Key        string          `json:"key"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// AddOn is a flat, frequency-independent charge optionally selected by the
// customer (e.g. oven cleaning, fridge cleaning).
type AddOn struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	FlatPrice decimal.Decimal `json:"flat_price"`
}
