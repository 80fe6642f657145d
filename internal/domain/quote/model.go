package quote

import (
	"time"

	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// PricingContext is the immutable snapshot of a single quote request: the
// resolved service plus the raw booking inputs. It is built once per request
// and only read by the pipeline; features must never mutate it.
type PricingContext struct {
	TenantID string
	Service  *catalog.Service

	// Primary numeric drivers; negative or missing values resolve to a zero
	// base price upstream of the pipeline
	Area             decimal.Decimal
	Rooms            decimal.Decimal
	WindowQuantities map[int]decimal.Decimal

	FrequencyKey string
	AddOnKeys    []string

	ZipCode     string
	BookingTime time.Time

	// CustomerID doubles as the experiment subject id
	CustomerID        string
	FirstTimeCustomer bool

	PromoCode    string
	RedeemPoints bool
}

// AppliedFeature records one pipeline step that changed (or tried to change)
// the running price. Delta is newPrice - priceBeforeThisFeature.
type AppliedFeature struct {
	FeatureType types.PricingFeatureType `json:"feature_type"`
	Name        string                   `json:"name"`
	Delta       decimal.Decimal          `json:"delta"`
	Metadata    map[string]interface{}   `json:"metadata,omitempty"`
}

// PricingResult is the priced quote plus its audit trail. FinalPrice is the
// running price while the pipeline executes and the clamped final price once
// it completes; it is never negative.
type PricingResult struct {
	OriginalPrice   decimal.Decimal        `json:"original_price"`
	FinalPrice      decimal.Decimal        `json:"final_price"`
	AppliedFeatures []AppliedFeature       `json:"applied_features"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// HistoryRecord is a timestamped snapshot of a computed quote with the
// minimal context needed for audit and debugging.
type HistoryRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	TenantID  string          `json:"tenant_id"`
	ServiceID string          `json:"service_id"`
	Area      decimal.Decimal `json:"area"`
	ZipCode   string          `json:"zip_code"`
	Result    PricingResult   `json:"result"`
}
