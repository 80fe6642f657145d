package dto

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/quote"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/quotewise/quotewise/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest is the booking-request snapshot submitted by the
// booking or admin-preview flow.
type CreateQuoteRequest struct {
	ServiceID string `json:"service_id" validate:"required"`

	Area             float64         `json:"area,omitempty"`
	Rooms            float64         `json:"rooms,omitempty"`
	WindowQuantities map[int]float64 `json:"window_quantities,omitempty"`

	FrequencyKey string   `json:"frequency_key,omitempty"`
	AddOnKeys    []string `json:"add_on_keys,omitempty"`

	ZipCode     string    `json:"zip_code,omitempty"`
	BookingTime time.Time `json:"booking_time,omitempty"`

	CustomerID        string `json:"customer_id,omitempty"`
	FirstTimeCustomer bool   `json:"first_time_customer,omitempty"`

	PromoCode    string `json:"promo_code,omitempty"`
	RedeemPoints bool   `json:"redeem_points,omitempty"`
}

// Validate validates the CreateQuoteRequest
func (r *CreateQuoteRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.ServiceID == "" {
		return ierr.NewError("service_id is required").
			WithHint("Please provide a service id").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToPricingContext builds the immutable per-request pricing context
func (r *CreateQuoteRequest) ToPricingContext(ctx context.Context, svc *catalog.Service) *quote.PricingContext {
	windowQuantities := make(map[int]decimal.Decimal, len(r.WindowQuantities))
	for band, qty := range r.WindowQuantities {
		windowQuantities[band] = decimal.NewFromFloat(qty)
	}

	bookingTime := r.BookingTime
	if bookingTime.IsZero() {
		bookingTime = time.Now().UTC()
	}

	return &quote.PricingContext{
		TenantID:          types.GetTenantID(ctx),
		Service:           svc,
		Area:              decimal.NewFromFloat(r.Area),
		Rooms:             decimal.NewFromFloat(r.Rooms),
		WindowQuantities:  windowQuantities,
		FrequencyKey:      r.FrequencyKey,
		AddOnKeys:         r.AddOnKeys,
		ZipCode:           r.ZipCode,
		BookingTime:       bookingTime,
		CustomerID:        r.CustomerID,
		FirstTimeCustomer: r.FirstTimeCustomer,
		PromoCode:         r.PromoCode,
		RedeemPoints:      r.RedeemPoints,
	}
}

// QuoteResponse is the priced quote returned to the caller
type QuoteResponse struct {
	QuoteRef    string `json:"quote_ref"`
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`

	OriginalPrice decimal.Decimal        `json:"original_price"`
	FinalPrice    decimal.Decimal        `json:"final_price"`
	Adjustments   []quote.AppliedFeature `json:"adjustments"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// NewQuoteResponse assembles the response from a pricing result
func NewQuoteResponse(svc *catalog.Service, result *quote.PricingResult) *QuoteResponse {
	return &QuoteResponse{
		QuoteRef:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_QUOTE),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		OriginalPrice: result.OriginalPrice,
		FinalPrice:    result.FinalPrice,
		Adjustments:   result.AppliedFeatures,
		Metadata:      result.Metadata,
	}
}
