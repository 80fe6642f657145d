package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/quotewise/quotewise/internal/api/dto"
	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/loyalty"
	"github.com/quotewise/quotewise/internal/domain/promocode"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/service"
	"github.com/quotewise/quotewise/internal/testutil"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// preview prices a single quote against a seeded demo catalog and prints the
// result as JSON. It is meant for exploring pricing configuration changes
// without a booking frontend.
func main() {
	godotenv.Load()

	serviceID := flag.String("service", "svc_deep_cleaning", "Service to quote")
	area := flag.Float64("area", 75, "Area in square meters")
	rooms := flag.Float64("rooms", 0, "Number of rooms")
	frequency := flag.String("frequency", "", "Booking frequency key")
	zipCode := flag.String("zip", "", "Zip code")
	customerID := flag.String("customer", "", "Customer id")
	promoCode := flag.String("promo", "", "Promotional code")
	bookingAt := flag.String("at", "", "Booking time (RFC 3339, defaults to now)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.L.Fatalf("Failed to load config: %v", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		logger.L.Fatalf("Failed to create logger: %v", err)
	}

	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)

	params := service.ServiceParams{
		Logger:          log,
		Config:          cfg,
		CatalogRepo:     seedCatalog(),
		PromoCodeRepo:   seedPromoCodes(ctx),
		ExperimentRepo:  testutil.NewInMemoryExperimentStore(),
		LoyaltyProvider: seedLoyalty(),
		History:         service.NewQuoteHistory(cfg.Pricing.HistoryCapacity),
	}
	quoteService := service.NewQuoteService(params)

	req := dto.CreateQuoteRequest{
		ServiceID:    *serviceID,
		Area:         *area,
		Rooms:        *rooms,
		FrequencyKey: *frequency,
		ZipCode:      *zipCode,
		CustomerID:   *customerID,
		PromoCode:    *promoCode,
	}
	if *bookingAt != "" {
		at, err := time.Parse(time.RFC3339, *bookingAt)
		if err != nil {
			log.Fatalf("Invalid booking time: %v", err)
		}
		req.BookingTime = at
	}

	resp, err := quoteService.CalculateQuote(ctx, req)
	if err != nil {
		log.Fatalw("Failed to calculate quote", "error", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalw("Failed to encode quote", "error", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

func seedCatalog() *testutil.InMemoryCatalogStore {
	store := testutil.NewInMemoryCatalogStore()

	store.AddService(&catalog.Service{
		ID:           "svc_regular_cleaning",
		Name:         "Regular Cleaning",
		PricingModel: types.PricingModelFlatPerArea,
		FlatRate:     decimal.NewFromFloat(12.5),
	})
	store.AddService(&catalog.Service{
		ID:           "svc_deep_cleaning",
		Name:         "Deep Cleaning",
		PricingModel: types.PricingModelTieredPerArea,
		DefaultRate:  decimal.NewFromFloat(38),
		Tiers: []catalog.PricingTier{
			{Min: decimal.Zero, Max: decimal.NewFromInt(50), PricePerUnit: decimal.NewFromFloat(48.5)},
			{Min: decimal.NewFromInt(51), Max: decimal.NewFromInt(100), PricePerUnit: decimal.NewFromFloat(42.6)},
			{Min: decimal.NewFromInt(101), Max: decimal.NewFromInt(200), PricePerUnit: decimal.NewFromFloat(40.2)},
		},
	})
	store.AddService(&catalog.Service{
		ID:           "svc_office_cleaning",
		Name:         "Office Cleaning",
		PricingModel: types.PricingModelPerRoom,
		PerRoomRate:  decimal.NewFromInt(250),
	})
	store.AddService(&catalog.Service{
		ID:           "svc_window_cleaning",
		Name:         "Window Cleaning",
		PricingModel: types.PricingModelPerWindowBand,
		WindowBands: []catalog.WindowBand{
			{BandIndex: 0, UnitPrice: decimal.NewFromInt(60)},
			{BandIndex: 1, UnitPrice: decimal.NewFromInt(90)},
			{BandIndex: 2, UnitPrice: decimal.NewFromInt(140), Premium: true},
		},
	})

	store.AddFrequencyMultiplier(&catalog.FrequencyMultiplier{Key: "weekly", Multiplier: decimal.NewFromFloat(0.85)})
	store.AddFrequencyMultiplier(&catalog.FrequencyMultiplier{Key: "biweekly", Multiplier: decimal.NewFromFloat(0.9)})
	store.AddFrequencyMultiplier(&catalog.FrequencyMultiplier{Key: "monthly", Multiplier: decimal.NewFromFloat(0.95)})
	store.AddAddOn(&catalog.AddOn{Key: "oven_cleaning", Name: "Oven Cleaning", FlatPrice: decimal.NewFromInt(600)})
	store.AddAddOn(&catalog.AddOn{Key: "fridge_cleaning", Name: "Fridge Cleaning", FlatPrice: decimal.NewFromInt(400)})

	return store
}

func seedPromoCodes(ctx context.Context) *testutil.InMemoryPromoCodeStore {
	store := testutil.NewInMemoryPromoCodeStore()

	store.Create(ctx, &promocode.PromoCode{
		ID:      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMO_CODE),
		Code:    "RENSAVE10",
		Type:    types.PromoCodeTypePercentage,
		Value:   decimal.NewFromInt(10),
		Enabled: true,
	})
	store.Create(ctx, &promocode.PromoCode{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMO_CODE),
		Code:         "SAVE100",
		Type:         types.PromoCodeTypeFixed,
		Value:        decimal.NewFromInt(100),
		MinimumOrder: lo.ToPtr(decimal.NewFromInt(1000)),
		Enabled:      true,
	})
	store.Create(ctx, &promocode.PromoCode{
		ID:      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROMO_CODE),
		Code:    "WELCOME20",
		Type:    types.PromoCodeTypeFirstTime,
		Value:   decimal.NewFromInt(20),
		Enabled: true,
	})

	return store
}

func seedLoyalty() *testutil.InMemoryLoyaltyProvider {
	provider := testutil.NewInMemoryLoyaltyProvider()
	provider.SetSnapshot(&loyalty.Snapshot{
		CustomerID:    "cust_demo",
		Tier:          "gold",
		Points:        450,
		TotalBookings: 14,
	})
	return provider
}
