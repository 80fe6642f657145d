package service

import (
	"testing"
	"time"

	"github.com/quotewise/quotewise/internal/api/dto"
	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/promocode"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/testutil"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service QuoteService
	history *QuoteHistory
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupTestData()
	s.setupService()
}

func (s *QuoteServiceSuite) setupService() {
	s.history = NewQuoteHistory(s.GetConfig().Pricing.HistoryCapacity)
	s.service = NewQuoteService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		CatalogRepo:     s.GetStores().CatalogRepo,
		PromoCodeRepo:   s.GetStores().PromoCodeRepo,
		ExperimentRepo:  s.GetStores().ExperimentRepo,
		LoyaltyProvider: s.GetLoyaltyProvider(),
		History:         s.history,
	})
}

func (s *QuoteServiceSuite) setupTestData() {
	ctx := s.GetContext()
	store := s.GetStores().CatalogRepo.(*testutil.InMemoryCatalogStore)

	store.AddService(&catalog.Service{
		ID:           "svc_deep_cleaning",
		Name:         "Deep Cleaning",
		PricingModel: types.PricingModelTieredPerArea,
		DefaultRate:  decimal.NewFromFloat(38),
		Tiers: []catalog.PricingTier{
			{Min: decimal.Zero, Max: decimal.NewFromInt(50), PricePerUnit: decimal.NewFromFloat(48.5)},
			{Min: decimal.NewFromInt(51), Max: decimal.NewFromInt(100), PricePerUnit: decimal.NewFromFloat(42.6)},
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	})

	store.AddFrequencyMultiplier(&catalog.FrequencyMultiplier{Key: "weekly", Multiplier: decimal.NewFromFloat(0.85)})
	store.AddAddOn(&catalog.AddOn{Key: "oven_cleaning", Name: "Oven Cleaning", FlatPrice: decimal.NewFromInt(600)})

	s.NoError(s.GetStores().PromoCodeRepo.Create(ctx, &promocode.PromoCode{
		ID:        "promo_rensave10",
		Code:      "RENSAVE10",
		Type:      types.PromoCodeTypePercentage,
		Value:     decimal.NewFromInt(10),
		Enabled:   true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}))
}

func (s *QuoteServiceSuite) weekdayBooking() time.Time {
	return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
}

func (s *QuoteServiceSuite) TestCalculateQuote() {
	resp, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ServiceID:   "svc_deep_cleaning",
		Area:        75,
		BookingTime: s.weekdayBooking(),
	})
	s.NoError(err)
	s.NotNil(resp)

	// 75 x 42.6 = 3195, 25% tax: 3993.75 rounds to 3994
	s.Equal("svc_deep_cleaning", resp.ServiceID)
	s.Equal("Deep Cleaning", resp.ServiceName)
	s.NotEmpty(resp.QuoteRef)
	s.True(decimal.NewFromInt(3994).Equal(resp.OriginalPrice), "got %s", resp.OriginalPrice)
	s.True(decimal.NewFromInt(3994).Equal(resp.FinalPrice), "got %s", resp.FinalPrice)
	s.Empty(resp.Adjustments)
}

func (s *QuoteServiceSuite) TestCalculateQuote_WithPromoCode() {
	resp, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ServiceID:   "svc_deep_cleaning",
		Area:        75,
		BookingTime: s.weekdayBooking(),
		PromoCode:   "rensave10",
	})
	s.NoError(err)

	// 3994 less 10%: 3594.6
	s.True(decimal.NewFromFloat(3594.6).Equal(resp.FinalPrice), "got %s", resp.FinalPrice)
	s.Len(resp.Adjustments, 1)
	s.Equal(types.PricingFeaturePromoCode, resp.Adjustments[0].FeatureType)
	s.Equal(true, resp.Adjustments[0].Metadata["applied"])
}

func (s *QuoteServiceSuite) TestCalculateQuote_FrequencyAndAddOn() {
	resp, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ServiceID:    "svc_deep_cleaning",
		Area:         75,
		BookingTime:  s.weekdayBooking(),
		FrequencyKey: "weekly",
		AddOnKeys:    []string{"oven_cleaning"},
	})
	s.NoError(err)

	// (3195 x 0.85 + 600) x 1.25 = 4144.6875 rounds to 4145
	s.True(decimal.NewFromInt(4145).Equal(resp.FinalPrice), "got %s", resp.FinalPrice)
}

func (s *QuoteServiceSuite) TestCalculateQuote_UnknownService() {
	resp, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ServiceID: "svc_missing",
		Area:      75,
	})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestCalculateQuote_MissingServiceID() {
	resp, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{Area: 75})
	s.Error(err)
	s.Nil(resp)
	s.True(ierr.IsValidation(err))
}

func (s *QuoteServiceSuite) TestCalculateQuote_AppendsHistory() {
	_, err := s.service.CalculateQuote(s.GetContext(), dto.CreateQuoteRequest{
		ServiceID:   "svc_deep_cleaning",
		Area:        75,
		ZipCode:     "11455",
		BookingTime: s.weekdayBooking(),
	})
	s.NoError(err)

	records := s.service.GetQuoteHistory(s.GetContext())
	s.Len(records, 1)
	s.Equal("svc_deep_cleaning", records[0].ServiceID)
	s.Equal("11455", records[0].ZipCode)
	s.Equal(types.DefaultTenantID, records[0].TenantID)
}

func (s *QuoteServiceSuite) TestCalculateQuoteBatch_PreservesOrder() {
	reqs := []dto.CreateQuoteRequest{
		{ServiceID: "svc_deep_cleaning", Area: 40, BookingTime: s.weekdayBooking()},
		{ServiceID: "svc_deep_cleaning", Area: 75, BookingTime: s.weekdayBooking()},
		{ServiceID: "svc_deep_cleaning", Area: 120, BookingTime: s.weekdayBooking()},
	}

	responses, err := s.service.CalculateQuoteBatch(s.GetContext(), reqs)
	s.NoError(err)
	s.Len(responses, 3)

	// 40 x 48.5 x 1.25 = 2425; 75 x 42.6 x 1.25 = 3993.75; 120 x 38 x 1.25 = 5700
	s.True(decimal.NewFromInt(2425).Equal(responses[0].FinalPrice), "got %s", responses[0].FinalPrice)
	s.True(decimal.NewFromInt(3994).Equal(responses[1].FinalPrice), "got %s", responses[1].FinalPrice)
	s.True(decimal.NewFromInt(5700).Equal(responses[2].FinalPrice), "got %s", responses[2].FinalPrice)
}

func (s *QuoteServiceSuite) TestCalculateQuoteBatch_FailsOnInvalidRequest() {
	reqs := []dto.CreateQuoteRequest{
		{ServiceID: "svc_deep_cleaning", Area: 40, BookingTime: s.weekdayBooking()},
		{ServiceID: "svc_missing", Area: 75, BookingTime: s.weekdayBooking()},
	}

	responses, err := s.service.CalculateQuoteBatch(s.GetContext(), reqs)
	s.Error(err)
	s.Nil(responses)
}
