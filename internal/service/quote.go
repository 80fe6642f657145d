package service

import (
	"context"

	"github.com/quotewise/quotewise/internal/api/dto"
	"github.com/quotewise/quotewise/internal/domain/quote"
	"github.com/sourcegraph/conc/pool"
)

// QuoteService is the engine's entry point: it turns a booking-request
// snapshot into a priced, explainable quote.
type QuoteService interface {
	// CalculateQuote computes a single quote. It returns an error only for
	// invalid requests, unknown services, or fail-closed feature failures;
	// every other degradation is recorded in the result's audit trail.
	CalculateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)

	// CalculateQuoteBatch prices several independent scenarios concurrently,
	// preserving input order. Used by admin-preview flows.
	CalculateQuoteBatch(ctx context.Context, reqs []dto.CreateQuoteRequest) ([]*dto.QuoteResponse, error)

	// GetQuoteHistory returns a snapshot of the audit ledger, oldest first
	GetQuoteHistory(ctx context.Context) []quote.HistoryRecord
}

type quoteService struct {
	ServiceParams
	basePrice BasePriceService
	pipeline  *PricingPipeline
}

func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{
		ServiceParams: params,
		basePrice:     NewBasePriceService(params),
		pipeline:      NewPricingPipeline(params),
	}
}

func (s *quoteService) CalculateQuote(ctx context.Context, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc, err := s.CatalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	pctx := req.ToPricingContext(ctx, svc)

	initial, err := s.basePrice.CalculateBaseQuote(ctx, pctx)
	if err != nil {
		return nil, err
	}

	result, err := s.pipeline.Run(ctx, pctx, initial)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("calculated quote",
		"service_id", svc.ID,
		"original_price", result.OriginalPrice.String(),
		"final_price", result.FinalPrice.String(),
		"adjustments", len(result.AppliedFeatures),
	)

	return dto.NewQuoteResponse(svc, result), nil
}

func (s *quoteService) CalculateQuoteBatch(ctx context.Context, reqs []dto.CreateQuoteRequest) ([]*dto.QuoteResponse, error) {
	responses := make([]*dto.QuoteResponse, len(reqs))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, req := range reqs {
		p.Go(func(ctx context.Context) error {
			resp, err := s.CalculateQuote(ctx, req)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (s *quoteService) GetQuoteHistory(_ context.Context) []quote.HistoryRecord {
	if s.History == nil {
		return nil
	}
	return s.History.List()
}
