package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quotewise/quotewise/internal/cache"
	"github.com/quotewise/quotewise/internal/config"
	ierr "github.com/quotewise/quotewise/internal/errors"
	"github.com/quotewise/quotewise/internal/httpclient"
	"github.com/quotewise/quotewise/internal/logger"
	"golang.org/x/time/rate"
)

// HTTPCostOfLivingSource fetches indices from the cost-of-living index
// service. Lookups are rate limited and memoized per zip so a burst of quote
// requests does not hammer the upstream.
type HTTPCostOfLivingSource struct {
	client  httpclient.Client
	cache   cache.Cache
	limiter *rate.Limiter
	cfg     config.CostOfLivingConfig
	logger  *logger.Logger
}

type costOfLivingResponse struct {
	ZipCode string  `json:"zip_code"`
	Index   float64 `json:"index"`
}

// NewHTTPCostOfLivingSource creates a cost-of-living source backed by the
// configured index service.
func NewHTTPCostOfLivingSource(
	client httpclient.Client,
	c cache.Cache,
	cfg config.CostOfLivingConfig,
	log *logger.Logger,
) *HTTPCostOfLivingSource {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &HTTPCostOfLivingSource{
		client:  client,
		cache:   c,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cfg:     cfg,
		logger:  log,
	}
}

// Index returns the normalized cost-of-living index for a zip code
func (s *HTTPCostOfLivingSource) Index(ctx context.Context, zipCode string) (float64, error) {
	key := cache.GenerateKey(cache.PrefixCostOfLiving, zipCode)
	if cached, ok := s.cache.Get(ctx, key); ok {
		if idx, ok := cached.(float64); ok {
			return idx, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Rate limit wait aborted").
			Mark(ierr.ErrLookupFailed)
	}

	resp, err := s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/indices/%s", s.cfg.BaseURL, zipCode),
	})
	if err != nil {
		return 0, err
	}

	var payload costOfLivingResponse
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Malformed cost of living response").
			Mark(ierr.ErrLookupFailed)
	}

	if payload.Index <= 0 {
		return 0, ierr.NewError("non-positive cost of living index").
			WithReportableDetails(map[string]any{
				"zip_code": zipCode,
				"index":    payload.Index,
			}).
			Mark(ierr.ErrLookupFailed)
	}

	s.cache.Set(ctx, key, payload.Index, s.cfg.CacheTTL)
	s.logger.Debugw("fetched cost of living index", "zip_code", zipCode, "index", payload.Index)

	return payload.Index, nil
}
