package service

import (
	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/experiment"
	"github.com/quotewise/quotewise/internal/domain/loyalty"
	"github.com/quotewise/quotewise/internal/domain/promocode"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/lookup"
)

// ServiceParams holds common dependencies for the pricing services. The
// engine owns no global state: one ServiceParams is assembled per tenant or
// process and passed by reference into each service constructor.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories (read-only configuration owned by the booking subsystem)
	CatalogRepo    catalog.Repository
	PromoCodeRepo  promocode.Repository
	ExperimentRepo experiment.Repository

	// External collaborators
	LoyaltyProvider    loyalty.Provider
	DemandSource       lookup.DemandSource
	CostOfLivingSource lookup.CostOfLivingSource

	// History is the shared bounded quote ledger
	History *QuoteHistory
}
