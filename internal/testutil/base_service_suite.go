package testutil

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/config"
	"github.com/quotewise/quotewise/internal/domain/catalog"
	"github.com/quotewise/quotewise/internal/domain/experiment"
	"github.com/quotewise/quotewise/internal/domain/promocode"
	"github.com/quotewise/quotewise/internal/logger"
	"github.com/quotewise/quotewise/internal/types"
	"github.com/quotewise/quotewise/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CatalogRepo    catalog.Repository
	PromoCodeRepo  promocode.Repository
	ExperimentRepo experiment.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	stores          Stores
	loyaltyProvider *InMemoryLoyaltyProvider
	logger          *logger.Logger
	config          *config.Configuration
	now             time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	// Initialize logger with test config
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Pricing: config.DefaultPricingConfig(),
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.config.Pricing = config.DefaultPricingConfig()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		CatalogRepo:    NewInMemoryCatalogStore(),
		PromoCodeRepo:  NewInMemoryPromoCodeStore(),
		ExperimentRepo: NewInMemoryExperimentStore(),
	}
	s.loyaltyProvider = NewInMemoryLoyaltyProvider()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CatalogRepo.(*InMemoryCatalogStore).Clear()
	s.stores.PromoCodeRepo.(*InMemoryPromoCodeStore).Clear()
	s.stores.ExperimentRepo.(*InMemoryExperimentStore).Clear()
	s.loyaltyProvider.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetLoyaltyProvider returns the test loyalty provider
func (s *BaseServiceTestSuite) GetLoyaltyProvider() *InMemoryLoyaltyProvider {
	return s.loyaltyProvider
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
