package testutil

import (
	"context"

	"github.com/quotewise/quotewise/internal/domain/catalog"
	ierr "github.com/quotewise/quotewise/internal/errors"
)

// InMemoryCatalogStore implements catalog.Repository. The engine treats the
// catalog as read-only; tests seed it through the Add* helpers.
type InMemoryCatalogStore struct {
	services    *InMemoryStore[*catalog.Service]
	frequencies *InMemoryStore[*catalog.FrequencyMultiplier]
	addOns      *InMemoryStore[*catalog.AddOn]
}

func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		services:    NewInMemoryStore[*catalog.Service](),
		frequencies: NewInMemoryStore[*catalog.FrequencyMultiplier](),
		addOns:      NewInMemoryStore[*catalog.AddOn](),
	}
}

// Helper to copy service
func copyService(svc *catalog.Service) *catalog.Service {
	if svc == nil {
		return nil
	}

	copied := *svc
	copied.Tiers = append([]catalog.PricingTier(nil), svc.Tiers...)
	copied.WindowBands = append([]catalog.WindowBand(nil), svc.WindowBands...)
	return &copied
}

func (s *InMemoryCatalogStore) AddService(svc *catalog.Service) {
	ctx := context.Background()
	copied := copyService(svc)
	if err := s.services.Create(ctx, svc.ID, copied); err != nil {
		_ = s.services.Update(ctx, svc.ID, copied)
	}
}

func (s *InMemoryCatalogStore) AddFrequencyMultiplier(fm *catalog.FrequencyMultiplier) {
	ctx := context.Background()
	copied := *fm
	if err := s.frequencies.Create(ctx, fm.Key, &copied); err != nil {
		_ = s.frequencies.Update(ctx, fm.Key, &copied)
	}
}

func (s *InMemoryCatalogStore) AddAddOn(addOn *catalog.AddOn) {
	ctx := context.Background()
	copied := *addOn
	if err := s.addOns.Create(ctx, addOn.Key, &copied); err != nil {
		_ = s.addOns.Update(ctx, addOn.Key, &copied)
	}
}

func (s *InMemoryCatalogStore) GetService(ctx context.Context, id string) (*catalog.Service, error) {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("service not found").
			WithHint("Service not found").
			WithReportableDetails(map[string]any{"service_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyService(svc), nil
}

func (s *InMemoryCatalogStore) ListServices(ctx context.Context) ([]*catalog.Service, error) {
	items, err := s.services.List(ctx, nil, nil, func(i, j *catalog.Service) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}

	services := make([]*catalog.Service, 0, len(items))
	for _, svc := range items {
		services = append(services, copyService(svc))
	}
	return services, nil
}

func (s *InMemoryCatalogStore) GetFrequencyMultiplier(ctx context.Context, key string) (*catalog.FrequencyMultiplier, error) {
	fm, err := s.frequencies.Get(ctx, key)
	if err != nil {
		return nil, ierr.NewError("frequency multiplier not found").
			WithHint("Frequency multiplier not found").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrNotFound)
	}
	copied := *fm
	return &copied, nil
}

func (s *InMemoryCatalogStore) GetAddOn(ctx context.Context, key string) (*catalog.AddOn, error) {
	addOn, err := s.addOns.Get(ctx, key)
	if err != nil {
		return nil, ierr.NewError("add-on not found").
			WithHint("Add-on not found").
			WithReportableDetails(map[string]any{"key": key}).
			Mark(ierr.ErrNotFound)
	}
	copied := *addOn
	return &copied, nil
}

// Clear removes all catalog data
func (s *InMemoryCatalogStore) Clear() {
	s.services.Clear()
	s.frequencies.Clear()
	s.addOns.Clear()
}
