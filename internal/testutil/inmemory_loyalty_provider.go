package testutil

import (
	"context"
	"sync"

	"github.com/quotewise/quotewise/internal/domain/loyalty"
	ierr "github.com/quotewise/quotewise/internal/errors"
)

// InMemoryLoyaltyProvider implements loyalty.Provider from a seeded map
type InMemoryLoyaltyProvider struct {
	mu        sync.RWMutex
	snapshots map[string]*loyalty.Snapshot
}

func NewInMemoryLoyaltyProvider() *InMemoryLoyaltyProvider {
	return &InMemoryLoyaltyProvider{
		snapshots: make(map[string]*loyalty.Snapshot),
	}
}

func (p *InMemoryLoyaltyProvider) SetSnapshot(snapshot *loyalty.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	copied := *snapshot
	p.snapshots[snapshot.CustomerID] = &copied
}

func (p *InMemoryLoyaltyProvider) GetSnapshot(ctx context.Context, customerID string) (*loyalty.Snapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot, exists := p.snapshots[customerID]
	if !exists {
		return nil, ierr.NewError("loyalty snapshot not found").
			WithHint("No loyalty record for this customer").
			WithReportableDetails(map[string]any{"customer_id": customerID}).
			Mark(ierr.ErrNotFound)
	}
	copied := *snapshot
	return &copied, nil
}

// Clear removes all snapshots
func (p *InMemoryLoyaltyProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = make(map[string]*loyalty.Snapshot)
}
