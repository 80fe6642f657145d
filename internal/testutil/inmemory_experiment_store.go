package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/quotewise/quotewise/internal/domain/experiment"
	ierr "github.com/quotewise/quotewise/internal/errors"
)

// InMemoryExperimentStore implements experiment.Repository. ListRunning
// returns experiments in registration order so compounding is deterministic.
type InMemoryExperimentStore struct {
	*InMemoryStore[*experiment.Experiment]
	mu    sync.Mutex
	order []string
}

func NewInMemoryExperimentStore() *InMemoryExperimentStore {
	return &InMemoryExperimentStore{
		InMemoryStore: NewInMemoryStore[*experiment.Experiment](),
	}
}

// Helper to copy experiment
func copyExperiment(e *experiment.Experiment) *experiment.Experiment {
	if e == nil {
		return nil
	}

	copied := *e
	copied.Variants = append([]experiment.Variant(nil), e.Variants...)
	if e.StartDate != nil {
		start := *e.StartDate
		copied.StartDate = &start
	}
	if e.EndDate != nil {
		end := *e.EndDate
		copied.EndDate = &end
	}
	return &copied
}

func (s *InMemoryExperimentStore) Create(ctx context.Context, e *experiment.Experiment) error {
	if e == nil {
		return ierr.NewError("experiment cannot be nil").
			WithHint("Experiment cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.InMemoryStore.Create(ctx, e.ID, copyExperiment(e)); err != nil {
		return ierr.NewError("experiment already exists").
			WithHint("An experiment with this ID already exists").
			WithReportableDetails(map[string]any{"id": e.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	s.order = append(s.order, e.ID)
	return nil
}

func (s *InMemoryExperimentStore) Get(ctx context.Context, id string) (*experiment.Experiment, error) {
	e, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("experiment not found").
			WithHint("Experiment not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyExperiment(e), nil
}

func (s *InMemoryExperimentStore) ListRunning(ctx context.Context, at time.Time) ([]*experiment.Experiment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var running []*experiment.Experiment
	for _, id := range s.order {
		e, err := s.InMemoryStore.Get(ctx, id)
		if err != nil {
			continue
		}
		if e.IsRunningAt(at) {
			running = append(running, copyExperiment(e))
		}
	}
	return running, nil
}

// Clear removes all experiments
func (s *InMemoryExperimentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.InMemoryStore.Clear()
	s.order = nil
}
