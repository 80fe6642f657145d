package lookup

import (
	"context"
	"time"

	"github.com/quotewise/quotewise/internal/types"
)

// DemandSignal is the externally supplied demand state for a zip area
type DemandSignal struct {
	Level               types.DemandLevel `json:"level"`
	CapacityUtilization float64           `json:"capacity_utilization"`
}

// DemandSource supplies current demand data. Implementations may call out to
// a capacity service; the pipeline bounds each call with the configured
// lookup timeout.
type DemandSource interface {
	CurrentDemand(ctx context.Context, zipCode string, at time.Time) (*DemandSignal, error)
}

// CostOfLivingSource supplies a normalized cost-of-living index for a zip
// code, where 1.0 means national par.
type CostOfLivingSource interface {
	Index(ctx context.Context, zipCode string) (float64, error)
}

// StaticDemandSource returns a fixed signal; used by tests and the preview CLI
type StaticDemandSource struct {
	Signal DemandSignal
}

func (s *StaticDemandSource) CurrentDemand(_ context.Context, _ string, _ time.Time) (*DemandSignal, error) {
	signal := s.Signal
	return &signal, nil
}

// StaticCostOfLivingSource serves indices from a fixed map; zips without an
// entry resolve to par.
type StaticCostOfLivingSource struct {
	Indices map[string]float64
}

func (s *StaticCostOfLivingSource) Index(_ context.Context, zipCode string) (float64, error) {
	if idx, ok := s.Indices[zipCode]; ok {
		return idx, nil
	}
	return 1.0, nil
}
