package experiment

import (
	"context"
	"time"
)

// Repository defines read access to experiment definitions. Registration
// order is preserved by ListRunning so concurrent experiments compound
// deterministically.
type Repository interface {
	Create(ctx context.Context, exp *Experiment) error
	Get(ctx context.Context, id string) (*Experiment, error)
	ListRunning(ctx context.Context, at time.Time) ([]*Experiment, error)
}
