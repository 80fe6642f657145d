package experiment

import (
	"time"

	"github.com/quotewise/quotewise/internal/types"
	"github.com/shopspring/decimal"
)

// Experiment represents a deterministic A/B price experiment. Variant
// assignment for a given (subjectID, experimentID) pair is a pure function:
// the same inputs always yield the same variant.
type Experiment struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	Variants []Variant `json:"variants"`

	// TrafficAllocation is the fraction of subjects enrolled (0-1);
	// subjects outside the allocation see the control price
	TrafficAllocation float64 `json:"traffic_allocation"`

	types.BaseModel
}

// Variant is a single treatment arm with its price multiplier
type Variant struct {
	ID              string          `json:"id"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

// IsRunningAt checks whether the experiment is active and date-valid
func (e *Experiment) IsRunningAt(now time.Time) bool {
	if !e.Active || len(e.Variants) == 0 {
		return false
	}

	if e.StartDate != nil && now.Before(*e.StartDate) {
		return false
	}

	if e.EndDate != nil && now.After(*e.EndDate) {
		return false
	}

	return true
}
