package loyalty

import (
	"context"
)

// Snapshot is a customer's loyalty state at quote time. It is supplied by an
// external collaborator (the account subsystem); the engine never owns or
// mutates it.
type Snapshot struct {
	CustomerID    string `json:"customer_id"`
	Tier          string `json:"tier"`
	Points        int    `json:"points"`
	TotalBookings int    `json:"total_bookings"`
}

// Provider looks up a customer's loyalty snapshot. Implementations may call
// out to the account service; the pipeline bounds each call with the
// configured lookup timeout.
type Provider interface {
	GetSnapshot(ctx context.Context, customerID string) (*Snapshot, error)
}
