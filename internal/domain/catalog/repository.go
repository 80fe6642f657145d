package catalog

import (
	"context"
)

// Repository defines read access to the service catalog. The engine never
// writes catalog data; it is owned by the booking/admin subsystem.
type Repository interface {
	GetService(ctx context.Context, id string) (*Service, error)
	ListServices(ctx context.Context) ([]*Service, error)
	GetFrequencyMultiplier(ctx context.Context, key string) (*FrequencyMultiplier, error)
	GetAddOn(ctx context.Context, key string) (*AddOn, error)
}
