package promocode

import (
	"context"
)

// Repository defines the interface for promo code data access.
// IncrementUsage must be atomic per code: concurrent redemptions of the same
// code must not observe lost updates, and the increment must fail once the
// usage limit is reached.
type Repository interface {
	Create(ctx context.Context, code *PromoCode) error
	Get(ctx context.Context, id string) (*PromoCode, error)
	GetByCode(ctx context.Context, code string) (*PromoCode, error)
	Update(ctx context.Context, code *PromoCode) error
	IncrementUsage(ctx context.Context, id string) error
}
