package testutil

import (
	"context"
	"sync"

	"github.com/quotewise/quotewise/internal/domain/promocode"
	ierr "github.com/quotewise/quotewise/internal/errors"
)

// InMemoryPromoCodeStore implements promocode.Repository. IncrementUsage is
// atomic: concurrent redemptions serialize on the store mutex and the
// increment fails once the usage limit is reached.
type InMemoryPromoCodeStore struct {
	*InMemoryStore[*promocode.PromoCode]
	mu     sync.Mutex
	byCode map[string]string
}

func NewInMemoryPromoCodeStore() *InMemoryPromoCodeStore {
	return &InMemoryPromoCodeStore{
		InMemoryStore: NewInMemoryStore[*promocode.PromoCode](),
		byCode:        make(map[string]string),
	}
}

// Helper to copy promo code
func copyPromoCode(p *promocode.PromoCode) *promocode.PromoCode {
	if p == nil {
		return nil
	}

	copied := *p
	copied.Tiers = append([]promocode.DiscountTier(nil), p.Tiers...)
	if p.UsageLimit != nil {
		limit := *p.UsageLimit
		copied.UsageLimit = &limit
	}
	if p.MinimumOrder != nil {
		minOrder := *p.MinimumOrder
		copied.MinimumOrder = &minOrder
	}
	if p.MaxDiscount != nil {
		maxDiscount := *p.MaxDiscount
		copied.MaxDiscount = &maxDiscount
	}
	return &copied
}

func (s *InMemoryPromoCodeStore) Create(ctx context.Context, p *promocode.PromoCode) error {
	if p == nil {
		return ierr.NewError("promo code cannot be nil").
			WithHint("Promo code cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := copyPromoCode(p)
	copied.Code = promocode.NormalizeCode(copied.Code)

	if err := s.InMemoryStore.Create(ctx, copied.ID, copied); err != nil {
		return ierr.NewError("promo code already exists").
			WithHint("A promo code with this ID already exists").
			WithReportableDetails(map[string]any{"id": p.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	s.byCode[copied.Code] = copied.ID
	return nil
}

func (s *InMemoryPromoCodeStore) Get(ctx context.Context, id string) (*promocode.PromoCode, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyPromoCode(p), nil
}

func (s *InMemoryPromoCodeStore) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	s.mu.Lock()
	id, exists := s.byCode[promocode.NormalizeCode(code)]
	s.mu.Unlock()

	if !exists {
		return nil, ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			WithReportableDetails(map[string]any{"code": code}).
			Mark(ierr.ErrNotFound)
	}
	return s.Get(ctx, id)
}

func (s *InMemoryPromoCodeStore) Update(ctx context.Context, p *promocode.PromoCode) error {
	if p == nil {
		return ierr.NewError("promo code cannot be nil").
			WithHint("Promo code cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.InMemoryStore.Get(ctx, p.ID)
	if err != nil {
		return ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			WithReportableDetails(map[string]any{"id": p.ID}).
			Mark(ierr.ErrNotFound)
	}

	copied := copyPromoCode(p)
	copied.Code = promocode.NormalizeCode(copied.Code)

	if err := s.InMemoryStore.Update(ctx, copied.ID, copied); err != nil {
		return err
	}
	delete(s.byCode, existing.Code)
	s.byCode[copied.Code] = copied.ID
	return nil
}

func (s *InMemoryPromoCodeStore) IncrementUsage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("promo code not found").
			WithHint("Promo code not found").
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return ierr.NewError("promo code usage limit reached").
			WithHint("This promo code has no redemptions left").
			WithReportableDetails(map[string]any{
				"id":          id,
				"usage_limit": *p.UsageLimit,
			}).
			Mark(ierr.ErrUsageExhausted)
	}

	copied := copyPromoCode(p)
	copied.UsageCount++
	return s.InMemoryStore.Update(ctx, id, copied)
}

// Clear removes all promo codes
func (s *InMemoryPromoCodeStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.InMemoryStore.Clear()
	s.byCode = make(map[string]string)
}
