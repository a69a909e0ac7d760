package mock

import (
	"context"
	"eshop-client/internal/domain"
	"eshop-client/pkg/logger"
	"slices"
	"sync"
)

// Basket is an in-memory basket store keyed by buyer id. Unknown buyers get
// an empty basket, the way the real basket API answers.
type Basket struct {
	mu      sync.Mutex
	baskets map[string]*domain.Basket
	local   []domain.BasketItem
}

var _ domain.BasketService = (*Basket)(nil)

func NewBasket() *Basket {
	return &Basket{baskets: make(map[string]*domain.Basket)}
}

func (b *Basket) GetBasket(ctx context.Context, userID, authToken string) (*domain.Basket, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	basket, ok := b.baskets[userID]
	if !ok {
		return &domain.Basket{BuyerID: userID, Items: []domain.BasketItem{}}, nil
	}
	return basket.Clone(), nil
}

func (b *Basket) UpdateBasket(ctx context.Context, basket *domain.Basket, authToken string) (*domain.Basket, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.baskets[basket.BuyerID] = basket.Clone()
	logger.WithContext(ctx).Debug().
		Str("buyer_id", basket.BuyerID).
		Int("lines", basket.Count()).
		Msg("Mock basket updated")
	return basket.Clone(), nil
}

func (b *Basket) ClearBasket(ctx context.Context, userID, authToken string) error {
	if authToken == "" {
		return domain.ErrNotAuthenticated
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.baskets, userID)
	return nil
}

func (b *Basket) LocalBasketItems() []domain.BasketItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.local)
}

func (b *Basket) SetLocalBasketItems(items []domain.BasketItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.local = slices.Clone(items)
}
