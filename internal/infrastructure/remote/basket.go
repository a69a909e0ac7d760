package remote

import (
	"context"
	"errors"
	"eshop-client/internal/domain"
	"net/http"
	"net/url"
	"slices"
	"sync"
)

const basketPath = "/api/v1/basket"

// BasketClient is the basket API. A buyer without a stored basket comes
// back as nil, not as an error.
type BasketClient struct {
	client *Client

	mu    sync.Mutex
	local []domain.BasketItem
}

var _ domain.BasketService = (*BasketClient)(nil)

func NewBasketClient(c *Client) *BasketClient {
	return &BasketClient{client: c}
}

func (b *BasketClient) GetBasket(ctx context.Context, userID, authToken string) (*domain.Basket, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	var dto basketDTO
	err := b.client.do(ctx, http.MethodGet, basketPath+"/"+url.PathEscape(userID), authToken, nil, &dto)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	basket := dto.toDomain()
	if basket.BuyerID == "" {
		basket.BuyerID = userID
	}
	return basket, nil
}

func (b *BasketClient) UpdateBasket(ctx context.Context, basket *domain.Basket, authToken string) (*domain.Basket, error) {
	if authToken == "" {
		return nil, domain.ErrNotAuthenticated
	}
	var dto basketDTO
	if err := b.client.do(ctx, http.MethodPost, basketPath, authToken, newBasketDTO(basket), &dto); err != nil {
		return nil, err
	}
	// Some deployments answer 200 with an empty body.
	if dto.BuyerID == "" && dto.Items == nil {
		return basket.Clone(), nil
	}
	return dto.toDomain(), nil
}

func (b *BasketClient) ClearBasket(ctx context.Context, userID, authToken string) error {
	if authToken == "" {
		return domain.ErrNotAuthenticated
	}
	err := b.client.do(ctx, http.MethodDelete, basketPath+"/"+url.PathEscape(userID), authToken, nil, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (b *BasketClient) LocalBasketItems() []domain.BasketItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.local)
}

func (b *BasketClient) SetLocalBasketItems(items []domain.BasketItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.local = slices.Clone(items)
}
