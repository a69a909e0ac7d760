package viewmodel

import (
	"context"
	"errors"
	"sync"

	"eshop-client/internal/domain"
	"eshop-client/internal/events"

	"github.com/shopspring/decimal"
)

var errRemote = errors.New("remote down")

type fakeSettings struct {
	token string
	mocks bool
}

func (s *fakeSettings) AuthAccessToken() string       { return s.token }
func (s *fakeSettings) SetAuthAccessToken(tok string) { s.token = tok }
func (s *fakeSettings) UseMocks() bool                { return s.mocks }
func (s *fakeSettings) SetUseMocks(v bool)            { s.mocks = v }
func (s *fakeSettings) Save() error                   { return nil }

type fakeUsers struct {
	calls  int
	tokens []string
	err    error
}

func (u *fakeUsers) GetUserInfo(_ context.Context, token string) (*domain.UserInfo, error) {
	u.calls++
	u.tokens = append(u.tokens, token)
	if u.err != nil {
		return nil, u.err
	}
	return &domain.UserInfo{UserID: "user-1"}, nil
}

type fakeBaskets struct {
	mu        sync.Mutex
	basket    *domain.Basket // nil means the buyer has none
	getCalls  int
	updates   int
	getErr    error
	updateErr error
	local     []domain.BasketItem
}

func (b *fakeBaskets) GetBasket(_ context.Context, userID, _ string) (*domain.Basket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getCalls++
	if b.getErr != nil {
		return nil, b.getErr
	}
	return b.basket.Clone(), nil
}

func (b *fakeBaskets) UpdateBasket(_ context.Context, basket *domain.Basket, _ string) (*domain.Basket, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates++
	if b.updateErr != nil {
		return nil, b.updateErr
	}
	b.basket = basket.Clone()
	return basket.Clone(), nil
}

func (b *fakeBaskets) ClearBasket(context.Context, string, string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.basket = &domain.Basket{BuyerID: "user-1"}
	return nil
}

func (b *fakeBaskets) LocalBasketItems() []domain.BasketItem   { return b.local }
func (b *fakeBaskets) SetLocalBasketItems(i []domain.BasketItem) { b.local = i }

func (b *fakeBaskets) remote() *domain.Basket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.basket.Clone()
}

type fakeCatalog struct {
	mu          sync.Mutex
	items       []domain.CatalogItem
	brands      []domain.CatalogBrand
	types       []domain.CatalogType
	calls       int
	filterCalls int
	err         error
}

func (c *fakeCatalog) count() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *fakeCatalog) GetCatalog(context.Context) ([]domain.CatalogItem, error) {
	c.count()
	return c.items, c.err
}

func (c *fakeCatalog) GetCatalogItem(_ context.Context, id string) (*domain.CatalogItem, error) {
	c.count()
	for _, it := range c.items {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (c *fakeCatalog) GetCatalogBrands(context.Context) ([]domain.CatalogBrand, error) {
	c.count()
	return c.brands, c.err
}

func (c *fakeCatalog) GetCatalogTypes(context.Context) ([]domain.CatalogType, error) {
	c.count()
	return c.types, c.err
}

func (c *fakeCatalog) Filter(_ context.Context, brandID, typeID string) ([]domain.CatalogItem, error) {
	c.mu.Lock()
	c.filterCalls++
	c.mu.Unlock()
	var out []domain.CatalogItem
	for _, it := range c.items {
		if it.CatalogBrandID == brandID && it.CatalogTypeID == typeID {
			out = append(out, it)
		}
	}
	return out, c.err
}

type fakeEnv struct {
	users   *fakeUsers
	baskets *fakeBaskets
	catalog *fakeCatalog
}

func (e *fakeEnv) UserService() domain.UserService       { return e.users }
func (e *fakeEnv) BasketService() domain.BasketService   { return e.baskets }
func (e *fakeEnv) CatalogService() domain.CatalogService { return e.catalog }

type fakeNav struct {
	pushed []string
	pops   int
}

func (n *fakeNav) NavigateTo(_ context.Context, route string, _ map[string]string) error {
	n.pushed = append(n.pushed, route)
	return nil
}

func (n *fakeNav) Pop(context.Context) error {
	n.pops++
	return nil
}

type recordingBus struct {
	published []events.Event
}

func (r *recordingBus) Publish(_ context.Context, ev events.Event) {
	r.published = append(r.published, ev)
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		users:   &fakeUsers{},
		baskets: &fakeBaskets{basket: &domain.Basket{BuyerID: "user-1"}},
		catalog: &fakeCatalog{
			items: []domain.CatalogItem{
				{ID: "1", Name: "Hoodie", Price: price("19.50"), CatalogBrandID: "b1", CatalogTypeID: "t1"},
				{ID: "2", Name: "Mug", Price: price("8.50"), CatalogBrandID: "b1", CatalogTypeID: "t2"},
				{ID: "3", Name: "Cap", Price: price("12.00"), CatalogBrandID: "b2", CatalogTypeID: "t1"},
			},
			brands: []domain.CatalogBrand{{ID: "b1", Brand: ".NET"}, {ID: "b2", Brand: "Other"}},
			types:  []domain.CatalogType{{ID: "t1", Type: "T-Shirt"}, {ID: "t2", Type: "Mug"}},
		},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, product string, qty int, unit string) domain.BasketItem {
	return domain.BasketItem{ID: id, ProductID: product, ProductName: "p" + product, Quantity: qty, UnitPrice: price(unit)}
}
