package viewmodel

import (
	"context"
	"eshop-client/config"
	"eshop-client/internal/domain"
	"eshop-client/internal/events"
	"eshop-client/pkg/logger"
	"fmt"

	"github.com/shopspring/decimal"
)

// SyncPolicy decides how a local basket change relates to the remote write.
type SyncPolicy int

const (
	// SyncOptimistic changes the local list first and rolls it back when the
	// remote update fails.
	SyncOptimistic SyncPolicy = iota
	// SyncCommitFirst touches the local list only after the remote store
	// accepted the change.
	SyncCommitFirst
)

func ParseSyncPolicy(s string) (SyncPolicy, error) {
	switch s {
	case config.SyncPolicyOptimistic, "":
		return SyncOptimistic, nil
	case config.SyncPolicyCommitFirst:
		return SyncCommitFirst, nil
	}
	return SyncOptimistic, fmt.Errorf("unknown sync policy %q", s)
}

func (p SyncPolicy) String() string {
	if p == SyncCommitFirst {
		return config.SyncPolicyCommitFirst
	}
	return config.SyncPolicyOptimistic
}

type BasketViewModel struct {
	Base

	env      domain.AppEnvironment
	settings domain.SettingsService
	nav      domain.NavigationService
	policy   SyncPolicy

	items *ObservableCollection[domain.BasketItem]

	AddCommand      *Command[domain.BasketItem]
	DeleteCommand   *Command[domain.BasketItem]
	CheckoutCommand *Command[struct{}]
}

func NewBasketViewModel(env domain.AppEnvironment, settings domain.SettingsService, nav domain.NavigationService, policy SyncPolicy) *BasketViewModel {
	vm := &BasketViewModel{
		env:      env,
		settings: settings,
		nav:      nav,
		policy:   policy,
		items:    NewObservableCollection[domain.BasketItem](),
	}

	vm.AddCommand = NewCommand("basket.add", vm.AddItem)
	vm.DeleteCommand = NewCommand("basket.delete", vm.DeleteItem)
	vm.CheckoutCommand = NewCommand("basket.checkout", func(ctx context.Context, _ struct{}) error {
		return vm.Checkout(ctx)
	})
	return vm
}

func (vm *BasketViewModel) BasketItems() *ObservableCollection[domain.BasketItem] {
	return vm.items
}

// BadgeCount is the sum of line quantities.
func (vm *BasketViewModel) BadgeCount() int {
	return domain.SumQuantity(vm.items.Items())
}

// Total is the sum of quantity × unit price.
func (vm *BasketViewModel) Total() decimal.Decimal {
	return domain.SumTotal(vm.items.Items())
}

func (vm *BasketViewModel) Policy() SyncPolicy { return vm.policy }

// Initialize loads the buyer's remote basket into the local list.
func (vm *BasketViewModel) Initialize(ctx context.Context) error {
	basket, _, err := vm.remoteBasket(ctx)
	if err != nil {
		return err
	}

	var items []domain.BasketItem
	if basket != nil {
		items = basket.Items
	}
	vm.items.ReloadData(items)
	vm.recalculateTotal()
	return nil
}

// AddItem appends item locally and to the remote basket.
func (vm *BasketViewModel) AddItem(ctx context.Context, item domain.BasketItem) error {
	defer vm.recalculateTotal()

	if vm.policy == SyncCommitFirst {
		if err := vm.pushChange(ctx, func(b *domain.Basket) { b.Add(item) }); err != nil {
			return err
		}
		vm.items.Add(item)
		return nil
	}

	idx := vm.items.Add(item)
	if err := vm.pushChange(ctx, func(b *domain.Basket) { b.Add(item) }); err != nil {
		vm.rollbackAdd(ctx, idx, item)
		return err
	}
	return nil
}

// DeleteItem removes the matching line locally and from the remote basket.
func (vm *BasketViewModel) DeleteItem(ctx context.Context, item domain.BasketItem) error {
	defer vm.recalculateTotal()

	if vm.policy == SyncCommitFirst {
		if err := vm.pushChange(ctx, func(b *domain.Basket) { b.Remove(item) }); err != nil {
			return err
		}
		vm.items.RemoveFunc(item.SameLine)
		return nil
	}

	removed, idx, found := vm.items.RemoveFunc(item.SameLine)
	if err := vm.pushChange(ctx, func(b *domain.Basket) { b.Remove(item) }); err != nil {
		if found {
			logger.WithContext(ctx).Warn().Str("product_id", removed.ProductID).Msg("Rolling back basket delete")
			vm.items.Insert(idx, removed)
		}
		return err
	}
	return nil
}

// ClearItems empties the local list only; the remote basket is untouched.
func (vm *BasketViewModel) ClearItems() {
	vm.items.Clear()
	vm.recalculateTotal()
}

// Checkout hands the current lines to the checkout flow. No-op when empty.
func (vm *BasketViewModel) Checkout(ctx context.Context) error {
	items := vm.items.Items()
	if len(items) == 0 {
		return nil
	}
	vm.env.BasketService().SetLocalBasketItems(items)
	return vm.nav.NavigateTo(ctx, domain.RouteCheckout, nil)
}

// Watch reloads the basket whenever a product is added from elsewhere.
func (vm *BasketViewModel) Watch(bus *events.Bus) (cancel func()) {
	return events.Subscribe(bus, func(ctx context.Context, ev events.ProductAdded) {
		if err := vm.Initialize(ctx); err != nil {
			logger.WithContext(ctx).Error().Err(err).Msg("Failed to refresh basket after product added")
		}
	})
}

// pushChange fetches the remote basket, applies mutate and writes it back.
// A buyer without a remote basket is not an error; nothing is written.
func (vm *BasketViewModel) pushChange(ctx context.Context, mutate func(b *domain.Basket)) error {
	basket, token, err := vm.remoteBasket(ctx)
	if err != nil {
		return err
	}
	if basket == nil {
		logger.WithContext(ctx).Debug().Msg("No remote basket, keeping change local")
		return nil
	}

	mutate(basket)
	if _, err := vm.env.BasketService().UpdateBasket(ctx, basket, token); err != nil {
		return fmt.Errorf("update basket: %w", err)
	}
	return nil
}

func (vm *BasketViewModel) remoteBasket(ctx context.Context) (*domain.Basket, string, error) {
	return fetchBasket(ctx, vm.env, vm.settings)
}

func (vm *BasketViewModel) rollbackAdd(ctx context.Context, idx int, item domain.BasketItem) {
	logger.WithContext(ctx).Warn().Str("product_id", item.ProductID).Msg("Rolling back basket add")
	items := vm.items.Items()
	if idx < len(items) && items[idx].SameLine(item) {
		vm.items.RemoveAt(idx)
		return
	}
	vm.items.RemoveFunc(item.SameLine)
}

func (vm *BasketViewModel) recalculateTotal() {
	vm.OnPropertyChanged(PropBadgeCount, PropTotal)
}

// fetchBasket reads the token fresh from settings, resolves the user and
// loads their basket.
func fetchBasket(ctx context.Context, env domain.AppEnvironment, settings domain.SettingsService) (*domain.Basket, string, error) {
	token := settings.AuthAccessToken()
	user, err := env.UserService().GetUserInfo(ctx, token)
	if err != nil {
		return nil, token, fmt.Errorf("get user info: %w", err)
	}

	basket, err := env.BasketService().GetBasket(ctx, user.UserID, token)
	if err != nil {
		return nil, token, fmt.Errorf("get basket: %w", err)
	}
	return basket, token, nil
}
