package viewmodel

import (
	"context"
	"eshop-client/internal/domain"
	"eshop-client/internal/events"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Publisher is the slice of the event bus the catalog needs.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event)
}

type CatalogViewModel struct {
	Base

	env      domain.AppEnvironment
	settings domain.SettingsService
	nav      domain.NavigationService
	bus      Publisher

	products *ObservableCollection[domain.CatalogItem]
	brands   *ObservableCollection[domain.CatalogBrand]
	types    *ObservableCollection[domain.CatalogType]

	mu              sync.Mutex
	selectedProduct *domain.CatalogItem
	brand           *domain.CatalogBrand
	typ             *domain.CatalogType
	badgeCount      int

	AddCatalogItemCommand *Command[*domain.CatalogItem]
	ShowFilterCommand     *Command[struct{}]
	FilterCommand         *Command[struct{}]
	ClearFilterCommand    *Command[struct{}]
	ViewBasketCommand     *Command[struct{}]
}

func NewCatalogViewModel(env domain.AppEnvironment, settings domain.SettingsService, nav domain.NavigationService, bus Publisher) *CatalogViewModel {
	vm := &CatalogViewModel{
		env:      env,
		settings: settings,
		nav:      nav,
		bus:      bus,
		products: NewObservableCollection[domain.CatalogItem](),
		brands:   NewObservableCollection[domain.CatalogBrand](),
		types:    NewObservableCollection[domain.CatalogType](),
	}

	vm.AddCatalogItemCommand = NewCommand("catalog.add_item", vm.AddCatalogItem)
	vm.ShowFilterCommand = NewCommand("catalog.show_filter", func(ctx context.Context, _ struct{}) error {
		return vm.ShowFilter(ctx)
	})
	vm.FilterCommand = NewCommand("catalog.filter", func(ctx context.Context, _ struct{}) error {
		return vm.Filter(ctx)
	}, WithCanExecute(vm.IsFilter))
	vm.ClearFilterCommand = NewCommand("catalog.clear_filter", func(ctx context.Context, _ struct{}) error {
		return vm.ClearFilter(ctx)
	})
	vm.ViewBasketCommand = NewCommand("catalog.view_basket", func(ctx context.Context, _ struct{}) error {
		return vm.ViewBasket(ctx)
	}, AllowConcurrent())
	return vm
}

func (vm *CatalogViewModel) Products() *ObservableCollection[domain.CatalogItem] { return vm.products }
func (vm *CatalogViewModel) Brands() *ObservableCollection[domain.CatalogBrand]  { return vm.brands }
func (vm *CatalogViewModel) Types() *ObservableCollection[domain.CatalogType]    { return vm.types }

func (vm *CatalogViewModel) SelectedProduct() *domain.CatalogItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selectedProduct
}

func (vm *CatalogViewModel) SetSelectedProduct(p *domain.CatalogItem) {
	vm.mu.Lock()
	vm.selectedProduct = p
	vm.mu.Unlock()
	vm.OnPropertyChanged(PropSelectedProduct)
}

func (vm *CatalogViewModel) Brand() *domain.CatalogBrand {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.brand
}

func (vm *CatalogViewModel) SetBrand(b *domain.CatalogBrand) {
	vm.mu.Lock()
	vm.brand = b
	vm.mu.Unlock()
	vm.OnPropertyChanged(PropBrand, PropIsFilter)
	vm.FilterCommand.NotifyCanExecuteChanged()
}

func (vm *CatalogViewModel) Type() *domain.CatalogType {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.typ
}

func (vm *CatalogViewModel) SetType(t *domain.CatalogType) {
	vm.mu.Lock()
	vm.typ = t
	vm.mu.Unlock()
	vm.OnPropertyChanged(PropType, PropIsFilter)
	vm.FilterCommand.NotifyCanExecuteChanged()
}

// BadgeCount is the number of lines in the remote basket.
func (vm *CatalogViewModel) BadgeCount() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.badgeCount
}

func (vm *CatalogViewModel) setBadgeCount(n int) {
	vm.mu.Lock()
	changed := vm.badgeCount != n
	vm.badgeCount = n
	vm.mu.Unlock()
	if changed {
		vm.OnPropertyChanged(PropBadgeCount)
	}
}

// IsFilter is true when a brand or a type is selected.
func (vm *CatalogViewModel) IsFilter() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.brand != nil || vm.typ != nil
}

// Initialize loads products, brands and types, then seeds the badge from
// the buyer's basket.
func (vm *CatalogViewModel) Initialize(ctx context.Context) error {
	return vm.IsBusyFor(ctx, func(ctx context.Context) error {
		catalog := vm.env.CatalogService()

		var (
			products []domain.CatalogItem
			brands   []domain.CatalogBrand
			types    []domain.CatalogType
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			if products, err = catalog.GetCatalog(gctx); err != nil {
				return fmt.Errorf("get catalog: %w", err)
			}
			return nil
		})
		g.Go(func() (err error) {
			if brands, err = catalog.GetCatalogBrands(gctx); err != nil {
				return fmt.Errorf("get brands: %w", err)
			}
			return nil
		})
		g.Go(func() (err error) {
			if types, err = catalog.GetCatalogTypes(gctx); err != nil {
				return fmt.Errorf("get types: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return err
		}

		basket, _, err := fetchBasket(ctx, vm.env, vm.settings)
		if err != nil {
			return err
		}

		vm.setBadgeCount(basket.Count())
		vm.products.ReloadData(products)
		vm.brands.ReloadData(brands)
		vm.types.ReloadData(types)
		return nil
	})
}

// AddCatalogItem puts one unit of item into the remote basket. A nil item
// is ignored without touching any service.
func (vm *CatalogViewModel) AddCatalogItem(ctx context.Context, item *domain.CatalogItem) error {
	if item == nil {
		return nil
	}

	basket, token, err := fetchBasket(ctx, vm.env, vm.settings)
	if err != nil {
		return err
	}
	if basket != nil {
		line := item.ToBasketItem()
		basket.Add(line)

		updated, err := vm.env.BasketService().UpdateBasket(ctx, basket, token)
		if err != nil {
			return fmt.Errorf("update basket: %w", err)
		}
		if updated == nil {
			updated = basket
		}

		vm.setBadgeCount(updated.Count())
		vm.bus.Publish(ctx, events.ProductAdded{
			Item:       line,
			BadgeCount: updated.Count(),
			OccurredAt: time.Now(),
		})
	}

	vm.SetSelectedProduct(nil)
	return nil
}

func (vm *CatalogViewModel) ShowFilter(ctx context.Context) error {
	return vm.nav.NavigateTo(ctx, domain.RouteFilter, nil)
}

// Filter reloads products for the selected brand and type, then leaves the
// filter screen. Only a complete selection queries the catalog; a partial
// one keeps the current list.
func (vm *CatalogViewModel) Filter(ctx context.Context) error {
	return vm.IsBusyFor(ctx, func(ctx context.Context) error {
		brand, typ := vm.Brand(), vm.Type()
		if brand != nil && typ != nil {
			filtered, err := vm.env.CatalogService().Filter(ctx, brand.ID, typ.ID)
			if err != nil {
				return fmt.Errorf("filter catalog: %w", err)
			}
			vm.products.ReloadData(filtered)
		}
		return vm.nav.Pop(ctx)
	})
}

// ClearFilter drops both selections and reloads the full catalog.
func (vm *CatalogViewModel) ClearFilter(ctx context.Context) error {
	return vm.IsBusyFor(ctx, func(ctx context.Context) error {
		vm.SetBrand(nil)
		vm.SetType(nil)

		all, err := vm.env.CatalogService().GetCatalog(ctx)
		if err != nil {
			return fmt.Errorf("get catalog: %w", err)
		}
		vm.products.ReloadData(all)
		return vm.nav.Pop(ctx)
	})
}

func (vm *CatalogViewModel) ViewBasket(ctx context.Context) error {
	return vm.nav.NavigateTo(ctx, domain.RouteBasket, nil)
}
