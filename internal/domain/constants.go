package domain

// Routes
const (
	RouteCatalog  = "Catalog"
	RouteBasket   = "Basket"
	RouteCheckout = "Checkout"
	RouteFilter   = "Filter"
	RouteLogin    = "Login"
)

var Routes = []string{
	RouteCatalog,
	RouteBasket,
	RouteCheckout,
	RouteFilter,
	RouteLogin,
}

// Event names
const (
	EventProductAdded = "basket.product_added"
)
