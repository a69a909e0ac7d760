package appenv

import (
	"eshop-client/config"
	"eshop-client/internal/infrastructure/mock"
	"eshop-client/internal/infrastructure/remote"
	"eshop-client/pkg/cache"
)

// MockServices wires the in-process services around identity.
func MockServices(identity *mock.Identity) ServiceSet {
	return ServiceSet{
		User:    identity,
		Basket:  mock.NewBasket(),
		Catalog: mock.NewCatalog(),
	}
}

// RemoteServices wires HTTP clients for the three eShop services. Each
// service gets its own limiter.
func RemoteServices(cfg *config.Config, cs cache.CacheService) ServiceSet {
	opts := remote.Options{
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.HTTPMaxRetries,
		RateLimit:  cfg.HTTPRateLimit,
		RateBurst:  cfg.HTTPRateBurst,
	}
	return ServiceSet{
		User:   remote.NewUserClient(remote.NewClient(cfg.IdentityURL, opts)),
		Basket: remote.NewBasketClient(remote.NewClient(cfg.BasketURL, opts)),
		Catalog: remote.NewCatalogClient(
			remote.NewClient(cfg.CatalogURL, opts),
			cs, cfg.CacheCatalogTTL, cfg.CatalogPageSize,
		),
	}
}
