package main

import (
	"context"
	"eshop-client/config"
	"eshop-client/internal/appenv"
	"eshop-client/internal/domain"
	"eshop-client/internal/events"
	"eshop-client/internal/infrastructure/cache"
	"eshop-client/internal/infrastructure/mock"
	"eshop-client/internal/infrastructure/settings"
	"eshop-client/internal/navigation"
	"eshop-client/internal/viewmodel"
	"eshop-client/pkg/logger"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	policy, err := viewmodel.ParseSyncPolicy(cfg.BasketSyncPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid basket sync policy")
	}

	store, err := settings.Open(cfg.SettingsFile, cfg.UseMocks)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	identity, err := mock.NewIdentity(cfg.MockJWTSecret, cfg.MockTokenExpiry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize mock identity")
	}

	// Brands and types only; products always go to the catalog service.
	memCache := cache.NewMemoryCache(cfg.CacheCatalogTTL, cfg.CacheCleanupInterval)

	// --- Services ---
	env := appenv.New(store, appenv.MockServices(identity), appenv.RemoteServices(cfg, memCache))

	// --- View-models ---
	bus := events.NewBus()
	nav := navigation.NewStack(domain.RouteCatalog)
	basketVM := viewmodel.NewBasketViewModel(env, store, nav, policy)
	catalogVM := viewmodel.NewCatalogViewModel(env, store, nav, bus)

	stopWatch := basketVM.Watch(bus)
	defer stopWatch()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.ServiceStart("eshop", version)

	sh := &shell{
		in:       os.Stdin,
		out:      os.Stdout,
		store:    store,
		env:      env,
		identity: identity,
		nav:      nav,
		catalog:  catalogVM,
		basket:   basketVM,
	}
	if err := sh.run(ctx); err != nil {
		log.Error().Err(err).Msg("Shell stopped with error")
	}

	if err := store.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to save settings")
	}
	hits, misses, entries := memCache.Stats()
	log.Debug().Int64("hits", hits).Int64("misses", misses).Int("entries", entries).Msg("Catalog cache stats")
	logger.ServiceStop("eshop")
}
