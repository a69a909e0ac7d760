package appenv

import (
	"eshop-client/internal/domain"
	"eshop-client/pkg/logger"
	"sync"
)

// ServiceSet is one complete backend: either the in-process mocks or the
// remote eShop services.
type ServiceSet struct {
	User    domain.UserService
	Basket  domain.BasketService
	Catalog domain.CatalogService
}

// Environment hands the view-models whichever ServiceSet is active.
type Environment struct {
	mu         sync.RWMutex
	mocks      ServiceSet
	remote     ServiceSet
	active     ServiceSet
	usingMocks bool
}

var _ domain.AppEnvironment = (*Environment)(nil)

// New picks the initial set from settings.UseMocks().
func New(settings domain.SettingsService, mocks, remote ServiceSet) *Environment {
	e := &Environment{mocks: mocks, remote: remote}
	if settings.UseMocks() {
		e.UseMockServices()
	} else {
		e.UseRemoteServices()
	}
	return e
}

func (e *Environment) UseMockServices() {
	e.mu.Lock()
	e.active = e.mocks
	e.usingMocks = true
	e.mu.Unlock()
	logger.Info().Str("services", "mock").Msg("Service environment switched")
}

func (e *Environment) UseRemoteServices() {
	e.mu.Lock()
	e.active = e.remote
	e.usingMocks = false
	e.mu.Unlock()
	logger.Info().Str("services", "remote").Msg("Service environment switched")
}

// Apply switches to the set settings currently asks for.
func (e *Environment) Apply(settings domain.SettingsService) {
	if settings.UseMocks() == e.UsingMocks() {
		return
	}
	if settings.UseMocks() {
		e.UseMockServices()
		return
	}
	e.UseRemoteServices()
}

func (e *Environment) UsingMocks() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.usingMocks
}

func (e *Environment) UserService() domain.UserService {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active.User
}

func (e *Environment) BasketService() domain.BasketService {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active.Basket
}

func (e *Environment) CatalogService() domain.CatalogService {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active.Catalog
}
