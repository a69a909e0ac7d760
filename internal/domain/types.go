package domain

import (
	"context"
	"errors"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// PaginatedItems is the catalog list envelope.
type PaginatedItems[T any] struct {
	PageIndex int   `json:"pageIndex"`
	PageSize  int   `json:"pageSize"`
	Count     int64 `json:"count"`
	Data      []T   `json:"data"`
}

// NavigationService moves between screens. Transitions themselves are
// the host's business.
type NavigationService interface {
	NavigateTo(ctx context.Context, route string, params map[string]string) error
	Pop(ctx context.Context) error
}

// AppEnvironment hands out the currently active service set. View-models
// ask it on every operation so a mock/remote switch takes effect at once.
type AppEnvironment interface {
	UserService() UserService
	BasketService() BasketService
	CatalogService() CatalogService
}
