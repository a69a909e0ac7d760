package remote

import (
	"context"
	"eshop-client/internal/domain"
	"eshop-client/pkg/cache"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const catalogPath = "/api/v1/catalog"

const (
	brandsCacheKey = "catalog:brands"
	typesCacheKey  = "catalog:types"
)

// CatalogClient is the catalog API. Brands and types are cached; product
// lists always go to the server.
type CatalogClient struct {
	client   *Client
	cache    cache.CacheService
	ttl      time.Duration
	pageSize int
}

var _ domain.CatalogService = (*CatalogClient)(nil)

func NewCatalogClient(c *Client, cs cache.CacheService, ttl time.Duration, pageSize int) *CatalogClient {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &CatalogClient{client: c, cache: cs, ttl: ttl, pageSize: pageSize}
}

func (c *CatalogClient) page(ctx context.Context, path string) ([]domain.CatalogItem, error) {
	var resp domain.PaginatedItems[catalogItemDTO]
	path = fmt.Sprintf("%s?pageIndex=0&pageSize=%d", path, c.pageSize)
	if err := c.client.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return catalogItems(resp.Data), nil
}

func (c *CatalogClient) GetCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	return c.page(ctx, catalogPath+"/items")
}

func (c *CatalogClient) Filter(ctx context.Context, brandID, typeID string) ([]domain.CatalogItem, error) {
	return c.page(ctx, fmt.Sprintf("%s/items/type/%s/brand/%s",
		catalogPath, url.PathEscape(typeID), url.PathEscape(brandID)))
}

func (c *CatalogClient) GetCatalogItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	var dto catalogItemDTO
	if err := c.client.do(ctx, http.MethodGet, catalogPath+"/items/"+url.PathEscape(id), "", nil, &dto); err != nil {
		return nil, err
	}
	item := dto.toDomain()
	return &item, nil
}

func (c *CatalogClient) GetCatalogBrands(ctx context.Context) ([]domain.CatalogBrand, error) {
	return cache.Remember(ctx, c.cache, brandsCacheKey, c.ttl, func(ctx context.Context) ([]domain.CatalogBrand, error) {
		var dtos []catalogBrandDTO
		if err := c.client.do(ctx, http.MethodGet, catalogPath+"/catalogbrands", "", nil, &dtos); err != nil {
			return nil, err
		}
		brands := make([]domain.CatalogBrand, 0, len(dtos))
		for _, d := range dtos {
			brands = append(brands, domain.CatalogBrand{ID: string(d.ID), Brand: d.Brand})
		}
		return brands, nil
	})
}

func (c *CatalogClient) GetCatalogTypes(ctx context.Context) ([]domain.CatalogType, error) {
	return cache.Remember(ctx, c.cache, typesCacheKey, c.ttl, func(ctx context.Context) ([]domain.CatalogType, error) {
		var dtos []catalogTypeDTO
		if err := c.client.do(ctx, http.MethodGet, catalogPath+"/catalogtypes", "", nil, &dtos); err != nil {
			return nil, err
		}
		types := make([]domain.CatalogType, 0, len(dtos))
		for _, d := range dtos {
			types = append(types, domain.CatalogType{ID: string(d.ID), Type: d.Type})
		}
		return types, nil
	})
}
