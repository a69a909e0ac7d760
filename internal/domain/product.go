package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CatalogItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	PictureURI     string          `json:"pictureUri"`
	CatalogBrandID string          `json:"catalogBrandId"`
	CatalogBrand   string          `json:"catalogBrand"`
	CatalogTypeID  string          `json:"catalogTypeId"`
	CatalogType    string          `json:"catalogType"`
}

// ToBasketItem builds a fresh basket line of quantity 1 for this product.
func (c CatalogItem) ToBasketItem() BasketItem {
	return BasketItem{
		ID:          uuid.NewString(),
		ProductID:   c.ID,
		ProductName: c.Name,
		PictureURL:  c.PictureURI,
		UnitPrice:   c.Price,
		Quantity:    1,
	}
}

type CatalogBrand struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
}

type CatalogType struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// --- Interfaces ---

type CatalogService interface {
	GetCatalog(ctx context.Context) ([]CatalogItem, error)
	GetCatalogItem(ctx context.Context, id string) (*CatalogItem, error)
	GetCatalogBrands(ctx context.Context) ([]CatalogBrand, error)
	GetCatalogTypes(ctx context.Context) ([]CatalogType, error)
	// Filter returns the products of one brand and one type.
	Filter(ctx context.Context, brandID, typeID string) ([]CatalogItem, error)
}
