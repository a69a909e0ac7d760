package mock

import (
	"context"
	"eshop-client/internal/domain"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var mockBrands = []domain.CatalogBrand{
	{ID: "1", Brand: "Azure"},
	{ID: "2", Brand: ".NET"},
	{ID: "3", Brand: "Visual Studio"},
	{ID: "4", Brand: "SQL Server"},
	{ID: "5", Brand: "Other"},
}

var mockTypes = []domain.CatalogType{
	{ID: "1", Type: "Mug"},
	{ID: "2", Type: "T-Shirt"},
	{ID: "3", Type: "Sheet"},
	{ID: "4", Type: "USB Memory Stick"},
}

var mockItems = []domain.CatalogItem{
	newItem("1", ".NET Bot Black Hoodie", "19.50", "2", "2"),
	newItem("2", ".NET Black & White Mug", "8.50", "2", "1"),
	newItem("3", "Prism White T-Shirt", "12", "5", "2"),
	newItem("4", ".NET Foundation T-shirt", "12", "2", "2"),
	newItem("5", "Roslyn Red Sheet", "8.50", "5", "3"),
	newItem("6", ".NET Blue Hoodie", "12", "2", "2"),
	newItem("7", "Roslyn Red T-Shirt", "12", "5", "2"),
	newItem("8", "Kudu Purple Hoodie", "8.50", "5", "2"),
	newItem("9", "Cup<T> White Mug", "12", "5", "1"),
	newItem("10", ".NET Foundation Sheet", "12", "2", "3"),
	newItem("11", "Cup<T> Sheet", "8.50", "2", "3"),
	newItem("12", "Prism White TShirt", "12", "5", "2"),
}

func newItem(id, name, price, brandID, typeID string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:             id,
		Name:           name,
		Price:          decimal.RequireFromString(price),
		PictureURI:     fmt.Sprintf("mock://catalog/pic/%s.png", id),
		CatalogBrandID: brandID,
		CatalogBrand:   lookupName(mockBrands, brandID, func(b domain.CatalogBrand) (string, string) { return b.ID, b.Brand }),
		CatalogTypeID:  typeID,
		CatalogType:    lookupName(mockTypes, typeID, func(t domain.CatalogType) (string, string) { return t.ID, t.Type }),
	}
}

func lookupName[T any](list []T, id string, fields func(T) (string, string)) string {
	for _, v := range list {
		if vid, name := fields(v); vid == id {
			return name
		}
	}
	return ""
}

// Catalog serves a fixed product list.
type Catalog struct{}

var _ domain.CatalogService = Catalog{}

func NewCatalog() Catalog { return Catalog{} }

func (Catalog) GetCatalog(context.Context) ([]domain.CatalogItem, error) {
	return slices.Clone(mockItems), nil
}

func (Catalog) GetCatalogItem(_ context.Context, id string) (*domain.CatalogItem, error) {
	idx := slices.IndexFunc(mockItems, func(it domain.CatalogItem) bool { return it.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("catalog item %s: %w", id, domain.ErrNotFound)
	}
	it := mockItems[idx]
	return &it, nil
}

func (Catalog) GetCatalogBrands(context.Context) ([]domain.CatalogBrand, error) {
	return slices.Clone(mockBrands), nil
}

func (Catalog) GetCatalogTypes(context.Context) ([]domain.CatalogType, error) {
	return slices.Clone(mockTypes), nil
}

func (Catalog) Filter(_ context.Context, brandID, typeID string) ([]domain.CatalogItem, error) {
	out := []domain.CatalogItem{}
	for _, it := range mockItems {
		if it.CatalogBrandID == brandID && it.CatalogTypeID == typeID {
			out = append(out, it)
		}
	}
	return out, nil
}
