package remote

import (
	"bytes"
	"eshop-client/internal/domain"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// flexID accepts ids sent either as JSON numbers or strings. It is always
// written back as a string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("id %s is neither a number nor a string", b)
	}
	*f = flexID(b)
	return nil
}

type catalogItemDTO struct {
	ID             flexID          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	PictureURI     string          `json:"pictureUri"`
	CatalogBrandID flexID          `json:"catalogBrandId"`
	CatalogBrand   string          `json:"catalogBrand"`
	CatalogTypeID  flexID          `json:"catalogTypeId"`
	CatalogType    string          `json:"catalogType"`
}

func (d catalogItemDTO) toDomain() domain.CatalogItem {
	return domain.CatalogItem{
		ID:             string(d.ID),
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		PictureURI:     d.PictureURI,
		CatalogBrandID: string(d.CatalogBrandID),
		CatalogBrand:   d.CatalogBrand,
		CatalogTypeID:  string(d.CatalogTypeID),
		CatalogType:    d.CatalogType,
	}
}

func catalogItems(dtos []catalogItemDTO) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items
}

type catalogBrandDTO struct {
	ID    flexID `json:"id"`
	Brand string `json:"brand"`
}

type catalogTypeDTO struct {
	ID   flexID `json:"id"`
	Type string `json:"type"`
}

type basketItemDTO struct {
	ID           string          `json:"id"`
	ProductID    flexID          `json:"productId"`
	ProductName  string          `json:"productName"`
	PictureURL   string          `json:"pictureUrl"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	OldUnitPrice decimal.Decimal `json:"oldUnitPrice"`
	Quantity     int             `json:"quantity"`
}

type basketDTO struct {
	BuyerID string          `json:"buyerId"`
	Items   []basketItemDTO `json:"items"`
}

func newBasketDTO(b *domain.Basket) basketDTO {
	dto := basketDTO{BuyerID: b.BuyerID, Items: make([]basketItemDTO, 0, len(b.Items))}
	for _, it := range b.Items {
		dto.Items = append(dto.Items, basketItemDTO{
			ID:           it.ID,
			ProductID:    flexID(it.ProductID),
			ProductName:  it.ProductName,
			PictureURL:   it.PictureURL,
			UnitPrice:    it.UnitPrice,
			OldUnitPrice: it.OldUnitPrice,
			Quantity:     it.Quantity,
		})
	}
	return dto
}

func (d basketDTO) toDomain() *domain.Basket {
	b := &domain.Basket{BuyerID: d.BuyerID, Items: make([]domain.BasketItem, 0, len(d.Items))}
	for _, it := range d.Items {
		b.Items = append(b.Items, domain.BasketItem{
			ID:           it.ID,
			ProductID:    string(it.ProductID),
			ProductName:  it.ProductName,
			PictureURL:   it.PictureURL,
			UnitPrice:    it.UnitPrice,
			OldUnitPrice: it.OldUnitPrice,
			Quantity:     it.Quantity,
		})
	}
	return b
}
