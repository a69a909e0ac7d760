package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// BasketItem is one line of a customer basket.
type BasketItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	PictureURL   string          `json:"pictureUrl"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	OldUnitPrice decimal.Decimal `json:"oldUnitPrice"`
	Quantity     int             `json:"quantity"`
}

// LineTotal is Quantity × UnitPrice.
func (i BasketItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameLine reports whether o identifies the same basket line. Line ids win
// when both sides carry one; otherwise lines match by product id.
func (i BasketItem) SameLine(o BasketItem) bool {
	if i.ID != "" && o.ID != "" {
		return i.ID == o.ID
	}
	return i.ProductID == o.ProductID
}

// Basket is the remote basket of one buyer.
type Basket struct {
	BuyerID string       `json:"buyerId"`
	Items   []BasketItem `json:"items"`
}

// Total sums the line totals.
func (b *Basket) Total() decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return SumTotal(b.Items)
}

// Quantity sums the line quantities.
func (b *Basket) Quantity() int {
	if b == nil {
		return 0
	}
	return SumQuantity(b.Items)
}

// Count is the number of lines.
func (b *Basket) Count() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// Add appends a line.
func (b *Basket) Add(item BasketItem) {
	b.Items = append(b.Items, item)
}

// Remove drops the first line matching item and reports whether one was found.
func (b *Basket) Remove(item BasketItem) bool {
	for idx, it := range b.Items {
		if it.SameLine(item) {
			b.Items = append(b.Items[:idx], b.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate freely.
func (b *Basket) Clone() *Basket {
	if b == nil {
		return nil
	}
	items := make([]BasketItem, len(b.Items))
	copy(items, b.Items)
	return &Basket{BuyerID: b.BuyerID, Items: items}
}

func SumTotal(items []BasketItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func SumQuantity(items []BasketItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// BasketService is the remote basket store plus the local hand-off slot
// read by the checkout flow.
type BasketService interface {
	// GetBasket returns nil, nil when the buyer has no basket yet.
	GetBasket(ctx context.Context, userID, authToken string) (*Basket, error)
	UpdateBasket(ctx context.Context, basket *Basket, authToken string) (*Basket, error)
	ClearBasket(ctx context.Context, userID, authToken string) error

	LocalBasketItems() []BasketItem
	SetLocalBasketItems(items []BasketItem)
}
