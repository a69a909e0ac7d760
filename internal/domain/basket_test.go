package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id, product string, qty int, price string) BasketItem {
	return BasketItem{ID: id, ProductID: product, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestBasket_TotalAndQuantity(t *testing.T) {
	b := &Basket{BuyerID: "u1", Items: []BasketItem{
		line("a", "1", 2, "10.00"),
		line("b", "2", 1, "5.00"),
	}}

	assert.True(t, decimal.RequireFromString("25.00").Equal(b.Total()))
	assert.Equal(t, 3, b.Quantity())
	assert.Equal(t, 2, b.Count())
}

func TestBasket_NilIsEmpty(t *testing.T) {
	var b *Basket
	assert.True(t, b.Total().IsZero())
	assert.Equal(t, 0, b.Quantity())
	assert.Equal(t, 0, b.Count())
	assert.Nil(t, b.Clone())
}

func TestBasket_RemoveByLineID(t *testing.T) {
	b := &Basket{Items: []BasketItem{
		line("a", "1", 1, "1"),
		line("b", "1", 1, "1"),
	}}

	require.True(t, b.Remove(BasketItem{ID: "b", ProductID: "1"}))
	require.Len(t, b.Items, 1)
	assert.Equal(t, "a", b.Items[0].ID)
}

func TestBasket_RemoveFallsBackToProductID(t *testing.T) {
	b := &Basket{Items: []BasketItem{
		line("", "1", 1, "1"),
		line("", "2", 1, "1"),
	}}

	require.True(t, b.Remove(BasketItem{ProductID: "2"}))
	assert.Equal(t, []string{"1"}, []string{b.Items[0].ProductID})
	assert.False(t, b.Remove(BasketItem{ProductID: "9"}))
}

func TestBasket_CloneIsIndependent(t *testing.T) {
	b := &Basket{BuyerID: "u", Items: []BasketItem{line("a", "1", 1, "1")}}
	c := b.Clone()
	c.Items[0].Quantity = 9
	c.Add(line("b", "2", 1, "1"))

	assert.Equal(t, 1, b.Items[0].Quantity)
	assert.Len(t, b.Items, 1)
}

func TestCatalogItem_ToBasketItem(t *testing.T) {
	ci := CatalogItem{ID: "7", Name: "Mug", PictureURI: "http://pic/7", Price: decimal.RequireFromString("8.50")}

	bi := ci.ToBasketItem()
	assert.NotEmpty(t, bi.ID)
	assert.Equal(t, "7", bi.ProductID)
	assert.Equal(t, "Mug", bi.ProductName)
	assert.Equal(t, "http://pic/7", bi.PictureURL)
	assert.Equal(t, 1, bi.Quantity)
	assert.True(t, ci.Price.Equal(bi.UnitPrice))
	assert.NotEqual(t, bi.ID, ci.ToBasketItem().ID)
}
