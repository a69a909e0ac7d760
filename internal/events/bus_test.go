package events

import (
	"context"
	"testing"

	"eshop-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversTypedPayload(t *testing.T) {
	bus := NewBus()

	var got []ProductAdded
	Subscribe(bus, func(_ context.Context, ev ProductAdded) {
		got = append(got, ev)
	})

	bus.Publish(context.Background(), ProductAdded{Item: domain.BasketItem{ProductID: "1"}, BadgeCount: 3})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Item.ProductID)
	assert.Equal(t, 3, got[0].BadgeCount)
}

func TestBus_SubscriptionOrderAndCancel(t *testing.T) {
	bus := NewBus()

	var order []string
	cancelA := Subscribe(bus, func(context.Context, ProductAdded) { order = append(order, "a") })
	Subscribe(bus, func(context.Context, ProductAdded) { order = append(order, "b") })

	bus.Publish(context.Background(), ProductAdded{})
	cancelA()
	cancelA()
	bus.Publish(context.Background(), ProductAdded{})

	assert.Equal(t, []string{"a", "b", "b"}, order)
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	delivered := false
	Subscribe(bus, func(context.Context, ProductAdded) { panic("bad listener") })
	Subscribe(bus, func(context.Context, ProductAdded) { delivered = true })

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), ProductAdded{})
	})
	assert.True(t, delivered)
}

func TestBus_NoSubscribers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().Publish(context.Background(), ProductAdded{})
	})
}
