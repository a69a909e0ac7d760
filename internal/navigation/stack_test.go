package navigation

import (
	"context"
	"testing"

	"eshop-client/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_PushPop(t *testing.T) {
	ctx := context.Background()
	s := NewStack(domain.RouteCatalog)

	require.NoError(t, s.NavigateTo(ctx, domain.RouteFilter, nil))
	assert.Equal(t, domain.RouteFilter, s.Current().Route)
	assert.Equal(t, []string{domain.RouteCatalog, domain.RouteFilter}, s.Routes())

	require.NoError(t, s.Pop(ctx))
	assert.Equal(t, domain.RouteCatalog, s.Current().Route)
}

func TestStack_PopAtRoot(t *testing.T) {
	s := NewStack(domain.RouteCatalog)
	assert.ErrorIs(t, s.Pop(context.Background()), ErrAtRoot)
	assert.Equal(t, []string{domain.RouteCatalog}, s.Routes())
}

func TestStack_UnknownRoute(t *testing.T) {
	s := NewStack(domain.RouteCatalog)
	assert.ErrorIs(t, s.NavigateTo(context.Background(), "Nowhere", nil), ErrUnknownRoute)
}

func TestStack_Observers(t *testing.T) {
	ctx := context.Background()
	s := NewStack(domain.RouteCatalog)

	var changes []Change
	s.Observe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, s.NavigateTo(ctx, domain.RouteBasket, map[string]string{"from": "catalog"}))
	require.NoError(t, s.Pop(ctx))

	require.Len(t, changes, 2)
	assert.Equal(t, "push", changes[0].Kind)
	assert.Equal(t, "catalog", changes[0].Current.Params["from"])
	assert.Equal(t, "pop", changes[1].Kind)
	assert.Equal(t, domain.RouteCatalog, changes[1].Current.Route)
}
