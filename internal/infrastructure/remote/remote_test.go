package remote

import (
	"context"
	"eshop-client/internal/domain"
	memcache "eshop-client/internal/infrastructure/cache"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, Options{
		Timeout:      2 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	})
}

func TestCatalogClient_GetCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/catalog/items", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("pageIndex"))
		assert.Equal(t, "25", r.URL.Query().Get("pageSize"))
		io.WriteString(w, `{"pageIndex":0,"pageSize":25,"count":2,"data":[
			{"id":1,"name":".NET Bot Black Hoodie","price":19.5,"catalogBrandId":2,"catalogTypeId":1},
			{"id":"2","name":".NET Black & White Mug","price":8.50,"catalogBrandId":2,"catalogTypeId":2}]}`)
	})
	catalog := NewCatalogClient(c, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute, 25)

	items, err := catalog.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[0].CatalogBrandID)
	assert.True(t, decimal.RequireFromString("19.5").Equal(items[0].Price))
	assert.Equal(t, "2", items[1].ID)
}

func TestCatalogClient_Filter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/catalog/items/type/1/brand/2", r.URL.Path)
		io.WriteString(w, `{"data":[{"id":1,"name":"Hoodie","price":19.5}]}`)
	})
	catalog := NewCatalogClient(c, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute, 10)

	items, err := catalog.Filter(context.Background(), "2", "1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCatalogClient_BrandsAreCached(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/v1/catalog/catalogbrands", r.URL.Path)
		io.WriteString(w, `[{"id":1,"brand":"Azure"},{"id":2,"brand":".NET"}]`)
	})
	catalog := NewCatalogClient(c, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute, 10)

	for i := 0; i < 3; i++ {
		brands, err := catalog.GetCatalogBrands(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.CatalogBrand{{ID: "1", Brand: "Azure"}, {ID: "2", Brand: ".NET"}}, brands)
	}
	assert.EqualValues(t, 1, calls.Load())
}

func TestCatalogClient_ItemNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	catalog := NewCatalogClient(c, memcache.NewMemoryCache(time.Minute, time.Minute), time.Minute, 10)

	_, err := catalog.GetCatalogItem(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `[]`)
	})

	var out []catalogTypeDTO
	err := c.do(context.Background(), http.MethodGet, "/types", "", nil, &out)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	err := c.do(context.Background(), http.MethodGet, "/x", "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad basket", http.StatusBadRequest)
	})

	err := c.do(context.Background(), http.MethodPost, "/x", "", map[string]int{"a": 1}, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Contains(t, se.Body, "bad basket")
	assert.EqualValues(t, 1, calls.Load())
}

func TestBasketClient_MissingBasketIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/basket/u-1", r.URL.Path)
		http.NotFound(w, r)
	})
	baskets := NewBasketClient(c)

	basket, err := baskets.GetBasket(context.Background(), "u-1", "tok")
	require.NoError(t, err)
	assert.Nil(t, basket)
}

func TestBasketClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	baskets := NewBasketClient(c)

	_, err := baskets.GetBasket(context.Background(), "u-1", "expired")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBasketClient_UpdateSendsNumericPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), `"unitPrice":19.5`)
		assert.Contains(t, string(body), `"productId":"1"`)

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
	baskets := NewBasketClient(c)

	in := &domain.Basket{BuyerID: "u-1", Items: []domain.BasketItem{{
		ID: "line-1", ProductID: "1", ProductName: "Hoodie",
		UnitPrice: decimal.RequireFromString("19.50"), Quantity: 2,
	}}}
	out, err := baskets.UpdateBasket(context.Background(), in, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.BuyerID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.True(t, in.Total().Equal(out.Total()))
}

func TestBasketClient_EmptyUpdateResponseEchoesRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	baskets := NewBasketClient(c)

	in := &domain.Basket{BuyerID: "u-1", Items: []domain.BasketItem{{ProductID: "3", Quantity: 1}}}
	out, err := baskets.UpdateBasket(context.Background(), in, "tok")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestClients_RequireToken(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	ctx := context.Background()

	_, err := NewUserClient(c).GetUserInfo(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = NewBasketClient(c).GetBasket(ctx, "u", "")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.ErrorIs(t, NewBasketClient(c).ClearBasket(ctx, "u", ""), domain.ErrNotAuthenticated)
	assert.Zero(t, calls.Load())
}

func TestUserClient_GetUserInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connect/userinfo", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		io.WriteString(w, `{"sub":"u-42","name":"Demo","email":"demo@example.com","preferred_username":"demouser"}`)
	})

	info, err := NewUserClient(c).GetUserInfo(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u-42", info.UserID)
	assert.Equal(t, "demouser", info.PreferredUsername)
}

func TestFlexID(t *testing.T) {
	var v struct {
		A flexID `json:"a"`
		B flexID `json:"b"`
		C flexID `json:"c"`
	}
	require.NoError(t, jsonUnmarshal(`{"a":7,"b":"x-1","c":null}`, &v))
	assert.Equal(t, flexID("7"), v.A)
	assert.Equal(t, flexID("x-1"), v.B)
	assert.Equal(t, flexID(""), v.C)

	assert.Error(t, jsonUnmarshal(`{"a":true}`, &v))
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
