package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `[
	{"id":1,"title":"Backpack","price":9.99,"description":"Fits laptops","category":"men's clothing","image":"https://example.com/1.jpg","rating":{"rate":3.9,"count":120}},
	{"id":2,"title":"T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://example.com/2.jpg","rating":{"rate":4.1,"count":259}}
]`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 2*time.Second), srv
}

func TestProducts_AllCategories(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(productsBody))
	})
	defer srv.Close()

	products, err := client.Products(context.Background(), AllCategories)

	require.NoError(t, err)
	assert.Equal(t, "/products", gotPath)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, 9.99, products[0].Price)
	assert.Equal(t, 3.9, products[0].Rating.Rate)
}

func TestProducts_SpecificCategoryPath(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := client.Products(context.Background(), "men's clothing")

	require.NoError(t, err)
	// r.URL.Path arrives decoded; the wire form percent-encodes the space.
	assert.Equal(t, "/products/category/men's clothing", gotPath)
}

func TestProducts_ServerErrorIsCatalogUnavailable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.Products(context.Background(), AllCategories)

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestProducts_MalformedBodyIsCatalogUnavailable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	})
	defer srv.Close()

	_, err := client.Products(context.Background(), AllCategories)

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestProducts_NetworkErrorIsCatalogUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, 2*time.Second)
	srv.Close() // nothing listens anymore

	_, err := client.Products(context.Background(), AllCategories)

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestCategories(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/categories", r.URL.Path)
		w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
	})
	defer srv.Close()

	categories, err := client.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing", "women's clothing"}, categories)
}

func TestProduct_ByID(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Write([]byte(`{"id":7,"title":"Ring","price":168.0,"category":"jewelery","rating":{"rate":4.6,"count":400}}`))
	})
	defer srv.Close()

	product, err := client.Product(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), product.ID)
	assert.Equal(t, "Ring", product.Title)
	assert.Equal(t, 168.0, product.Price)
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	for i := 0; i < 6; i++ {
		_, err := client.Products(context.Background(), AllCategories)
		require.ErrorIs(t, err, ErrCatalogUnavailable)
	}

	// By now the breaker is open and fails fast, still as the same sentinel.
	_, err := client.Products(context.Background(), AllCategories)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
