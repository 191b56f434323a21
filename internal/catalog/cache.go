package catalog

import (
	"sort"
	"sync"

	"github.com/SifatU360/SwiftCart/internal/domain"
)

// Cache holds the most recently fetched product list for the active category
// filter. Replace overwrites the whole snapshot unconditionally, so when two
// fetches race, the one that resolves last wins.
type Cache struct {
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]int // product id -> position in products
}

func NewCache() *Cache {
	return &Cache{byID: make(map[int64]int)}
}

func (c *Cache) Replace(products []domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = make([]domain.Product, len(products))
	copy(c.products, products)

	c.byID = make(map[int64]int, len(c.products))
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
}

// Find reports the product with the given id if it is in the resident
// snapshot. Products outside the active filter are not found even when the
// full catalog knows them.
func (c *Cache) Find(id int64) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *Cache) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Trending returns the n highest-rated products in the resident snapshot.
func (c *Cache) Trending(n int) []domain.Product {
	out := c.List()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating.Rate > out[j].Rating.Rate
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
