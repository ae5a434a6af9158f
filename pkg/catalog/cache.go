package catalog

import (
	"container/list"
	"sync"

	"github.com/nourshop/storefront/pkg/api"
)

type cacheEntry struct {
	category string
	products []api.Product
}

// listingCache is an LRU over per-category product listings. When the cache
// reaches capacity the least recently browsed category is evicted.
type listingCache struct {
	capacity int
	entries  map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

func newListingCache(capacity int) *listingCache {
	if capacity <= 0 {
		panic("catalog: cache capacity must be positive")
	}
	return &listingCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		eviction: list.New(),
	}
}

func (c *listingCache) get(category string) ([]api.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[category]
	if !ok {
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*cacheEntry).products, true
}

func (c *listingCache) put(category string, products []api.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[category]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*cacheEntry).products = products
		return
	}

	elem := c.eviction.PushFront(&cacheEntry{category: category, products: products})
	c.entries[category] = elem

	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		if oldest != nil {
			c.eviction.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).category)
		}
	}
}

func (c *listingCache) invalidate(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[category]; ok {
		c.eviction.Remove(elem)
		delete(c.entries, category)
	}
}

func (c *listingCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.eviction.Init()
}
