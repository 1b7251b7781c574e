package services

import (
	"fmt"
	"log"
	"slices"
	"sync"
)

// DeletePrompt is the question asked before a product is removed.
const DeletePrompt = "Tem certeza que deseja excluir este produto?"

// Confirmer asks the user a yes/no question and blocks until answered.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Catalog owns the product list. All mutations go through its methods so
// IDs stay unique and records are only ever replaced whole.
type Catalog struct {
	mu       sync.RWMutex
	products []Product
	nextID   int64
	version  uint64
	cached   *cachedView
}

type viewKey struct {
	filter  FieldFilterSet
	sort    SortSpec
	sorted  bool
	version uint64
}

type cachedView struct {
	key      viewKey
	products []Product
}

// NewCatalog returns an empty catalog whose first product gets ID 1.
func NewCatalog() *Catalog {
	return &Catalog{nextID: 1}
}

// Add validates in and appends a new product with a fresh ID.
func (c *Catalog) Add(in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := in.toProduct(c.nextID)
	if err != nil {
		return Product{}, err
	}
	c.nextID++
	c.products = append(c.products, p)
	c.version++
	return p, nil
}

// Update replaces the product with the given ID by the record built from in.
// An unknown ID is an invariant violation: it is logged and reported as
// ErrProductNotFound.
func (c *Catalog) Update(id int64, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		log.Printf("catalog: invariant violation: update of unknown product %d", id)
		return Product{}, fmt.Errorf("update product %d: %w", id, ErrProductNotFound)
	}
	p, err := in.toProduct(id)
	if err != nil {
		return Product{}, err
	}
	c.products[idx] = p
	c.version++
	return p, nil
}

// Remove deletes the product after confirm accepts DeletePrompt. A decline,
// or a nil confirm, leaves the catalog untouched and returns false, nil.
func (c *Catalog) Remove(id int64, confirm Confirmer) (bool, error) {
	if _, ok := c.Get(id); !ok {
		return false, fmt.Errorf("remove product %d: %w", id, ErrProductNotFound)
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return false, fmt.Errorf("remove product %d: %w", id, ErrProductNotFound)
	}
	c.products = slices.Delete(c.products, idx, idx+1)
	c.version++
	return true, nil
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id int64) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// All returns the products in insertion order.
func (c *Catalog) All() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.products)
}

// View returns the products matching filter, sorted by sort when it is not
// nil. Filtering runs first so only the surviving rows are sorted. The last
// view is memoized until the filter, the sort or the data changes; callers
// always get their own copy.
func (c *Catalog) View(filter FieldFilterSet, sort *SortSpec) []Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := viewKey{filter: filter, version: c.version}
	if sort != nil {
		key.sort = *sort
		key.sorted = true
	}
	if c.cached != nil && c.cached.key == key {
		return slices.Clone(c.cached.products)
	}

	view := FilterProducts(c.products, filter)
	if sort != nil {
		SortProducts(view, *sort)
	}
	c.cached = &cachedView{key: key, products: view}
	return slices.Clone(view)
}

func (c *Catalog) indexOf(id int64) int {
	return slices.IndexFunc(c.products, func(p Product) bool { return p.ID == id })
}
