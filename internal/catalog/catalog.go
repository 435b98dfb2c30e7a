// Package catalog owns the product name to unit price mapping.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName  = errors.New("invalid product name")
	ErrInvalidPrice = errors.New("invalid price")
	ErrNotFound     = errors.New("product not found")
)

type Catalog struct {
	store Store
}

func New(store Store) *Catalog {
	return &Catalog{store: store}
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Upsert inserts the product or overwrites its price. The name is stored
// trimmed. Recorded sales are never touched.
func (c *Catalog) Upsert(ctx context.Context, name string, price decimal.Decimal) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, ErrInvalidName
	}
	if !price.IsPositive() {
		return Product{}, fmt.Errorf("%w: must be positive, got %s", ErrInvalidPrice, price)
	}

	p := Product{Name: name, UnitPrice: price}
	if err := c.store.Put(ctx, p); err != nil {
		return Product{}, fmt.Errorf("store product %q: %w", name, err)
	}
	return p, nil
}

// Lookup is an exact, case-sensitive match.
func (c *Catalog) Lookup(ctx context.Context, name string) (Product, error) {
	p, ok, err := c.store.Get(ctx, name)
	if err != nil {
		return Product{}, fmt.Errorf("get product %q: %w", name, err)
	}
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// ListAll returns every product sorted by name; never nil.
func (c *Catalog) ListAll(ctx context.Context) ([]Product, error) {
	products, err := c.store.ListSortedByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// ParsePrice accepts "19.90" as well as "19,90".
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, raw)
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: must be positive, got %s", ErrInvalidPrice, price)
	}
	return price, nil
}
