package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type Product struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Store holds products keyed by their exact, case-sensitive name.
type Store interface {
	Ping(ctx context.Context) error
	Put(ctx context.Context, p Product) error
	Get(ctx context.Context, name string) (Product, bool, error)
	ListSortedByName(ctx context.Context) ([]Product, error)
}
