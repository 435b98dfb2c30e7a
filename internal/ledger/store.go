package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is one priced line of a completed checkout. UnitPrice is the
// price at sale time and is never updated afterwards.
type SaleRecord struct {
	ID         uuid.UUID       `json:"id"`
	CheckoutID uuid.UUID       `json:"checkout_id"`
	Product    string          `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	SoldAt     time.Time       `json:"sold_at"`
}

// Store is append-only: records come back in insertion order.
type Store interface {
	Ping(ctx context.Context) error
	Append(ctx context.Context, records ...SaleRecord) error
	List(ctx context.Context) ([]SaleRecord, error)
}
