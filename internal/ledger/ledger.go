// Package ledger keeps the append-only history of sale lines.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var ErrInvalidRecord = errors.New("invalid sale record")

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.store.Ping(ctx)
}

// Append adds records to the end of the ledger in one step: either all of
// them are stored or none is.
func (l *Ledger) Append(ctx context.Context, records ...SaleRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i, rec := range records {
		if err := checkRecord(rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	if err := l.store.Append(ctx, records...); err != nil {
		return fmt.Errorf("append sale records: %w", err)
	}
	return nil
}

// All returns the records in insertion order; never nil.
func (l *Ledger) All(ctx context.Context) ([]SaleRecord, error) {
	records, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sale records: %w", err)
	}
	if records == nil {
		records = []SaleRecord{}
	}
	return records, nil
}

type ProductTotal struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type Summary struct {
	Records  int             `json:"records"`
	Units    int             `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
	Products []ProductTotal  `json:"products"`
}

// Summary aggregates the whole ledger per product, sorted by product name.
func (l *Ledger) Summary(ctx context.Context) (Summary, error) {
	records, err := l.All(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Records: len(records), Revenue: decimal.Zero, Products: []ProductTotal{}}
	byProduct := make(map[string]*ProductTotal)
	for _, rec := range records {
		sum.Units += rec.Quantity
		sum.Revenue = sum.Revenue.Add(rec.Subtotal)

		pt, ok := byProduct[rec.Product]
		if !ok {
			pt = &ProductTotal{Product: rec.Product, Revenue: decimal.Zero}
			byProduct[rec.Product] = pt
		}
		pt.Quantity += rec.Quantity
		pt.Revenue = pt.Revenue.Add(rec.Subtotal)
	}

	for _, pt := range byProduct {
		sum.Products = append(sum.Products, *pt)
	}
	sort.Slice(sum.Products, func(i, j int) bool { return sum.Products[i].Product < sum.Products[j].Product })
	return sum, nil
}

func checkRecord(rec SaleRecord) error {
	switch {
	case rec.Product == "":
		return fmt.Errorf("%w: empty product", ErrInvalidRecord)
	case rec.Quantity <= 0:
		return fmt.Errorf("%w: quantity %d", ErrInvalidRecord, rec.Quantity)
	case !rec.Subtotal.Equal(rec.UnitPrice.Mul(decimal.NewFromInt(int64(rec.Quantity)))):
		return fmt.Errorf("%w: subtotal %s != %d x %s", ErrInvalidRecord, rec.Subtotal, rec.Quantity, rec.UnitPrice)
	}
	return nil
}
