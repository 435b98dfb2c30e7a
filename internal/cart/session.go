// Package cart implements the single-use checkout session: selections are
// aggregated per product and finalized into ledger records.
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MiniPOS/internal/catalog"
	"MiniPOS/internal/ledger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrSessionClosed   = errors.New("session already finalized")
)

type Catalog interface {
	Lookup(ctx context.Context, name string) (catalog.Product, error)
}

type Ledger interface {
	Append(ctx context.Context, records ...ledger.SaleRecord) error
}

type State int

const (
	StateEmpty State = iota
	StateAccumulating
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Line struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type Receipt struct {
	CheckoutID uuid.UUID           `json:"checkout_id"`
	Records    []ledger.SaleRecord `json:"records"`
	Total      decimal.Decimal     `json:"total"`
}

// Session is owned by one client and is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	catalog Catalog
	ledger  Ledger
	now     func() time.Time
	newID   func() uuid.UUID

	lines map[string]int
	state State
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Session) { s.newID = fn }
}

func NewSession(c Catalog, l Ledger, opts ...Option) *Session {
	s := &Session{
		catalog: c,
		ledger:  l,
		now:     time.Now,
		newID:   uuid.New,
		lines:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = s.newID()
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() State { return s.state }

// AddSelection adds qty units of the named product, merging into an existing
// line. A failed call leaves the session unchanged.
func (s *Session) AddSelection(ctx context.Context, name string, qty int) error {
	if s.state == StateFinalized {
		return ErrSessionClosed
	}

	if _, err := s.lookup(ctx, name); err != nil {
		return err
	}
	if qty <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}

	cur := s.lines[name]
	if cur > math.MaxInt-qty {
		return fmt.Errorf("%w: %d + %d overflows", ErrInvalidQuantity, cur, qty)
	}
	s.lines[name] = cur + qty
	s.state = StateAccumulating
	return nil
}

// Lines returns a snapshot sorted by product name.
func (s *Session) Lines() []Line {
	out := make([]Line, 0, len(s.lines))
	for _, name := range s.sortedNames() {
		out = append(out, Line{Product: name, Quantity: s.lines[name]})
	}
	return out
}

// Finalize prices every line at the current catalog price, appends one
// record per line to the ledger and closes the session. Nothing is appended
// on failure and the session stays open.
func (s *Session) Finalize(ctx context.Context) (Receipt, error) {
	switch s.state {
	case StateFinalized:
		return Receipt{}, ErrSessionClosed
	case StateEmpty:
		return Receipt{}, ErrEmptyCart
	}

	soldAt := s.now().UTC()
	receipt := Receipt{
		CheckoutID: s.id,
		Records:    make([]ledger.SaleRecord, 0, len(s.lines)),
		Total:      decimal.Zero,
	}

	for _, name := range s.sortedNames() {
		p, err := s.lookup(ctx, name)
		if err != nil {
			return Receipt{}, err
		}

		qty := s.lines[name]
		subtotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		receipt.Records = append(receipt.Records, ledger.SaleRecord{
			ID:         s.newID(),
			CheckoutID: s.id,
			Product:    name,
			Quantity:   qty,
			UnitPrice:  p.UnitPrice,
			Subtotal:   subtotal,
			SoldAt:     soldAt,
		})
		receipt.Total = receipt.Total.Add(subtotal)
	}

	if err := s.ledger.Append(ctx, receipt.Records...); err != nil {
		return Receipt{}, fmt.Errorf("record checkout %s: %w", s.id, err)
	}

	s.state = StateFinalized
	s.lines = nil
	return receipt, nil
}

func (s *Session) lookup(ctx context.Context, name string) (catalog.Product, error) {
	p, err := s.catalog.Lookup(ctx, name)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (s *Session) sortedNames() []string {
	names := make([]string, 0, len(s.lines))
	for name := range s.lines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
