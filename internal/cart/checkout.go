package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Selection struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty"`
}

// Service creates sessions bound to the shared catalog and ledger and
// records checkout metrics.
type Service struct {
	Catalog Catalog
	Ledger  Ledger
	Metrics *Metrics

	Now   func() time.Time
	NewID func() uuid.UUID
}

func (s *Service) NewSession() *Session {
	var opts []Option
	if s.Now != nil {
		opts = append(opts, WithClock(s.Now))
	}
	if s.NewID != nil {
		opts = append(opts, WithIDGenerator(s.NewID))
	}
	return NewSession(s.Catalog, s.Ledger, opts...)
}

// Complete finalizes sess and records the outcome.
func (s *Service) Complete(ctx context.Context, sess *Session) (Receipt, error) {
	receipt, err := sess.Finalize(ctx)
	s.Metrics.observe(receipt, err)
	return receipt, err
}

// Checkout runs a whole session: every selection is added in order, then the
// session is finalized. The first failing selection aborts the checkout.
func (s *Service) Checkout(ctx context.Context, items []Selection) (Receipt, error) {
	sess := s.NewSession()
	for _, it := range items {
		if err := sess.AddSelection(ctx, it.Product, it.Qty); err != nil {
			s.Metrics.observe(Receipt{}, err)
			return Receipt{}, err
		}
	}
	return s.Complete(ctx, sess)
}
