package cart

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK              = "ok"
	resultEmptyCart       = "empty_cart"
	resultInvalidQuantity = "invalid_quantity"
	resultUnknownProduct  = "product_not_found"
	resultError           = "error"
)

type Metrics struct {
	Checkouts *prometheus.CounterVec
	UnitsSold prometheus.Counter
	Revenue   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pos",
				Name:      "checkouts_total",
				Help:      "Checkout attempts by result",
			},
			[]string{"result"},
		),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "units_sold_total",
			Help:      "Units sold across all completed checkouts",
		}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "revenue_total",
			Help:      "Sum of checkout totals",
		}),
	}

	reg.MustRegister(m.Checkouts, m.UnitsSold, m.Revenue)
	return m
}

// observe is a no-op on a nil receiver.
func (m *Metrics) observe(receipt Receipt, err error) {
	if m == nil {
		return
	}

	m.Checkouts.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		return
	}

	for _, rec := range receipt.Records {
		m.UnitsSold.Add(float64(rec.Quantity))
	}
	m.Revenue.Add(receipt.Total.InexactFloat64())
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrEmptyCart):
		return resultEmptyCart
	case errors.Is(err, ErrInvalidQuantity):
		return resultInvalidQuantity
	case errors.Is(err, ErrProductNotFound):
		return resultUnknownProduct
	default:
		return resultError
	}
}
