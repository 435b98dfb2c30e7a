// Package app assembles the HTTP surface of the point of sale.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/ledger"
	"MiniPOS/pkg/kit"
)

const (
	readyTimeout = 1 * time.Second
	limitWindow  = time.Minute
)

type Deps struct {
	Catalog  *catalog.Catalog
	Ledger   *ledger.Ledger
	Checkout *cart.Service
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// WriteLimitPerMin caps mutating requests per client IP; 0 disables it.
	WriteLimitPerMin int
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", kit.Healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	limiter := kit.NewIPRateLimiter(httpDeps.WriteLimitPerMin, limitWindow)

	r.Mount("/products", (&catalog.Server{
		Catalog:    deps.Catalog,
		Log:        httpDeps.Log,
		WriteLimit: limiter.Middleware,
	}).Routes())

	r.Mount("/checkouts", (&cart.Server{
		Checkout:   deps.Checkout,
		Log:        httpDeps.Log,
		WriteLimit: limiter.Middleware,
	}).Routes())

	r.Mount("/sales", (&ledger.Server{
		Ledger: deps.Ledger,
		Log:    httpDeps.Log,
	}).Routes())

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewHTTPMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}
		if err := deps.Ledger.Ping(ctx); err != nil {
			log.Warn("readyz failed: ledger", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "ledger not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
