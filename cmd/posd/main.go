package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniPOS/internal/app"
	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/config"
	"MiniPOS/internal/ledger"
	"MiniPOS/pkg/kit"
)

func main() {
	service := "posd"

	cfg, err := config.Load(".env")
	if err != nil {
		kit.NewLogger(service, "").Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cat := catalog.New(catalog.NewMemStore())
	if cfg.SeedCatalog {
		if err := catalog.Seed(ctx, cat, catalog.DefaultProducts()); err != nil {
			log.Fatal("seed catalog failed", zap.Error(err))
		}
	}
	led := ledger.New(ledger.NewMemStore())

	deps := app.Deps{
		Catalog: cat,
		Ledger:  led,
		Checkout: &cart.Service{
			Catalog: cat,
			Ledger:  led,
			Metrics: cart.NewMetrics(reg),
		},
	}

	if cfg.MetricsEnabled && cfg.MetricsToken == "" {
		log.Warn("metrics enabled without POS_METRICS_TOKEN; /metrics will reject every request")
	}

	h := app.NewHandler(deps, app.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         reg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		WriteLimitPerMin: cfg.RateLimitPerMin,
	})

	if err := kit.RunHTTPServer(ctx, cfg.HTTPAddr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
