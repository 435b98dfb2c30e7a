package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"MiniPOS/internal/cart"
	"MiniPOS/internal/catalog"
	"MiniPOS/internal/config"
	"MiniPOS/internal/console"
	"MiniPOS/internal/ledger"
	"MiniPOS/pkg/kit"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		kit.NewConsoleLogger("pos", "").Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewConsoleLogger("pos", cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.New(catalog.NewMemStore())
	if cfg.SeedCatalog {
		if err := catalog.Seed(ctx, cat, catalog.DefaultProducts()); err != nil {
			log.Fatal("seed catalog failed", zap.Error(err))
		}
	}
	led := ledger.New(ledger.NewMemStore())

	d := &console.Driver{
		Catalog:  cat,
		Ledger:   led,
		Checkout: &cart.Service{Catalog: cat, Ledger: led},
		Log:      log,
		In:       os.Stdin,
		Out:      os.Stdout,
	}
	if err := d.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("console stopped", zap.Error(err))
	}
}
