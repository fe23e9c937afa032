package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipment-sync/internal/core/cache"
	"shipment-sync/internal/core/config"
	"shipment-sync/internal/core/httpclient"
	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/core/server"
	backfillhandler "shipment-sync/internal/features/backfill/handler"
	backfilljobs "shipment-sync/internal/features/backfill/jobs"
	backfillservice "shipment-sync/internal/features/backfill/service"
	fulfillmenthandler "shipment-sync/internal/features/fulfillment/handler"
	fulfillmentservice "shipment-sync/internal/features/fulfillment/service"
	orderadapter "shipment-sync/internal/features/orders/adapters"
	orderservice "shipment-sync/internal/features/orders/service"
	shipmentadapter "shipment-sync/internal/features/shipments/adapters"

	"go.uber.org/zap"
)

const (
	orderLockPrefix    = "ordlock:"
	scheduledRunBudget = 30 * time.Minute
)

// @title Shipment Sync API
// @version 1.0
// @description This API copies BasitKargo shipment tracking onto Shopify order fulfillments.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("carrier_mode", cfg.Sync.CarrierMode),
		zap.Strings("actionable_statuses", cfg.Sync.Statuses()),
	)

	client := httpclient.NewClient(cfg.UpstreamTimeout(), cfg.ProxySettings())

	// Initialize Providers
	bkAdapter := shipmentadapter.NewBasitKargoAdapter(cfg.BasitKargo, client)
	shopifyAdapter := orderadapter.NewShopifyAdapter(cfg.Shopify, client)

	healthCtx, cancelHealth := context.WithTimeout(context.Background(), cfg.UpstreamTimeout())
	if err := shopifyAdapter.HealthCheck(healthCtx); err != nil {
		l.Warn("Shopify Health Check Failed", zap.Error(err))
	} else {
		l.Info("Shopify connection verified")
	}
	cancelHealth()

	// Initialize Order Lock
	var locker cache.Locker = cache.NopLocker{}
	if cfg.Redis.URL != "" {
		store, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Invalid Redis configuration", zap.Error(err))
		}
		defer store.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Ping(pingCtx); err != nil {
			l.Fatal("Redis Health Check Failed", zap.Error(err))
		}
		cancelPing()

		ttl := time.Duration(cfg.Redis.LockTTLSeconds) * time.Second
		locker = cache.NewStoreLocker(store, orderLockPrefix, ttl)
		l.Info("Order locking enabled", zap.Duration("ttl", ttl))
	}

	// Initialize Fulfillment Service & Handler
	orchestrator := fulfillmentservice.NewOrchestrator(
		bkAdapter,
		orderservice.NewLocator(shopifyAdapter),
		orderservice.NewWriter(shopifyAdapter, cfg.Sync.NotifyCustomer),
		locker,
		fulfillmentservice.Options{
			ActionableStatuses: cfg.Sync.Statuses(),
			CarrierMode:        cfg.Sync.CarrierMode,
			DefaultCarrier:     cfg.Sync.DefaultCarrier,
		},
	)
	webhookHdl := fulfillmenthandler.NewWebhookHandler(orchestrator)

	// Initialize Backfill Service & Handler
	driver := backfillservice.NewDriver(bkAdapter, orchestrator, backfillservice.Defaults{
		Statuses: cfg.Backfill.StatusList(),
		PageSize: cfg.Backfill.PageSize,
		MaxPages: cfg.Backfill.MaxPages,
		Location: cfg.Backfill.Location(),
	})
	backfillHdl := backfillhandler.NewBackfillHandler(driver)

	srv := server.New(cfg)

	// Register Routes
	auth := srv.RequireKey()
	srv.App.Post("/basitkargo-webhook", auth, webhookHdl.BasitKargoWebhook)
	srv.App.Post("/manual-ship", auth, webhookHdl.ManualShip)
	srv.App.Post("/manual-bk", auth, webhookHdl.ManualShip)
	srv.App.Post("/backfill-today", auth, backfillHdl.BackfillToday)

	var job *backfilljobs.BackfillJob
	if cfg.Backfill.Cron != "" {
		job = backfilljobs.NewBackfillJob(driver, cfg.Backfill.Cron, cfg.Backfill.Location(), scheduledRunBudget)
		if err := job.Start(); err != nil {
			l.Fatal("Backfill job failed to start", zap.Error(err))
		}
	}

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	if job != nil {
		job.Stop()
	}
	if err := srv.Shutdown(); err != nil {
		l.Error("Server shutdown failed", zap.Error(err))
	}
}
