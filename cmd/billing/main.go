package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Dixith12/Billing-App-sub001/internal/app"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/documents"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/invoices"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/purchases"
	"github.com/Dixith12/Billing-App-sub001/internal/billing/quotations"
	"github.com/Dixith12/Billing-App-sub001/internal/expenses"
	"github.com/Dixith12/Billing-App-sub001/internal/insights"
	"github.com/Dixith12/Billing-App-sub001/internal/inventory"
	"github.com/Dixith12/Billing-App-sub001/internal/observability"
	"github.com/Dixith12/Billing-App-sub001/internal/partners/customers"
	"github.com/Dixith12/Billing-App-sub001/internal/partners/vendors"
	"github.com/Dixith12/Billing-App-sub001/internal/platform/cache"
	"github.com/Dixith12/Billing-App-sub001/internal/platform/db"
	"github.com/Dixith12/Billing-App-sub001/internal/settings"
	"github.com/Dixith12/Billing-App-sub001/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, insights cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	metrics := observability.NewMetrics()

	insightsCache := insights.NewCache(redisClient, cfg.InsightsCacheTTL)
	insightsService := insights.NewService(insights.NewRepository(pool), insightsCache)

	customerService := customers.NewService(customers.NewRepository(pool))
	vendorService := vendors.NewService(vendors.NewRepository(pool))
	inventoryService := inventory.NewService(inventory.NewRepository(pool))
	expenseService := expenses.NewService(expenses.NewRepository(pool), insightsService)
	settingsService := settings.NewService(settings.NewRepository(pool))

	customerStates := documents.PartyDirectoryFunc(func(ctx context.Context, id int64) (string, error) {
		c, err := customerService.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return c.State, nil
	})
	vendorStates := documents.PartyDirectoryFunc(func(ctx context.Context, id int64) (string, error) {
		v, err := vendorService.Get(ctx, id)
		if err != nil {
			return "", err
		}
		return v.State, nil
	})

	invoiceService, invoiceHandler := invoices.New(pool, logger, settingsService, customerStates, metrics, insightsService)
	_, purchaseHandler := purchases.New(pool, logger, settingsService, vendorStates, metrics, insightsService)
	quotationService := quotations.NewService(pool, settingsService, customerStates, invoiceService, insightsService)
	quotationHandler := quotations.NewHandler(logger, quotationService)

	var inspector *asynq.Inspector
	if redisClient != nil {
		inspector = asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() { _ = inspector.Close() }()
	}

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CustomersHandler:  customers.NewHandler(logger, customerService),
		VendorsHandler:    vendors.NewHandler(logger, vendorService),
		InventoryHandler:  inventory.NewHandler(logger, inventoryService),
		ExpensesHandler:   expenses.NewHandler(logger, expenseService),
		SettingsHandler:   settings.NewHandler(logger, settingsService),
		InvoicesHandler:   invoiceHandler,
		QuotationsHandler: quotationHandler,
		PurchasesHandler:  purchaseHandler,
		InsightsHandler:   insights.NewHandler(logger, insightsService),
		JobHandler:        jobs.NewHandler(inspector, logger),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
