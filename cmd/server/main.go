package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/warehouse/backend/internal/application/catalog"
	financeapp "github.com/warehouse/backend/internal/application/finance"
	identityapp "github.com/warehouse/backend/internal/application/identity"
	partnerapp "github.com/warehouse/backend/internal/application/partner"
	reportapp "github.com/warehouse/backend/internal/application/report"
	sequenceapp "github.com/warehouse/backend/internal/application/sequence"
	tradeapp "github.com/warehouse/backend/internal/application/trade"
	"github.com/warehouse/backend/internal/infrastructure/auth"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/infrastructure/persistence"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
	"github.com/warehouse/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	// Repositories
	users := persistence.NewGormUserRepository(db.DB)
	products := persistence.NewGormProductRepository(db.DB)
	clients := persistence.NewGormClientRepository(db.DB)
	suppliers := persistence.NewGormSupplierRepository(db.DB)
	orders := persistence.NewGormOrderRepository(db.DB)
	purchases := persistence.NewGormPurchaseRepository(db.DB)
	payments := persistence.NewGormPaymentRepository(db.DB)
	creditNotes := persistence.NewGormCreditNoteRepository(db.DB)
	expenses := persistence.NewGormExpenseRepository(db.DB)
	counters := persistence.NewGormCounterRepository(db.DB)
	balances := persistence.NewGormLedger(db.DB)
	entries := persistence.NewGormEntryRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(users, jwtService)
	productService := catalogapp.NewProductService(products)
	clientService := partnerapp.NewClientService(clients, entries, txManager)
	supplierService := partnerapp.NewSupplierService(suppliers, entries, txManager)
	orderService := tradeapp.NewOrderService(orders, products, clients, creditNotes, counters, balances, txManager)
	purchaseService := tradeapp.NewPurchaseService(purchases, products, suppliers, counters, balances, txManager)
	paymentService := financeapp.NewPaymentService(payments, clients, suppliers, counters, balances, txManager)
	creditNoteService := financeapp.NewCreditNoteService(creditNotes, products, clients, counters, balances, txManager)
	expenseService := financeapp.NewExpenseService(expenses)
	reportService := reportapp.NewReportService(clients, suppliers, entries, orders)
	sequenceService := sequenceapp.NewSequenceService(counters, orders, purchases, payments, creditNotes)

	engine := router.New(cfg, jwtService, log, router.Handlers{
		System:   handler.NewSystemHandler(db, version),
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Client:   handler.NewClientHandler(clientService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Order:    handler.NewOrderHandler(orderService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Finance:  handler.NewFinanceHandler(paymentService, creditNoteService, expenseService),
		Report:   handler.NewReportHandler(reportService),
		Sequence: handler.NewSequenceHandler(sequenceService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
