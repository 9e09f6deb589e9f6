package main

import (
	"net/http"
	"os"

	"invoicefx/internal/application/service"
	"invoicefx/internal/infrastructure/api"
	"invoicefx/internal/infrastructure/handler"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/infrastructure/middleware"
	"invoicefx/internal/infrastructure/store"
	"invoicefx/internal/platform/config"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	level := logger.InfoLevel
	if cfg.Debug {
		level = logger.DebugLevel
	}
	log := logger.NewJSONLogger(os.Stdout, level)
	logger.SetDefaultLogger(log)

	log.Info("Starting invoicefx server", map[string]interface{}{
		"database_path":  cfg.DatabasePath,
		"local_currency": cfg.LocalCurrency,
		"currencies":     cfg.Currencies,
	})

	// Load the record store; a malformed file is reported but the server
	// still comes up with the last-known-good (empty) state.
	recordStore := store.NewJSONRecordStore(cfg.DatabasePath, log)
	if err := recordStore.Load(); err != nil {
		log.Warn("Continuing with in-memory state only", map[string]interface{}{
			"error": err.Error(),
		})
	}

	rateClient := api.NewNBPAPIClient(cfg, nil, log)

	ledgerService := service.NewLedgerService(recordStore, cfg, log)
	reconciliationService := service.NewReconciliationService(recordStore, rateClient, cfg, log)

	ledgerHandler := handler.NewLedgerHandler(ledgerService, log)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationService, log)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	ledgerHandler.RegisterRoutes(router)
	reconciliationHandler.RegisterRoutes(router)

	log.Info("Server listening", map[string]interface{}{
		"port": cfg.Port,
	})

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
