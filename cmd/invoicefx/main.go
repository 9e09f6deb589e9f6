package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"invoicefx/internal/application/service"
	"invoicefx/internal/infrastructure/api"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/infrastructure/store"
	"invoicefx/internal/platform/config"
)

func main() {
	interactive := flag.Bool("interactive", false, "run the interactive menu")
	currencies := flag.String("currencies", "", "comma-separated currency allow-list override")
	file := flag.String("file", "", "path to the invoice database file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *currencies != "" {
		cfg.Currencies = nil
		for _, code := range strings.Split(*currencies, ",") {
			if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
				cfg.Currencies = append(cfg.Currencies, code)
			}
		}
	}
	if *file != "" {
		cfg.DatabasePath = *file
	}

	level := logger.ErrorLevel
	if cfg.Debug {
		level = logger.DebugLevel
	}
	log := logger.NewJSONLogger(os.Stderr, level)
	logger.SetDefaultLogger(log)

	recordStore := store.NewJSONRecordStore(cfg.DatabasePath, log)
	if err := recordStore.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "could not load database, starting empty: %v\n", err)
	}

	rateClient := api.NewNBPAPIClient(cfg, nil, log)
	ledgerService := service.NewLedgerService(recordStore, cfg, log)
	reconciliationService := service.NewReconciliationService(recordStore, rateClient, cfg, log)

	ctx := context.Background()

	if !*interactive {
		// Without the menu just print the current ledger.
		printInvoices(os.Stdout, ledgerService.ListInvoices(ctx))
		return
	}

	menu := NewMenu(os.Stdin, os.Stdout, cfg, ledgerService, reconciliationService)
	if err := menu.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "menu error: %v\n", err)
		os.Exit(1)
	}
}
