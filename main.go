package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BillDFrank/Predict-apartment-price-Project/config"
	"github.com/BillDFrank/Predict-apartment-price-Project/scraper/imovirtual"
	"github.com/BillDFrank/Predict-apartment-price-Project/server"
	"github.com/BillDFrank/Predict-apartment-price-Project/services"
	"github.com/BillDFrank/Predict-apartment-price-Project/storage"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [args]

Commands:
  scrape  [numPages [forceStartPage]]   run the summary pass (resumes within the day)
  details [top|bottom [YYYY-MM-DD]]     backfill missing detail fields
  export  [YYYY-MM-DD]                  dump stored advertisings to CSV
  report  [YYYY-MM-DD]                  print dataset aggregates
  serve                                 start the read-only HTTP API
`, os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== Apartment price data pipeline starting ===")

	store, err := storage.NewPostgres(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	switch os.Args[1] {
	case "scrape":
		numPages := cfg.PagesToScrape
		forceStart := 0
		if len(os.Args) > 2 {
			numPages = intArg(logger, os.Args[2])
		}
		if len(os.Args) > 3 {
			forceStart = intArg(logger, os.Args[3])
		}

		client := imovirtual.New(cfg, logger)
		pacer := utils.NewPacer(1*time.Second, 3*time.Second)
		if err := services.NewIngester(client, store, logger, pacer).Run(numPages, forceStart); err != nil {
			logger.Error("Summary pass failed: %v", err)
			os.Exit(1)
		}

	case "details":
		order := "bottom"
		date := ""
		if len(os.Args) > 2 {
			order = os.Args[2]
			if order != "top" && order != "bottom" {
				logger.Error("Order must be 'top' or 'bottom', got %q", order)
				os.Exit(2)
			}
		}
		if len(os.Args) > 3 {
			date = os.Args[3]
		}

		client := imovirtual.New(cfg, logger)
		pacer := utils.NewPacer(500*time.Millisecond, 1500*time.Millisecond)
		if err := services.NewBackfiller(client, store, logger, pacer).Run(order, date); err != nil {
			logger.Error("Detail pass failed: %v", err)
			os.Exit(1)
		}

	case "export":
		date := ""
		if len(os.Args) > 2 {
			date = os.Args[2]
		}

		ads, err := store.FetchAll(date)
		if err != nil {
			logger.Error("Fetch failed: %v", err)
			os.Exit(1)
		}

		exporter, err := storage.NewCSVExporter(cfg.CSVOutputPath)
		if err != nil {
			logger.Error("Failed to create CSV exporter: %v", err)
			os.Exit(1)
		}
		defer exporter.Close()

		if err := exporter.Export(ads); err != nil {
			logger.Error("CSV export failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Exported %d rows to %s", len(ads), cfg.CSVOutputPath)

	case "report":
		date := ""
		if len(os.Args) > 2 {
			date = os.Args[2]
		}

		ads, err := store.FetchAll(date)
		if err != nil {
			logger.Error("Fetch failed: %v", err)
			os.Exit(1)
		}

		svc := services.NewReportService(logger)
		svc.Print(svc.Generate(ads))

	case "serve":
		if err := server.New(store, logger).Run(cfg.APIAddr); err != nil {
			logger.Error("API server failed: %v", err)
			os.Exit(1)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func intArg(logger *utils.Logger, raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		logger.Error("Expected a positive number, got %q", raw)
		os.Exit(2)
	}
	return n
}
