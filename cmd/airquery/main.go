// Command airquery loads the air-quality and UHF mapping extracts once, then
// answers interactive point lookups by zip code, UHF id, borough, or date.
//
// Usage:
//
//	go run ./cmd/airquery -air air_quality.csv -uhf uhf.csv
//
// File paths default to AIR_QUALITY_FILE and UHF_FILE from the environment.
// Set HTTP_ADDR (or -http) to also serve /healthz, /readyz, and /metrics.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "github.com/pondskater/airquery/internal/adapter/http"
	"github.com/pondskater/airquery/internal/config"
	"github.com/pondskater/airquery/internal/dataset"
	"github.com/pondskater/airquery/internal/ingest"
	"github.com/pondskater/airquery/internal/observability"
	"github.com/pondskater/airquery/internal/query"
)

const menu = `
Choose a search type:
  1) zip
  2) uhf
  3) borough
  4) date
  q) quit
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	airFile := flag.String("air", cfg.AirQualityFile, "path to the air-quality measurement CSV")
	uhfFile := flag.String("uhf", cfg.UHFFile, "path to the UHF mapping CSV")
	httpAddr := flag.String("http", cfg.HTTPAddr, "address for the health/metrics endpoint (empty disables it)")
	flag.Parse()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	loader := ingest.NewLoader(logger, metrics)

	fmt.Println("Loading data...")
	byRegion, byDate := loader.LoadMeasurements(*airFile)
	byPostal, byArea := loader.LoadGeography(*uhfFile)

	stats := ingest.Summarize(byRegion, byDate, byPostal, byArea)
	fmt.Println("Loaded.")
	fmt.Printf("Records: %d | UHF ids: %d | Dates: %d | Zip codes: %d | Boroughs: %d\n",
		stats.Records, stats.RegionKeys, stats.DateKeys, stats.PostalKeys, stats.AreaKeys)

	var srv *httpadapter.Server
	if *httpAddr != "" {
		srv = httpadapter.NewServer(*httpAddr, loader, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runMenu(os.Stdin, metrics, byRegion, byDate, byPostal, byArea)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
}

// runMenu drives one query per turn until the user quits or stdin closes.
func runMenu(in *os.File, metrics *observability.Metrics,
	byRegion dataset.RegionIndex, byDate dataset.DateIndex,
	byPostal dataset.PostalIndex, byArea dataset.AreaIndex,
) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print(menu + "\n")
		choice, ok := prompt(scanner, "Enter choice: ")
		if !ok {
			return
		}

		var results []dataset.Measurement
		switch strings.ToLower(choice) {
		case "q", "quit", "exit":
			fmt.Println("Goodbye.")
			return
		case "1", "zip":
			term, ok := prompt(scanner, "Enter 5-digit zip: ")
			if !ok {
				return
			}
			results = query.ByPostal(term, byPostal, byRegion)
			metrics.QueriesTotal.WithLabelValues("zip").Inc()
		case "2", "uhf":
			term, ok := prompt(scanner, "Enter UHF id: ")
			if !ok {
				return
			}
			results = query.ByRegionID(term, byRegion)
			metrics.QueriesTotal.WithLabelValues("uhf").Inc()
		case "3", "borough":
			term, ok := prompt(scanner, "Enter borough name: ")
			if !ok {
				return
			}
			results = query.ByArea(term, byArea, byRegion)
			metrics.QueriesTotal.WithLabelValues("borough").Inc()
		case "4", "date":
			term, ok := prompt(scanner, "Enter date as YYYY/MM/DD: ")
			if !ok {
				return
			}
			results = query.ByDate(term, byDate)
			metrics.QueriesTotal.WithLabelValues("date").Inc()
		default:
			fmt.Println("Invalid choice.")
			continue
		}

		if len(results) == 0 {
			fmt.Println("No matching records.")
			continue
		}
		for _, m := range results {
			fmt.Println(m.Format())
		}
		fmt.Printf("\nReturned %d measurements.\n", len(results))
	}
}

func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}
