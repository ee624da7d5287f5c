// Command revenue-report prints one month of revenue for an admin, straight
// from the backend. It shares the server's configuration but needs neither
// PostgreSQL nor Redis.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"github.com/enkellaering/admin-backend/internal/backend"
	"github.com/enkellaering/admin-backend/internal/config"
	"github.com/enkellaering/admin-backend/internal/logger"
	"github.com/enkellaering/admin-backend/internal/revenue"
	"github.com/enkellaering/admin-backend/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

func main() {
	cfg := config.Load()
	now := time.Now().In(cfg.Location())

	var (
		adminID string
		year    int
		month   int
		asJSON  bool
		rate    string
	)
	flag.StringVar(&adminID, "admin", "", "Admin user ID whose classes are reported (required)")
	flag.IntVar(&year, "year", now.Year(), "Report year")
	flag.IntVar(&month, "month", int(now.Month()), "Report month (1-12)")
	flag.BoolVar(&asJSON, "json", false, "Print JSON even on a terminal")
	flag.StringVar(&rate, "rate", "", "Hourly rate override (default HOURLY_RATE)")
	flag.Parse()

	// Diagnostics go to stderr so stdout stays clean for piping.
	log := logger.New(os.Stderr, cfg.LogLevel, "pretty")

	if adminID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if rate != "" {
		d, err := decimal.NewFromString(rate)
		if err != nil || !d.IsPositive() {
			log.Fatal().Str("rate", rate).Msg("rate must be a positive number")
		}
		cfg.HourlyRate = d
	}

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	svc := service.NewRevenueService(cfg, client, nil, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout+5*time.Second)
	defer cancel()

	report, err := svc.BuildReport(ctx, adminID, year, month)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not build report")
	}

	if asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatal().Err(err).Msg("Write failed")
		}
		return
	}

	if err := printTable(os.Stdout, report); err != nil {
		log.Fatal().Err(err).Msg("Write failed")
	}
}

func printTable(out io.Writer, r *revenue.Report) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%04d-%02d\t(%s, %s/h)\t\n", r.Year, r.Month, r.Timezone, r.HourlyRate)
	fmt.Fprintln(tw, "Date\tRevenue\t")
	for _, d := range r.Days {
		fmt.Fprintf(tw, "%s\t%d\t\n", d.Date, d.Revenue)
	}
	fmt.Fprintf(tw, "Total\t%d\t\n", r.Total)
	fmt.Fprintf(tw, "Sessions\t%d\t\n", r.Sessions)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(tw, "Skipped\t%d\t\n", len(r.Skipped))
	}
	return tw.Flush()
}
