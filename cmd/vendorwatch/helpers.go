package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/cli"
	"github.com/steinunnb/vendorwatch/internal/config"
	"github.com/steinunnb/vendorwatch/internal/export"
	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/payday"
	"github.com/steinunnb/vendorwatch/internal/storage"
)

var printer = message.NewPrinter(language.English)

// newPaydayClient builds an API client from the resolved configuration.
func newPaydayClient() (*payday.Client, error) {
	cfg, err := config.LoadPaydayConfig()
	if err != nil {
		return nil, err
	}
	return payday.NewClient(cfg)
}

// newStatementCache opens the local statement cache. Returns nil when caching
// is disabled in config.
func newStatementCache() (*storage.StatementCache, error) {
	settings, err := config.LoadCacheSettings()
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}
	return storage.NewStatementCache(settings.Path, settings.TTL)
}

// vendorClient is the API surface the vendor commands need.
type vendorClient interface {
	payday.StatementFetcher
	FindVendors(ctx context.Context, query string) ([]model.Vendor, error)
}

// vendorDirectory is the slice of the statement cache that holds a local copy
// of the creditor list.
type vendorDirectory interface {
	SaveVendors(ctx context.Context, vendors []model.Vendor) error
	LoadVendors(ctx context.Context) ([]model.Vendor, error)
}

// newVendorDirectory opens the vendor directory backed by the statement
// cache. Returns a nil directory when caching is disabled.
func newVendorDirectory() (vendorDirectory, func(), error) {
	cache, err := newStatementCache()
	if err != nil {
		return nil, nil, err
	}
	if cache == nil {
		return nil, func() {}, nil
	}
	return cache, func() { _ = cache.Close() }, nil
}

// fetchVendors lists vendors from the API and refreshes the local directory;
// when the API is unreachable it falls back to the cached copy.
func fetchVendors(ctx context.Context, client payday.StatementFetcher, dir vendorDirectory) ([]model.Vendor, error) {
	vendors, err := client.ListVendors(ctx)
	if err != nil {
		if dir == nil {
			return nil, err
		}
		cached, cacheErr := dir.LoadVendors(ctx)
		if cacheErr != nil {
			return nil, err
		}
		slog.Warn("Vendor listing unavailable, using cached directory", "error", err)
		return cached, nil
	}

	if dir != nil {
		if err := dir.SaveVendors(ctx, vendors); err != nil {
			slog.Warn("Failed to refresh vendor directory", "error", err)
		}
	}
	return vendors, nil
}

// findVendors searches vendors by name, filtering the cached directory when
// the API is unreachable.
func findVendors(ctx context.Context, client vendorClient, dir vendorDirectory, query string) ([]model.Vendor, error) {
	hits, err := client.FindVendors(ctx, query)
	if err == nil {
		return hits, nil
	}
	if dir == nil {
		return nil, err
	}
	cached, cacheErr := dir.LoadVendors(ctx)
	if cacheErr != nil {
		return nil, err
	}
	slog.Warn("Vendor search unavailable, filtering cached directory", "error", err)
	return payday.FilterVendors(cached, query), nil
}

// runnerOptions assembles the batch options shared by review, dashboard and
// serve: the statement cache when enabled, and a progress bar when requested.
func runnerOptions(withProgress bool) ([]batch.Option, func(), error) {
	var opts []batch.Option
	cleanup := func() {}

	cache, err := newStatementCache()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open statement cache: %w", err)
	}
	if cache != nil {
		opts = append(opts, batch.WithCache(cache))
		cleanup = func() { _ = cache.Close() }
	}

	if withProgress {
		opts = append(opts, batch.WithProgress(os.Stderr))
	}

	return opts, cleanup, nil
}

func printVendors(vendors []model.Vendor) {
	fmt.Println(cli.FormatTitle("Vendors"))
	fmt.Printf("%-40s %-12s %14s\n", "Vendor", "Reg. no.", "Balance")
	fmt.Println(strings.Repeat("-", 68))
	for _, v := range vendors {
		printer.Printf("%-40.40s %-12s %14.2f\n", v.Name, v.SSN, v.Balance)
	}
	fmt.Println(cli.FormatSubtle(fmt.Sprintf("%d vendors", len(vendors))))
}

func printStatement(lines []model.StatementLine) {
	rows := export.StatementRows(lines)

	fmt.Printf("%-12s %-40s %14s %14s\n", "Date", "Description", "Amount", "Balance")
	fmt.Println(strings.Repeat("-", 84))
	for _, row := range rows {
		printer.Printf("%-12s %-40.40s %14.2f %14.2f\n", row.Date, row.Description, row.Amount, row.Running)
	}
	fmt.Println(cli.FormatSubtle(fmt.Sprintf("%d lines", len(rows))))
}

func printReviewResult(name string, result *model.ReviewResult) {
	printer.Printf("%s: balance %.2f\n", name, result.Balance)
	for _, flag := range result.Red {
		fmt.Println("  " + cli.FormatRedFlag(flag))
	}
	for _, flag := range result.Orange {
		fmt.Println("  " + cli.FormatOrangeFlag(flag))
	}
	if !result.Flagged() {
		fmt.Println("  " + cli.FormatSuccess("no flags"))
	}
}

func printBatchResult(result *batch.Result) {
	flagged := 0
	for _, row := range result.Rows {
		if len(row.Red) > 0 || len(row.Orange) > 0 {
			flagged++
		}
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Review %s", result.ReportDate)))
	fmt.Printf("%d vendors, %d flagged, %d errors\n\n", len(result.Rows), flagged, len(result.Errors))

	for _, row := range result.Rows {
		if len(row.Red) == 0 && len(row.Orange) == 0 {
			continue
		}
		res := model.ReviewResult{Balance: row.Balance, Red: row.Red, Orange: row.Orange}
		printReviewResult(row.Name, &res)
		fmt.Println()
	}

	for _, ve := range result.Errors {
		fmt.Println(cli.FormatError(fmt.Sprintf("%s (%s): %s", ve.Name, ve.VendorID, ve.Err)))
	}
}
