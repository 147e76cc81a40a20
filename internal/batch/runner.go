// Package batch runs the vendor review over the whole vendor directory,
// isolating per-vendor failures so one bad vendor never aborts the run.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/steinunnb/vendorwatch/internal/common"
	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/payday"
	"github.com/steinunnb/vendorwatch/internal/review"
)

// historyStart is the beginning of the statement window for every review;
// the Payday ledgers of interest contain nothing older.
const historyStart = "2020-01-01"

// Row is one vendor's outcome in a batch run.
type Row struct {
	VendorID string   `json:"vendor_id"`
	Name     string   `json:"name"`
	Balance  float64  `json:"balance"`
	Red      []string `json:"red"`
	Orange   []string `json:"orange"`
}

// VendorError records a vendor that could not be reviewed.
type VendorError struct {
	VendorID string `json:"vendor_id"`
	Name     string `json:"name"`
	Err      string `json:"error"`
}

// Result is the outcome of one batch run. Rows are sorted by vendor name.
type Result struct {
	RunID      string                        `json:"run_id"`
	ReportDate string                        `json:"report_date"`
	StartedAt  time.Time                     `json:"started_at"`
	FinishedAt time.Time                     `json:"finished_at"`
	Rows       []Row                         `json:"rows"`
	Errors     []VendorError                 `json:"errors,omitempty"`
	Details    map[string]model.ReviewResult `json:"-"`
}

// StatementCache is the subset of the storage layer the runner consults
// before hitting the API.
type StatementCache interface {
	LoadStatement(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error)
	SaveStatement(ctx context.Context, vendorID, dateFrom, dateTo string, lines []model.StatementLine) error
}

// Runner reviews every vendor for one report date.
type Runner struct {
	fetcher  payday.StatementFetcher
	cache    StatementCache // optional
	progress io.Writer      // nil disables the progress bar
}

// Option configures a Runner.
type Option func(*Runner)

// WithCache makes the runner read statements from (and write them back to)
// the local cache.
func WithCache(cache StatementCache) Option {
	return func(r *Runner) { r.cache = cache }
}

// WithProgress renders a progress bar to w while the run is in flight.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) { r.progress = w }
}

// NewRunner creates a batch runner on top of the given statement fetcher.
func NewRunner(fetcher payday.StatementFetcher, opts ...Option) *Runner {
	r := &Runner{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reviews every vendor as of reportDate. Fetch and review failures land
// in Result.Errors; the run itself only fails on an invalid report date or
// when the vendor directory cannot be listed.
func (r *Runner) Run(ctx context.Context, reportDate string) (*Result, error) {
	if _, err := review.ParseReportDate(reportDate); err != nil {
		return nil, fmt.Errorf("invalid report date %q (want YYYY-MM-DD): %w", reportDate, err)
	}

	vendors, err := r.fetcher.ListVendors(ctx)
	if err != nil {
		return nil, common.NewUserError("could not list vendors", err)
	}

	result := &Result{
		RunID:      uuid.New().String(),
		ReportDate: reportDate,
		StartedAt:  time.Now().UTC(),
		Details:    make(map[string]model.ReviewResult, len(vendors)),
	}

	bar := r.newProgressBar(len(vendors))

	for _, v := range vendors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lines, err := r.fetchStatement(ctx, v.ID, reportDate)
		if err != nil {
			slog.Warn("Skipping vendor: statement fetch failed", "vendor", v.Name, "error", err)
			result.Errors = append(result.Errors, VendorError{VendorID: v.ID, Name: v.Name, Err: err.Error()})
			r.step(bar)
			continue
		}

		rev, err := review.ReviewVendor(lines, reportDate)
		if err != nil {
			slog.Warn("Skipping vendor: review failed", "vendor", v.Name, "error", err)
			result.Errors = append(result.Errors, VendorError{VendorID: v.ID, Name: v.Name, Err: "review error: " + err.Error()})
			r.step(bar)
			continue
		}

		result.Details[v.ID] = *rev
		result.Rows = append(result.Rows, Row{
			VendorID: v.ID,
			Name:     v.Name,
			Balance:  rev.Balance,
			Red:      rev.Red,
			Orange:   rev.Orange,
		})
		r.step(bar)
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Name < result.Rows[j].Name
	})
	result.FinishedAt = time.Now().UTC()

	slog.Info("Batch review finished",
		"run_id", result.RunID,
		"report_date", reportDate,
		"vendors", len(vendors),
		"reviewed", len(result.Rows),
		"errors", len(result.Errors),
		"elapsed", result.FinishedAt.Sub(result.StartedAt))

	return result, nil
}

// fetchStatement consults the cache first, then the API with one retry.
func (r *Runner) fetchStatement(ctx context.Context, vendorID, reportDate string) ([]model.StatementLine, error) {
	if r.cache != nil {
		if lines, err := r.cache.LoadStatement(ctx, vendorID, historyStart, reportDate); err == nil {
			return lines, nil
		}
	}

	var lines []model.StatementLine
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		lines, fetchErr = r.fetcher.FetchStatement(ctx, vendorID, historyStart, reportDate)
		return fetchErr
	}, common.RetryOptions{MaxAttempts: 2, InitialDelay: 500 * time.Millisecond})
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SaveStatement(ctx, vendorID, historyStart, reportDate, lines); err != nil {
			slog.Warn("Failed to cache statement", "vendor_id", vendorID, "error", err)
		}
	}
	return lines, nil
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	if r.progress == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Reviewing vendors..."),
	)
}

func (r *Runner) step(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
