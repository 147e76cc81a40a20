// Package export renders statements and batch review results to CSV, XLSX
// and YAML. Formatting decisions live here, outside the review engine.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/review"
)

// statementHeader is the fixed column set of a statement export.
var statementHeader = []string{"date", "description", "amount", "debit", "credit", "balance"}

// StatementRow is one formatted statement line with a running balance.
type StatementRow struct {
	Date        string
	Description string
	Amount      float64
	Debit       float64
	Credit      float64
	Running     float64
}

// StatementRows normalizes raw lines into export rows. The date is passed
// through as received (already good enough for a spreadsheet); amounts are
// split into debit/credit columns with a running balance.
func StatementRows(lines []model.StatementLine) []StatementRow {
	rows := make([]StatementRow, 0, len(lines))
	var running float64
	for _, ln := range lines {
		amt := review.ParseAmount(lineAmount(ln))
		running += amt
		var debit, credit float64
		if amt > 0 {
			debit = amt
		} else if amt < 0 {
			credit = -amt
		}
		rows = append(rows, StatementRow{
			Date:        lineDate(ln),
			Description: lineDescription(ln),
			Amount:      amt,
			Debit:       debit,
			Credit:      credit,
			Running:     running,
		})
	}
	return rows
}

// WriteStatementCSV writes a raw statement as CSV with running balance.
func WriteStatementCSV(w io.Writer, lines []model.StatementLine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range StatementRows(lines) {
		record := []string{
			row.Date,
			row.Description,
			formatFloat(row.Amount),
			formatFloat(row.Debit),
			formatFloat(row.Credit),
			formatFloat(row.Running),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// reviewHeader is the fixed column set of a batch review export.
var reviewHeader = []string{"vendor", "balance", "red_flags", "orange_flags"}

// WriteReviewCSV writes the batch review table as CSV, one row per vendor
// with flags joined by semicolons.
func WriteReviewCSV(w io.Writer, rows []batch.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reviewHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			formatFloat(row.Balance),
			strings.Join(row.Red, "; "),
			strings.Join(row.Orange, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func lineDate(ln model.StatementLine) string {
	if s, _ := ln.Get("date").(string); s != "" {
		return s
	}
	s, _ := ln.Get("voucherDate").(string)
	return s
}

func lineDescription(ln model.StatementLine) string {
	if s, _ := ln.Get("description").(string); s != "" {
		return strings.TrimSpace(s)
	}
	s, _ := ln.Get("text").(string)
	return strings.TrimSpace(s)
}

func lineAmount(ln model.StatementLine) any {
	if ln.Has("balance") {
		return ln.Get("balance")
	}
	return ln.Get("amount")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
