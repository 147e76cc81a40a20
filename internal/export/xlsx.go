package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/model"
)

const (
	statementSheet = "Statement"
	reviewSheet    = "Review"
)

// WriteStatementXLSX writes a raw statement to an XLSX workbook at path.
func WriteStatementXLSX(path string, lines []model.StatementLine) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(statementSheet, "A1", &[]any{"Date", "Description", "Amount", "Debit", "Credit", "Balance"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range StatementRows(lines) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		values := []any{row.Date, row.Description, row.Amount, row.Debit, row.Credit, row.Running}
		if err := f.SetSheetRow(statementSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteReviewXLSX writes a batch review result to an XLSX workbook at path:
// one row per vendor, plus an Errors sheet when any vendor failed.
func WriteReviewXLSX(path string, result *batch.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", reviewSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(reviewSheet, "A1", &[]any{"Vendor", "Balance", "Red Flags", "Orange Flags"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range result.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		values := []any{row.Name, row.Balance, joinFlags(row.Red), joinFlags(row.Orange)}
		if err := f.SetSheetRow(reviewSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(result.Errors) > 0 {
		if _, err := f.NewSheet("Errors"); err != nil {
			return fmt.Errorf("failed to create errors sheet: %w", err)
		}
		if err := f.SetSheetRow("Errors", "A1", &[]any{"Vendor", "Error"}); err != nil {
			return fmt.Errorf("failed to write errors header: %w", err)
		}
		for i, e := range result.Errors {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			values := []any{e.Name, e.Err}
			if err := f.SetSheetRow("Errors", cell, &values); err != nil {
				return fmt.Errorf("failed to write error row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
