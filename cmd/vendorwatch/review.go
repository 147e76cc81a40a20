package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/config"
	"github.com/steinunnb/vendorwatch/internal/export"
	"github.com/steinunnb/vendorwatch/internal/review"
	"github.com/steinunnb/vendorwatch/internal/sheets"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review vendor statements and flag anomalies",
		Long: `Review one vendor or every vendor as of a report date. Each vendor's
statement is rebuilt into a timeline and checked for overdue invoices, debit
balances, unexplained credits, duplicate payments, broken monthly payment
patterns and inactive vendors that still carry a balance.`,
		RunE: runReview,
	}

	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "Report date (YYYY-MM-DD)")
	cmd.Flags().String("vendor-id", "", "Review a single vendor")
	cmd.Flags().Bool("all", false, "Review every vendor")
	cmd.Flags().String("csv", "", "Write the review to a CSV file")
	cmd.Flags().String("xlsx", "", "Write the review to an XLSX file")
	cmd.Flags().String("yaml", "", "Write the review to a YAML file")
	cmd.Flags().Bool("sheets", false, "Upload the review to Google Sheets")

	_ = viper.BindPFlag("review.date", cmd.Flags().Lookup("date"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	date := viper.GetString("review.date")
	vendorID, _ := cmd.Flags().GetString("vendor-id")
	all, _ := cmd.Flags().GetBool("all")

	if vendorID == "" && !all {
		return fmt.Errorf("either --vendor-id or --all is required")
	}
	if vendorID != "" && all {
		return fmt.Errorf("--vendor-id and --all are mutually exclusive")
	}

	if vendorID != "" {
		return reviewOne(cmd.Context(), vendorID, date)
	}
	return reviewAll(cmd, date)
}

func reviewOne(ctx context.Context, vendorID, date string) error {
	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	lines, err := client.FetchStatement(ctx, vendorID, "2020-01-01", date)
	if err != nil {
		return err
	}

	result, err := review.ReviewVendor(lines, date)
	if err != nil {
		return err
	}

	printReviewResult(fmt.Sprintf("Vendor %s", vendorID), result)
	return nil
}

func reviewAll(cmd *cobra.Command, date string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	yamlPath, _ := cmd.Flags().GetString("yaml")
	toSheets, _ := cmd.Flags().GetBool("sheets")

	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	opts, cleanup, err := runnerOptions(true)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := batch.NewRunner(client, opts...).Run(cmd.Context(), date)
	if err != nil {
		return err
	}

	printBatchResult(result)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		if err := export.WriteReviewCSV(f, result.Rows); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		slog.Info("Wrote review CSV", "path", csvPath)
	}

	if xlsxPath != "" {
		if err := export.WriteReviewXLSX(xlsxPath, result); err != nil {
			return err
		}
		slog.Info("Wrote review XLSX", "path", xlsxPath)
	}

	if yamlPath != "" {
		f, err := os.Create(yamlPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", yamlPath, err)
		}
		if err := export.WriteReviewYAML(f, result); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		slog.Info("Wrote review YAML", "path", yamlPath)
	}

	if toSheets {
		if err := uploadToSheets(cmd.Context(), result); err != nil {
			return err
		}
	}

	return nil
}

func uploadToSheets(ctx context.Context, result *batch.Result) error {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("failed to load sheets config: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, result); err != nil {
		return fmt.Errorf("failed to upload review: %w", err)
	}

	slog.Info("Uploaded review to Google Sheets", "spreadsheet", cfg.SpreadsheetName)
	return nil
}
