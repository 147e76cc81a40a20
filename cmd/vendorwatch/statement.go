package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steinunnb/vendorwatch/internal/export"
)

func statementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Fetch and print one vendor's statement",
		Long: `Fetch a vendor's full transaction statement for a date range and print it
with a running balance, or export it to CSV or XLSX.`,
		RunE: runStatement,
	}

	cmd.Flags().String("vendor-id", "", "Vendor ID (required)")
	cmd.Flags().String("from", "2020-01-01", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", time.Now().Format("2006-01-02"), "End date (YYYY-MM-DD)")
	cmd.Flags().String("csv", "", "Write the statement to a CSV file")
	cmd.Flags().String("xlsx", "", "Write the statement to an XLSX file")
	_ = cmd.MarkFlagRequired("vendor-id")

	_ = viper.BindPFlag("statement.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("statement.to", cmd.Flags().Lookup("to"))

	return cmd
}

func runStatement(cmd *cobra.Command, _ []string) error {
	vendorID, _ := cmd.Flags().GetString("vendor-id")
	csvPath, _ := cmd.Flags().GetString("csv")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	lines, err := client.FetchStatement(cmd.Context(), vendorID,
		viper.GetString("statement.from"), viper.GetString("statement.to"))
	if err != nil {
		return err
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", csvPath, err)
		}
		defer func() { _ = f.Close() }()
		return export.WriteStatementCSV(f, lines)
	}

	if xlsxPath != "" {
		return export.WriteStatementXLSX(xlsxPath, lines)
	}

	printStatement(lines)
	return nil
}
