package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steinunnb/vendorwatch/internal/batch"
	"github.com/steinunnb/vendorwatch/internal/tui"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Review every vendor in an interactive dashboard",
		Long: `Run a full vendor review and browse the results in the terminal: a
filterable vendor table with per-vendor flags and recent transactions.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("date", time.Now().Format("2006-01-02"), "Report date (YYYY-MM-DD)")
	_ = viper.BindPFlag("dashboard.date", cmd.Flags().Lookup("date"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	opts, cleanup, err := runnerOptions(true)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := batch.NewRunner(client, opts...).Run(cmd.Context(), viper.GetString("dashboard.date"))
	if err != nil {
		return err
	}

	return tui.Run(result)
}
