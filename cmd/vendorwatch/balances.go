package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func balancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show vendor balances as of a date",
		Long:  `Show every vendor's balance as the accounting system reports it on a given date.`,
		RunE:  runBalances,
	}

	cmd.Flags().String("asof", time.Now().Format("2006-01-02"), "Balance date (YYYY-MM-DD)")
	_ = viper.BindPFlag("balances.asof", cmd.Flags().Lookup("asof"))

	return cmd
}

func runBalances(cmd *cobra.Command, _ []string) error {
	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	vendors, err := client.VendorBalances(cmd.Context(), viper.GetString("balances.asof"))
	if err != nil {
		return err
	}

	printVendors(vendors)
	return nil
}
