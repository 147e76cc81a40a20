package main

import (
	"github.com/spf13/cobra"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List vendors from the accounting system",
		Long: `List all creditors known to the Payday accounting system, with their
current balance. The list is mirrored into the local cache so it stays
available when the API is unreachable.`,
		RunE: runVendorsList,
	}

	cmd.AddCommand(vendorsFindCmd())

	return cmd
}

func runVendorsList(cmd *cobra.Command, _ []string) error {
	client, err := newPaydayClient()
	if err != nil {
		return err
	}
	dir, cleanup, err := newVendorDirectory()
	if err != nil {
		return err
	}
	defer cleanup()

	vendors, err := fetchVendors(cmd.Context(), client, dir)
	if err != nil {
		return err
	}

	printVendors(vendors)
	return nil
}

func vendorsFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Find vendors by name",
		Long:  `Find vendors whose name contains the query, case-insensitively.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newPaydayClient()
			if err != nil {
				return err
			}
			dir, cleanup, err := newVendorDirectory()
			if err != nil {
				return err
			}
			defer cleanup()

			vendors, err := findVendors(cmd.Context(), client, dir, args[0])
			if err != nil {
				return err
			}

			printVendors(vendors)
			return nil
		},
	}
}
