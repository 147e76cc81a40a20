package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steinunnb/vendorwatch/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the review API over HTTP",
		Long: `Expose vendors and reviews as a small JSON API, suitable for a web
frontend or ad-hoc scripting.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	client, err := newPaydayClient()
	if err != nil {
		return err
	}

	opts, cleanup, err := runnerOptions(false)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := viper.GetString("server.addr")
	slog.Info("Starting review API", "addr", addr)
	return server.New(client, opts...).Run(addr)
}
