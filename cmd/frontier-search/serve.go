// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/frontier-search/internal/observability"
	"github.com/pdiddy/frontier-search/internal/server"
)

const metricsNamespace = "frontier_search"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve every source over HTTP",
	Long: `Serve exposes every source operation as a read-only JSON API under /v1,
with /healthz for liveness and /metrics for Prometheus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(metricsNamespace, reg)

		cfg := currentConfig()
		a := newAdapters(cfg, metrics)
		srv := server.New(cfg.Server, server.Sources{
			Arxiv:      a.arxiv,
			HF:         a.hf,
			Semantic:   a.semantic,
			Perplexity: a.perplexity,
		}, reg, logger)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (default from server.address)")
	_ = viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))

	rootCmd.AddCommand(serveCmd)
}
