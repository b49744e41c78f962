// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/frontier-search/internal/observability"
	"github.com/pdiddy/frontier-search/internal/search"
	"github.com/pdiddy/frontier-search/pkg/types"
)

// adapters holds one instance of every source adapter.
type adapters struct {
	arxiv      *search.Arxiv
	hf         *search.HFPapers
	semantic   *search.SemanticScholar
	perplexity *search.Perplexity
}

// newAdapters builds every adapter from cfg over one shared HTTP client.
// metrics may be nil.
func newAdapters(cfg types.Config, metrics *observability.Metrics) adapters {
	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	opts := []search.Option{search.WithLogger(logger), search.WithMetrics(metrics)}
	return adapters{
		arxiv:      search.NewArxiv(client, cfg.Arxiv, opts...),
		hf:         search.NewHFPapers(client, cfg.HFPapers, opts...),
		semantic:   search.NewSemanticScholar(client, cfg.Semantic, opts...),
		perplexity: search.NewPerplexity(client, cfg.Perplexity, opts...),
	}
}

func currentConfig() types.Config {
	return loadConfig(viper.GetViper(), loadedSecrets)
}

// emit prints v in the selected format, optionally saves it, and turns a
// failure envelope into errEnvelopeFailed.
func emit(cmd *cobra.Command, v any, success bool) error {
	format, _ := cmd.Flags().GetString("format")
	if err := search.Format(format, v, cmd.OutOrStdout()); err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := search.WriteResultFile(path, "", v); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("saved results")
	}
	if !success {
		return errEnvelopeFailed
	}
	return nil
}
