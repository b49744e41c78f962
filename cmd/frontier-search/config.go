// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/frontier-search/internal/search"
	"github.com/pdiddy/frontier-search/internal/secrets"
	"github.com/pdiddy/frontier-search/pkg/types"
)

// Environment variables and secret files consulted after the config file.
const (
	openRouterKeyEnv    = search.PerplexityKeyEnv
	openRouterKeySecret = "openrouter-api-key"
	semanticKeyEnv      = "SEMANTIC_SCHOLAR_API_KEY"
	semanticKeySecret   = "semantic-scholar-api-key"
)

// setDefaults registers every config key with its default and wires the
// FRONTIER_SEARCH_ environment overrides (e.g. FRONTIER_SEARCH_HTTP_TIMEOUT).
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.user_agent", "frontier-search/"+version)
	v.SetDefault("arxiv.base_url", search.DefaultArxivBaseURL)
	v.SetDefault("arxiv.categories", search.DefaultArxivCategories)
	v.SetDefault("hf.base_url", search.DefaultHFBaseURL)
	v.SetDefault("semantic.base_url", search.DefaultSemanticBaseURL)
	v.SetDefault("semantic.api_key", "")
	v.SetDefault("semantic.max_retries", 3)
	v.SetDefault("perplexity.base_url", search.DefaultPerplexityBaseURL)
	v.SetDefault("perplexity.api_key", "")
	v.SetDefault("perplexity.referer", "")
	v.SetDefault("perplexity.title", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetEnvPrefix("FRONTIER_SEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig assembles the adapter configuration from v, resolving
// credentials through the environment and secret files.
func loadConfig(v *viper.Viper, store secrets.Store) types.Config {
	httpCfg := types.HTTPConfig{
		Timeout:   v.GetDuration("http.timeout"),
		UserAgent: v.GetString("http.user_agent"),
	}
	return types.Config{
		HTTP: httpCfg,
		Arxiv: types.ArxivConfig{
			HTTPConfig: httpCfg,
			BaseURL:    v.GetString("arxiv.base_url"),
			Categories: v.GetStringSlice("arxiv.categories"),
		},
		HFPapers: types.HFPapersConfig{
			HTTPConfig: httpCfg,
			BaseURL:    v.GetString("hf.base_url"),
		},
		Semantic: types.SemanticScholarConfig{
			HTTPConfig: httpCfg,
			BaseURL:    v.GetString("semantic.base_url"),
			APIKey:     store.Resolve(v.GetString("semantic.api_key"), semanticKeyEnv, semanticKeySecret),
			MaxRetries: types.IntPtr(v.GetInt("semantic.max_retries")),
		},
		Perplexity: types.PerplexityConfig{
			HTTPConfig: httpCfg,
			BaseURL:    v.GetString("perplexity.base_url"),
			APIKey:     store.Resolve(v.GetString("perplexity.api_key"), openRouterKeyEnv, openRouterKeySecret),
			Referer:    v.GetString("perplexity.referer"),
			Title:      v.GetString("perplexity.title"),
		},
		Server: types.ServerConfig{
			Address:         v.GetString("server.address"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
	}
}
