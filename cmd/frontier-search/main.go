// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the frontier-search CLI. Each source
// is a subcommand; every subcommand prints one envelope on stdout and exits
// non-zero when the envelope reports a failure.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/frontier-search/internal/observability"
	"github.com/pdiddy/frontier-search/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// logger is built from log.level and log.format before any subcommand runs.
var logger = zerolog.Nop()

// errEnvelopeFailed reports that the printed envelope has success=false.
// The envelope already carries the message, so main prints nothing more.
var errEnvelopeFailed = errors.New("request failed")

// rootCmd is the base command for the frontier-search CLI.
var rootCmd = &cobra.Command{
	Use:   "frontier-search",
	Short: "Normalized search over arXiv, Hugging Face papers, Semantic Scholar and Perplexity",
	Long: `frontier-search queries academic discovery sources and prints one uniform
envelope per request. Paper sources (arxiv, hf, semantic) return unified
paper records; the perplexity source returns a synthesized answer with
citations.

Credentials are read from the config file, the environment
(OPENROUTER_API_KEY, SEMANTIC_SCHOLAR_API_KEY) or files in .secrets/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := observability.DefaultLoggingConfig()
		if lvl := viper.GetString("log.level"); lvl != "" {
			logCfg.Level = lvl
		}
		if f := viper.GetString("log.format"); f != "" {
			logCfg.Format = f
		}
		logger = observability.NewLogger(logCfg)

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug().Strs("keys", s.Names()).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./frontier-search.yaml or ~/.config/frontier-search/frontier-search.yaml)")
	pf.String("format", "json", "output format: json, yaml, table, csl")
	pf.String("output", "", "also save the envelope to this file")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("frontier-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "frontier-search"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errEnvelopeFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
