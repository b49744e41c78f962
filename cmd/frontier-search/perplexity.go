// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/frontier-search/internal/search"
)

var perplexityCmd = &cobra.Command{
	Use:   "perplexity <topic>",
	Short: "Ask Perplexity for a web-grounded answer with citations",
	Long: `Perplexity sends the topic to a Perplexity Sonar model through OpenRouter.
--sota asks for the current state of the art; --recent asks only for
developments from the last --days days. Requires OPENROUTER_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sota, _ := cmd.Flags().GetBool("sota")
		recent, _ := cmd.Flags().GetBool("recent")
		days, _ := cmd.Flags().GetInt("days")
		model, _ := cmd.Flags().GetString("model")
		maxTokens, _ := cmd.Flags().GetInt("max-tokens")

		if sota && recent {
			return fmt.Errorf("--sota and --recent are mutually exclusive")
		}
		mode := search.ModePlain
		switch {
		case sota:
			mode = search.ModeSOTA
		case recent:
			mode = search.ModeRecent
		}

		opts := search.PerplexityOptions{
			Model:     model,
			MaxTokens: maxTokens,
			Mode:      mode,
			Days:      days,
		}
		if cmd.Flags().Changed("temperature") {
			t, _ := cmd.Flags().GetFloat64("temperature")
			opts.Temperature = &t
		}

		a := newAdapters(currentConfig(), nil)
		env := a.perplexity.Search(cmd.Context(), strings.Join(args, " "), opts)
		return emit(cmd, env, env.Success)
	},
}

func init() {
	perplexityCmd.Flags().Bool("sota", false, "ask for the current state of the art")
	perplexityCmd.Flags().Bool("recent", false, "ask only for recent developments")
	perplexityCmd.Flags().Int("days", search.DefaultRecentDays, "window for --recent, in days")
	perplexityCmd.Flags().String("model", search.DefaultPerplexityModel,
		"model: "+strings.Join(search.ModelNames(), ", "))
	perplexityCmd.Flags().Int("max-tokens", 4000, "maximum completion tokens")
	perplexityCmd.Flags().Float64("temperature", 0.2, "sampling temperature")

	rootCmd.AddCommand(perplexityCmd)
}
