// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/frontier-search/internal/search"
)

var hfCmd = &cobra.Command{
	Use:   "hf [query]",
	Short: "Search Hugging Face papers",
	Long: `Search queries the Hugging Face papers index. With --trending it lists
today's curated daily papers instead; with --detail it fetches one paper by
its arXiv id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		trending, _ := cmd.Flags().GetBool("trending")
		detail, _ := cmd.Flags().GetString("detail")

		a := newAdapters(currentConfig(), nil)
		opts := search.HFOptions{MaxResults: maxResults}
		switch {
		case detail != "":
			env := a.hf.Detail(cmd.Context(), detail)
			return emit(cmd, env, env.Success)
		case trending:
			env := a.hf.Trending(cmd.Context(), opts)
			return emit(cmd, env, env.Success)
		case len(args) == 0:
			return fmt.Errorf("a query is required unless --trending or --detail is set")
		default:
			env := a.hf.Search(cmd.Context(), strings.Join(args, " "), opts)
			return emit(cmd, env, env.Success)
		}
	},
}

func init() {
	hfCmd.Flags().Int("max-results", 10, "maximum number of results (1-100)")
	hfCmd.Flags().Bool("trending", false, "list today's trending papers")
	hfCmd.Flags().String("detail", "", "fetch one paper by arXiv id")

	rootCmd.AddCommand(hfCmd)
}
